package models

import (
	"strings"
	"time"

	"resumeapi/internal/uuid"

	"gorm.io/gorm"
)

// ResumeLog records one PDF generation event. Rows are written once and
// never updated or deleted by the service.
type ResumeLog struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Username   string    `gorm:"not null;index" json:"username"`
	ResumeCode string    `gorm:"not null;uniqueIndex" json:"resumeCode"`
	CreatedAt  time.Time `gorm:"not null;index:,sort:desc" json:"createdAt"`
}

// BeforeCreate trims text fields, generates a UUIDv7 and stamps CreatedAt.
func (l *ResumeLog) BeforeCreate(tx *gorm.DB) error {
	l.Username = strings.TrimSpace(l.Username)
	l.ResumeCode = strings.TrimSpace(l.ResumeCode)
	if l.ID == "" {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	return nil
}
