package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"resumeapi/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// UniqueCode returns a well-formed resume code not handed out before in this run.
func UniqueCode() string {
	return fmt.Sprintf("AU%06d", 900000-nextID())
}

// CreateTestResumeLog stores a log entry for username with a fresh code created now.
func CreateTestResumeLog(t *testing.T, db *gorm.DB, username string) *models.ResumeLog {
	t.Helper()
	return CreateTestResumeLogAt(t, db, username, UniqueCode(), time.Now())
}

// CreateTestResumeLogAt stores a log entry with an explicit code and timestamp.
func CreateTestResumeLogAt(t *testing.T, db *gorm.DB, username, code string, createdAt time.Time) *models.ResumeLog {
	t.Helper()

	entry := &models.ResumeLog{
		Username:   username,
		ResumeCode: code,
		CreatedAt:  createdAt,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test resume log: %v", err)
	}
	return entry
}
