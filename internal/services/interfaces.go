package services

import (
	"context"

	"resumeapi/internal/models"
	"resumeapi/internal/pagination"
)

// ResumeLogServicer defines the contract of the resume log store.
//
// Writes fail loudly with a persistence AppError. Reads never fail: an
// unavailable store or a failed query yields an empty result and the cause
// is logged server side.
type ResumeLogServicer interface {
	Available(ctx context.Context) bool
	Insert(ctx context.Context, entry *models.ResumeLog) error
	CodeExists(ctx context.Context, code string) (bool, error)
	FindByCode(ctx context.Context, code string) *models.ResumeLog
	FindByUsername(ctx context.Context, username string) []models.ResumeLog
	FindAll(ctx context.Context) []models.ResumeLog
	FindPage(ctx context.Context, page pagination.PageRequest) pagination.PageResponse[models.ResumeLog]
	AggregateByUsername(ctx context.Context) []models.UserStats
	LookupCode(ctx context.Context, code string) *models.CodeValidation
}

// CodeLookup is the subset of the store the code generator consults.
type CodeLookup interface {
	Available(ctx context.Context) bool
	CodeExists(ctx context.Context, code string) (bool, error)
}

// CodeGenerator issues resume codes.
type CodeGenerator interface {
	Generate(ctx context.Context) CodeResult
}
