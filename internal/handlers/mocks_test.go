package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resumeapi/internal/logger"
	"resumeapi/internal/models"
	"resumeapi/internal/pagination"
	"resumeapi/internal/render"
	"resumeapi/internal/services"
	"resumeapi/internal/validator"
)

// --- mock services ---

type mockLogService struct {
	availableFn      func(ctx context.Context) bool
	insertFn         func(ctx context.Context, entry *models.ResumeLog) error
	codeExistsFn     func(ctx context.Context, code string) (bool, error)
	findByCodeFn     func(ctx context.Context, code string) *models.ResumeLog
	findByUsernameFn func(ctx context.Context, username string) []models.ResumeLog
	findAllFn        func(ctx context.Context) []models.ResumeLog
	findPageFn       func(ctx context.Context, page pagination.PageRequest) pagination.PageResponse[models.ResumeLog]
	aggregateFn      func(ctx context.Context) []models.UserStats
	lookupCodeFn     func(ctx context.Context, code string) *models.CodeValidation

	inserted []models.ResumeLog
}

func (m *mockLogService) Available(ctx context.Context) bool {
	if m.availableFn != nil {
		return m.availableFn(ctx)
	}
	return true
}

func (m *mockLogService) Insert(ctx context.Context, entry *models.ResumeLog) error {
	m.inserted = append(m.inserted, *entry)
	if m.insertFn != nil {
		return m.insertFn(ctx, entry)
	}
	return nil
}

func (m *mockLogService) CodeExists(ctx context.Context, code string) (bool, error) {
	if m.codeExistsFn != nil {
		return m.codeExistsFn(ctx, code)
	}
	return false, nil
}

func (m *mockLogService) FindByCode(ctx context.Context, code string) *models.ResumeLog {
	if m.findByCodeFn != nil {
		return m.findByCodeFn(ctx, code)
	}
	return nil
}

func (m *mockLogService) FindByUsername(ctx context.Context, username string) []models.ResumeLog {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return []models.ResumeLog{}
}

func (m *mockLogService) FindAll(ctx context.Context) []models.ResumeLog {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return []models.ResumeLog{}
}

func (m *mockLogService) FindPage(ctx context.Context, page pagination.PageRequest) pagination.PageResponse[models.ResumeLog] {
	if m.findPageFn != nil {
		return m.findPageFn(ctx, page)
	}
	page.Defaults()
	return pagination.NewPageResponse[models.ResumeLog](nil, page.Page, page.PageSize, 0)
}

func (m *mockLogService) AggregateByUsername(ctx context.Context) []models.UserStats {
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx)
	}
	return []models.UserStats{}
}

func (m *mockLogService) LookupCode(ctx context.Context, code string) *models.CodeValidation {
	if m.lookupCodeFn != nil {
		return m.lookupCodeFn(ctx, code)
	}
	return nil
}

type mockCodeGenerator struct {
	result services.CodeResult
	calls  int
}

func (m *mockCodeGenerator) Generate(_ context.Context) services.CodeResult {
	m.calls++
	return m.result
}

type mockComposer struct {
	composeFn func(fragment, username string) (string, error)
}

func (m *mockComposer) Compose(fragment, username string) (string, error) {
	if m.composeFn != nil {
		return m.composeFn(fragment, username)
	}
	return "<html>" + fragment + "</html>", nil
}

type mockRenderer struct {
	renderFn func(ctx context.Context, document string, page render.PageConfig) ([]byte, error)
	calls    int
}

func (m *mockRenderer) Render(ctx context.Context, document string, page render.PageConfig) ([]byte, error) {
	m.calls++
	if m.renderFn != nil {
		return m.renderFn(ctx, document, page)
	}
	return []byte("%PDF-1.4 fake"), nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	if result["success"] != false {
		t.Errorf("expected success=false, got %v", result["success"])
	}
	if result["code"] != code {
		t.Errorf("expected error code %q, got %v", code, result["code"])
	}
}
