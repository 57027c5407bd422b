package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumeapi/internal/auth"
	apperrors "resumeapi/internal/errors"
	"resumeapi/internal/logger"
	"resumeapi/internal/middleware"
	"resumeapi/internal/models"
	"resumeapi/internal/pagination"
	"resumeapi/internal/services"
)

// AdminHandler handles admin login and the log query endpoints.
type AdminHandler struct {
	guard *auth.Guard
	logs  services.ResumeLogServicer
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(guard *auth.Guard, logs services.ResumeLogServicer) *AdminHandler {
	return &AdminHandler{guard: guard, logs: logs}
}

// LoginRequest represents the admin login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by admin-login with HTTP 200 in both outcomes.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// LogsResponse lists resume logs, newest first.
type LogsResponse struct {
	Success    bool               `json:"success"`
	Logs       []models.ResumeLog `json:"logs"`
	Count      int                `json:"count"`
	Pagination *pagination.Meta   `json:"pagination,omitempty"`
}

// UserStatsResponse lists per-username aggregates.
type UserStatsResponse struct {
	Success   bool               `json:"success"`
	UserStats []models.UserStats `json:"userStats"`
	Count     int                `json:"count"`
}

// ValidateCodeRequest represents the code lookup payload
type ValidateCodeRequest struct {
	Code string `json:"code" binding:"notblank"`
}

// ValidateCodeResponse carries the lookup result, null when not found.
type ValidateCodeResponse struct {
	Success bool                   `json:"success"`
	Result  *models.CodeValidation `json:"result"`
	Found   bool                   `json:"found"`
}

// Login exchanges admin credentials for a token
// @Summary     Admin login
// @Description Returns a 24h admin token. Wrong credentials are reported with success=false and HTTP 200.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Admin credentials"
// @Success     200 {object} LoginResponse
// @Failure     500 {object} ErrorResponse "Token signing failed"
// @Router      /api/admin-login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	// A malformed body is just a failed login.
	_ = c.ShouldBindJSON(&req)

	token, ok, err := h.guard.IssueToken(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !ok {
		logger.Get().Warnw("admin login failed", "username", req.Username, "client_ip", c.ClientIP())
		c.JSON(http.StatusOK, LoginResponse{Success: false, Message: "Invalid credentials"})
		return
	}

	logger.Get().Infow("admin login successful", "username", req.Username)
	c.JSON(http.StatusOK, LoginResponse{Success: true, Token: token})
}

// Logout acknowledges a logout. Tokens are stateless, so the client is
// expected to discard its copy.
// @Summary     Admin logout
// @Tags        admin
// @Produce     json
// @Success     200 {object} map[string]interface{}
// @Router      /api/admin-logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	logger.Get().Infow("admin logged out")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// Logs lists every resume log, newest first
// @Summary     List resume logs
// @Description Without page parameters the whole collection is returned.
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (1-based)"
// @Param       page_size query int false "Items per page (max 500)"
// @Success     200 {object} LogsResponse
// @Failure     400 {object} ErrorResponse "Invalid pagination"
// @Failure     401 {object} ErrorResponse "Missing, expired or invalid token"
// @Router      /api/admin-logs [get]
func (h *AdminHandler) Logs(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "page and page_size must be positive integers, page_size at most 500"))
		return
	}

	ctx := c.Request.Context()
	if !page.Requested() {
		logs := h.logs.FindAll(ctx)
		c.JSON(http.StatusOK, LogsResponse{Success: true, Logs: logs, Count: len(logs)})
		return
	}

	resp := h.logs.FindPage(ctx, page)
	meta := resp.Meta()
	c.JSON(http.StatusOK, LogsResponse{
		Success:    true,
		Logs:       resp.Data,
		Count:      len(resp.Data),
		Pagination: &meta,
	})
}

// UserStats aggregates resume logs per username
// @Summary     Per-user statistics
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserStatsResponse
// @Failure     401 {object} ErrorResponse "Missing, expired or invalid token"
// @Router      /api/admin-user-stats [get]
func (h *AdminHandler) UserStats(c *gin.Context) {
	stats := h.logs.AggregateByUsername(c.Request.Context())
	c.JSON(http.StatusOK, UserStatsResponse{Success: true, UserStats: stats, Count: len(stats)})
}

// ValidateCode looks up a resume code and the history of its username
// @Summary     Validate a resume code
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ValidateCodeRequest true "Code to look up"
// @Success     200 {object} ValidateCodeResponse
// @Failure     400 {object} ErrorResponse "Code missing"
// @Failure     401 {object} ErrorResponse "Missing, expired or invalid token"
// @Router      /api/admin-validate-code [post]
func (h *AdminHandler) ValidateCode(c *gin.Context) {
	var req ValidateCodeRequest
	if err := bindJSON(c, &req, map[string]string{"Code.notblank": "Code is required"}); err != nil {
		respondWithError(c, err)
		return
	}

	code := strings.TrimSpace(req.Code)
	result := h.logs.LookupCode(c.Request.Context(), code)

	fields := []interface{}{"code", code, "found", result != nil}
	if claims := middleware.AdminClaims(c); claims != nil {
		fields = append(fields, "admin", claims.Username)
	}
	logger.Get().Infow("resume code validated", fields...)

	c.JSON(http.StatusOK, ValidateCodeResponse{Success: true, Result: result, Found: result != nil})
}
