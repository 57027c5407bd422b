package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"resumeapi/internal/config"
	"resumeapi/internal/services"
)

// HealthHandler serves liveness and diagnostic endpoints.
type HealthHandler struct {
	cfg  *config.Config
	logs services.ResumeLogServicer
	now  func() time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(cfg *config.Config, logs services.ResumeLogServicer) *HealthHandler {
	return &HealthHandler{cfg: cfg, logs: logs, now: time.Now}
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status    string `json:"status" example:"OK"`
	Timestamp string `json:"timestamp" example:"2024-06-10T06:15:23.456Z"`
}

// Health reports liveness. It does not touch the store.
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// APITest is a trivial reachability check for the frontend.
// @Summary     Backend reachability check
// @Tags        health
// @Produce     json
// @Success     200 {object} map[string]string
// @Router      /api/test [get]
func (h *HealthHandler) APITest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Backend is live!"})
}

type pathStatus struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// Debug reports runtime and file layout diagnostics. Only routed outside production.
// @Summary     Runtime diagnostics
// @Tags        health
// @Produce     json
// @Success     200 {object} map[string]interface{}
// @Router      /api/debug [get]
func (h *HealthHandler) Debug(c *gin.Context) {
	cwd, _ := os.Getwd()
	imagesDir := filepath.Join(h.cfg.FrontendDir, "images")

	info := gin.H{
		"cwd":            cwd,
		"env":            h.cfg.Env,
		"goVersion":      runtime.Version(),
		"baseUrl":        h.cfg.PublicBaseURL,
		"storeAvailable": h.logs.Available(c.Request.Context()),
		"files": gin.H{
			"template":    statPath(h.cfg.TemplatePath),
			"stylesheet":  statPath(h.cfg.StylesheetPath),
			"frontendDir": statPath(h.cfg.FrontendDir),
			"imagesDir":   statPath(imagesDir),
		},
		"frontendContents": listDir(h.cfg.FrontendDir),
		"imagesContents":   listDir(imagesDir),
	}
	c.JSON(http.StatusOK, info)
}

// statPath reports an empty path as the embedded default.
func statPath(p string) pathStatus {
	if p == "" {
		return pathStatus{Path: "(embedded)", Exists: true}
	}
	_, err := os.Stat(p)
	return pathStatus{Path: p, Exists: err == nil}
}

func listDir(dir string) interface{} {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "Error: " + err.Error()
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
