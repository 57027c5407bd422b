package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "resumeapi/internal/errors"
)

// FrontendHandler serves the bundled static frontend for local development.
type FrontendHandler struct {
	dir string
}

// NewFrontendHandler returns a handler for dir, or nil when dir does not exist.
func NewFrontendHandler(dir string) *FrontendHandler {
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}
	return &FrontendHandler{dir: dir}
}

// Register wires the named pages. Everything else falls through to Fallback.
func (h *FrontendHandler) Register(router gin.IRoutes) {
	index := filepath.Join(h.dir, "index.html")
	router.StaticFile("/", index)
	router.StaticFile("/landing-page", index)
	router.StaticFile("/resume-form", filepath.Join(h.dir, "resume-form.html"))
	router.StaticFile("/preview", filepath.Join(h.dir, "preview.html"))
}

// Fallback serves the requested file if it exists under the frontend
// directory and index.html otherwise.
func (h *FrontendHandler) Fallback(c *gin.Context) {
	rel := path.Clean("/" + c.Request.URL.Path)
	candidate := filepath.Join(h.dir, filepath.FromSlash(rel))
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		c.File(candidate)
		return
	}
	c.File(filepath.Join(h.dir, "index.html"))
}

// IsAPIPath reports whether p belongs to the JSON API rather than the frontend.
func IsAPIPath(p string) bool {
	return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/generate-pdf")
}

// NotFound handles unmatched routes. API paths always get the JSON 404;
// other GETs go to the frontend when one is served.
func NotFound(frontend *FrontendHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		switch {
		case IsAPIPath(p):
			respondWithError(c, apperrors.ErrNotFound)
		case frontend != nil && (c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead):
			frontend.Fallback(c)
		default:
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Not found",
				"code":    apperrors.ErrNotFound.Code,
				"message": "This is an API server. The frontend is served separately.",
			})
		}
	}
}
