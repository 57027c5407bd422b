package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "resumeapi/internal/errors"
	"resumeapi/internal/logger"
	"resumeapi/internal/models"
	"resumeapi/internal/render"
	"resumeapi/internal/services"
)

const (
	// DefaultUsername names resumes submitted without a username.
	DefaultUsername = "Resume"

	// HeaderResumeCode carries the code issued for a generated PDF.
	HeaderResumeCode = "X-Resume-Code"
	// HeaderResumeCodeGuarantee tells how strongly that code is known to be unique.
	HeaderResumeCodeGuarantee = "X-Resume-Code-Guarantee"

	recordTimeout = 5 * time.Second
)

// DocumentComposer builds the full HTML document for a resume fragment.
type DocumentComposer interface {
	Compose(fragment, username string) (string, error)
}

// PDFHandler handles resume PDF generation.
type PDFHandler struct {
	codes    services.CodeGenerator
	logs     services.ResumeLogServicer
	composer DocumentComposer
	renderer render.Renderer
	page     render.PageConfig
}

// NewPDFHandler creates a new PDFHandler printing on A4.
func NewPDFHandler(codes services.CodeGenerator, logs services.ResumeLogServicer, composer DocumentComposer, renderer render.Renderer) *PDFHandler {
	return &PDFHandler{
		codes:    codes,
		logs:     logs,
		composer: composer,
		renderer: renderer,
		page:     render.A4(),
	}
}

// GeneratePDFRequest represents the generate-pdf request payload
type GeneratePDFRequest struct {
	HTML     string `json:"html" binding:"notblank"`
	Username string `json:"username"`
}

var generatePDFMessages = map[string]string{
	"HTML.notblank": "HTML content is required",
}

// GeneratePDF renders the submitted resume and returns it as a download
// @Summary     Generate a resume PDF
// @Description Renders the HTML fragment on A4 and returns the PDF. The issued resume code is returned in X-Resume-Code.
// @Tags        pdf
// @Accept      json
// @Produce     application/pdf
// @Param       request body GeneratePDFRequest true "Resume content"
// @Success     200 {file} binary "PDF document"
// @Header      200 {string} X-Resume-Code "Issued resume code"
// @Header      200 {string} X-Resume-Code-Guarantee "unique, fallback_timestamp or probably_non_unique"
// @Failure     400 {object} ErrorResponse "HTML content missing"
// @Failure     500 {object} ErrorResponse "Template missing or render failed"
// @Router      /generate-pdf [post]
func (h *PDFHandler) GeneratePDF(c *gin.Context) {
	var req GeneratePDFRequest
	if err := bindJSON(c, &req, generatePDFMessages); err != nil {
		respondWithError(c, err)
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = DefaultUsername
	}

	ctx := c.Request.Context()
	log := logger.Get()

	code := h.codes.Generate(ctx)
	log.Infow("pdf generation requested",
		"username", username,
		"code", code.Code,
		"guarantee", code.Guarantee,
		"origin", c.GetHeader("Origin"),
	)

	document, err := h.composer.Compose(req.HTML, username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pdf, err := h.renderer.Render(ctx, document, h.page)
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			err = apperrors.Wrap(apperrors.ErrRender, err)
		}
		respondWithError(c, err)
		return
	}

	h.record(ctx, username, code)

	filename := fmt.Sprintf("resume_%s.pdf", sanitizeFilename(username))
	c.Header(HeaderResumeCode, code.Code)
	c.Header(HeaderResumeCodeGuarantee, string(code.Guarantee))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Length", strconv.Itoa(len(pdf)))
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// record stores the generation event. Failures are logged and never reach
// the client, which already has its PDF.
func (h *PDFHandler) record(ctx context.Context, username string, code services.CodeResult) {
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	err := h.logs.Insert(ctx, &models.ResumeLog{Username: username, ResumeCode: code.Code})
	switch {
	case err == nil:
		log.Infow("resume log saved", "username", username, "code", code.Code)
	case errors.Is(err, apperrors.ErrDuplicateCode):
		log.Errorw("resume code collided on insert, log not saved",
			"username", username,
			"code", code.Code,
			"guarantee", code.Guarantee,
		)
	default:
		log.Warnw("resume log not saved", "username", username, "code", code.Code, "error", err)
	}
}
