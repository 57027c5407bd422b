package handlers

import (
	"errors"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "resumeapi/internal/errors"
	"resumeapi/internal/middleware"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"HTML content is required"`
	Code    string `json:"code" example:"VALIDATION_ERROR"`
	Details string `json:"details,omitempty"`
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.RespondError(c, err)
}

// bindJSON binds the request body into dst. Validation failures become
// VALIDATION_ERROR with the message registered for "Field.tag" in messages,
// or a generic one.
func bindJSON(c *gin.Context, dst interface{}, messages map[string]string) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return apperrors.WithMessage(apperrors.ErrValidation, msg)
		}
		return apperrors.WithMessage(apperrors.ErrValidation, fe.Field()+" is invalid")
	}
	return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrValidation, "Request body must be valid JSON"), err)
}

// sanitizeFilename keeps ASCII letters and digits and replaces every other
// character with an underscore.
func sanitizeFilename(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}
