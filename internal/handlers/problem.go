package handlers

import (
	"errors"
	"fmt"

	"catalogue/internal/i18n"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MIMEApplicationProblemJSON is the media type of problem detail responses.
const MIMEApplicationProblemJSON = "application/problem+json"

// ProblemDetail is an RFC 7807 error body. Errors carries per-field
// validation messages.
type ProblemDetail struct {
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Status   int      `json:"status"`
	Detail   string   `json:"detail,omitempty"`
	Instance string   `json:"instance,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

func writeProblem(c *fiber.Ctx, status int, title, detail string, errs []string) error {
	return c.Status(status).JSON(ProblemDetail{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Path(),
		Errors:   errs,
	}, MIMEApplicationProblemJSON)
}

// ErrorHandler renders every error that escapes a handler as a problem detail.
// *fiber.Error keeps its status code; anything else is a 500.
func ErrorHandler(messages *i18n.Bundle, log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		locale := messages.Match(c.Get(fiber.HeaderAcceptLanguage))

		status := fiber.StatusInternalServerError
		detail := messages.Message(locale, i18n.KeyInternalErrorDetail)

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			detail = fe.Message
		} else {
			log.Error("unhandled request error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		title, ok := messages.Lookup(locale, fmt.Sprintf("errors.%d.title", status))
		if !ok {
			title = fiber.ErrInternalServerError.Message
			if fe != nil {
				title = fe.Message
			}
		}
		return writeProblem(c, status, title, detail, nil)
	}
}
