package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/onboarding/internal/adapter/backend"
	"github.com/polkiloo/onboarding/internal/documents"
	domainErrors "github.com/polkiloo/onboarding/internal/domain/errors"
	"github.com/polkiloo/onboarding/internal/pkg/validation"
	"github.com/polkiloo/onboarding/internal/server/http/dto"
	"github.com/polkiloo/onboarding/internal/server/http/middleware"
	"github.com/polkiloo/onboarding/internal/session"
	"github.com/polkiloo/onboarding/internal/usecase"
)

// GenericErrorMessage is shown for backend failures without a specific text.
const GenericErrorMessage = "Something went wrong!"

// CurrentSession extracts the session bound to the request.
func CurrentSession(c *gin.Context) *session.Session {
	return middleware.CurrentSession(c)
}

// redirect answers a gated route with 303 and the target path.
func redirect(c *gin.Context, path string) {
	c.Header("Location", path)
	c.JSON(http.StatusSeeOther, dto.RedirectResponse{Redirect: path})
}

func next(c *gin.Context, path string) {
	c.JSON(http.StatusOK, dto.NextResponse{Next: path})
}

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, dto.MessageResponse{Message: msg})
}

// writeError maps use case errors to HTTP answers.
func writeError(c *gin.Context, err error) {
	var (
		invalid  *validation.Error
		missing  *usecase.MissingStepError
		rejected *documents.RejectedError
		apiErr   *backend.APIError
	)

	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Errors: invalid.Fields})
	case errors.As(err, &missing):
		redirect(c, missing.Path())
	case errors.As(err, &rejected):
		status := http.StatusUnsupportedMediaType
		if errors.Is(rejected, domainErrors.ErrFileTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		message(c, status, rejected.Message)
	case errors.Is(err, domainErrors.ErrDuplicateAccount):
		message(c, http.StatusConflict, domainErrors.ErrDuplicateAccount.Error())
	case errors.Is(err, domainErrors.ErrSubmissionInProgress):
		message(c, http.StatusConflict, domainErrors.ErrSubmissionInProgress.Error())
	case errors.Is(err, domainErrors.ErrApplicationClosed):
		message(c, http.StatusConflict, usecase.ClosedNotice)
	case errors.Is(err, domainErrors.ErrDocumentIndex):
		message(c, http.StatusNotFound, domainErrors.ErrDocumentIndex.Error())
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.As(err, &apiErr):
		msg := apiErr.UserMessage()
		if msg == "" {
			msg = GenericErrorMessage
		}
		_ = c.Error(err)
		message(c, http.StatusBadGateway, msg)
	case errors.Is(err, domainErrors.ErrBackendUnavailable):
		_ = c.Error(err)
		message(c, http.StatusBadGateway, GenericErrorMessage)
	default:
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
	}
}

// requestSession returns the bound session or answers 500 when the
// session middleware did not run.
func requestSession(c *gin.Context) (*session.Session, bool) {
	s := CurrentSession(c)
	if s == nil {
		c.Status(http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}
