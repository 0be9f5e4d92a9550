package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/onboarding/internal/domain/errors"
	"github.com/polkiloo/onboarding/internal/domain/model"
	"github.com/polkiloo/onboarding/internal/server/http/dto"
	"github.com/polkiloo/onboarding/internal/usecase"
	"github.com/polkiloo/onboarding/internal/wizard"
)

// AuthorizationHandler serves the medical director authorization pages.
type AuthorizationHandler struct {
	facade AuthorizationFacade
}

// NewAuthorizationHandler constructs AuthorizationHandler.
func NewAuthorizationHandler(facade AuthorizationFacade) *AuthorizationHandler {
	return &AuthorizationHandler{facade: facade}
}

// Entry handles GET /account-setup?code=.
func (h *AuthorizationHandler) Entry(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		redirect(c, wizard.StepLocation.Path())
		return
	}
	redirect(c, usecase.AuthorizationPath(code))
}

// Application handles GET /account-setup/:code.
func (h *AuthorizationHandler) Application(c *gin.Context) {
	code := c.Param("code")
	view, err := h.facade.Application(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			message(c, http.StatusNotFound, notFoundMessage(code))
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ApplicationResponse{
		ApplicationView:     view,
		PrescriptionOptions: []model.PrescriptionRequirement{model.WithPrescription, model.WithoutPrescription},
	})
}

// Authorize handles POST /account-setup/:code.
func (h *AuthorizationHandler) Authorize(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	var req dto.AuthorizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	code := c.Param("code")
	path, err := h.facade.Authorize(c.Request.Context(), s, code, model.AuthorizationRequest{
		AccountAuthorization:    req.AccountAuthorization,
		PrescriptionRequirement: model.PrescriptionRequirement(req.PrescriptionRequirement),
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			message(c, http.StatusNotFound, notFoundMessage(code))
			return
		}
		writeError(c, err)
		return
	}
	next(c, path)
}

// Submitted handles GET /account-setup/:code/submitted.
func (h *AuthorizationHandler) Submitted(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	code := c.Param("code")
	if !h.facade.AuthorizationConfirmed(c.Request.Context(), s, code) {
		redirect(c, usecase.AuthorizationPath(code))
		return
	}
	c.JSON(http.StatusOK, dto.AuthorizationSubmittedResponse{ReferenceCode: code})
}

func notFoundMessage(code string) string {
	return "We couldn't find an application with the reference code " + code + ". Please double-check the code and try again."
}
