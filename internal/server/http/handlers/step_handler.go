package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/onboarding/internal/domain/model"
	"github.com/polkiloo/onboarding/internal/server/http/dto"
	"github.com/polkiloo/onboarding/internal/session"
	"github.com/polkiloo/onboarding/internal/wizard"
)

// StepHandler serves the wizard step pages.
type StepHandler struct {
	facade WizardFacade
}

// NewStepHandler constructs StepHandler.
func NewStepHandler(facade WizardFacade) *StepHandler {
	return &StepHandler{facade: facade}
}

// Locations handles GET /locations.
func (h *StepHandler) Locations(c *gin.Context) {
	c.JSON(http.StatusOK, dto.LocationsResponse{Locations: model.Locations})
}

// Steps handles GET /steps. The optional path query marks the active step.
func (h *StepHandler) Steps(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.StepsResponse{Steps: h.facade.Progress(c.Request.Context(), s, c.Query("path"))})
}

// Location handles GET /location.
func (h *StepHandler) Location(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	h.show(c, s, wizard.StepLocation, dto.LocationData{
		Location:  h.facade.Location(c.Request.Context(), s),
		Locations: model.Locations,
	})
}

// SaveLocation handles POST /location.
func (h *StepHandler) SaveLocation(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	var req dto.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	path, err := h.facade.SaveLocation(c.Request.Context(), s, req.Location)
	if err != nil {
		writeError(c, err)
		return
	}
	next(c, path)
}

// Account handles GET /account.
func (h *StepHandler) Account(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	h.show(c, s, wizard.StepAccount, dto.AccountData{
		Account:   h.facade.Account(c.Request.Context(), s),
		Provinces: model.Provinces,
	})
}

// SaveAccount handles POST /account.
func (h *StepHandler) SaveAccount(c *gin.Context) {
	save(c, h.facade.SaveAccount)
}

// Payment handles GET /payment.
func (h *StepHandler) Payment(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	h.show(c, s, wizard.StepPayment, h.facade.Payment(c.Request.Context(), s))
}

// SavePayment handles POST /payment.
func (h *StepHandler) SavePayment(c *gin.Context) {
	save(c, h.facade.SavePayment)
}

// Acknowledgements handles GET /acknowledgements.
func (h *StepHandler) Acknowledgements(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	h.show(c, s, wizard.StepAcknowledgements, h.facade.Acknowledgements(c.Request.Context(), s))
}

// SaveAcknowledgements handles POST /acknowledgements.
func (h *StepHandler) SaveAcknowledgements(c *gin.Context) {
	save(c, h.facade.SaveAcknowledgements)
}

// MedicalDirector handles GET /medical-director.
func (h *StepHandler) MedicalDirector(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	h.show(c, s, wizard.StepMedicalDirector, h.facade.MedicalDirector(c.Request.Context(), s))
}

// SaveMedicalDirector handles POST /medical-director.
func (h *StepHandler) SaveMedicalDirector(c *gin.Context) {
	save(c, h.facade.SaveMedicalDirector)
}

func (h *StepHandler) show(c *gin.Context, s *session.Session, step wizard.Step, data any) {
	c.JSON(http.StatusOK, dto.StepResponse{
		Data:  data,
		Steps: h.facade.Progress(c.Request.Context(), s, step.Path()),
	})
}

// save binds the JSON body into T and answers with the next path.
func save[T any](c *gin.Context, fn func(context.Context, *session.Session, T) (string, error)) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	var form T
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	path, err := fn(c.Request.Context(), s, form)
	if err != nil {
		writeError(c, err)
		return
	}
	next(c, path)
}
