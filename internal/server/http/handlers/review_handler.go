package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/onboarding/internal/server/http/dto"
	"github.com/polkiloo/onboarding/internal/usecase"
	"github.com/polkiloo/onboarding/internal/wizard"
)

// ReviewHandler serves the review page and the submission confirmation.
type ReviewHandler struct {
	submissions SubmissionFacade
	steps       WizardFacade
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(submissions SubmissionFacade, steps WizardFacade) *ReviewHandler {
	return &ReviewHandler{submissions: submissions, steps: steps}
}

// Review handles GET /review. Incomplete wizards are redirected to the
// first missing step.
func (h *ReviewHandler) Review(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	summary, err := h.submissions.Review(c.Request.Context(), s)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReviewResponse{
		Summary: summary,
		Steps:   h.steps.Progress(c.Request.Context(), s, wizard.StepReview.Path()),
	})
}

// Submit handles POST /review.
func (h *ReviewHandler) Submit(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	code, err := h.submissions.Submit(c.Request.Context(), s)
	if err != nil {
		writeError(c, err)
		return
	}
	next(c, usecase.ConfirmationPath(code))
}

// Submitted handles GET /submitted?code=. Only the session that obtained
// the code sees the confirmation.
func (h *ReviewHandler) Submitted(c *gin.Context) {
	s, ok := requestSession(c)
	if !ok {
		return
	}
	code := c.Query("code")
	if !h.submissions.SubmissionConfirmed(c.Request.Context(), s, code) {
		redirect(c, wizard.StepLocation.Path())
		return
	}
	c.JSON(http.StatusOK, dto.SubmittedResponse{ReferenceCode: code})
}
