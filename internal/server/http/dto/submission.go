package dto

import (
	"github.com/polkiloo/onboarding/internal/domain/model"
	"github.com/polkiloo/onboarding/internal/usecase"
	"github.com/polkiloo/onboarding/internal/wizard"
)

// ReviewResponse is the summary shown before submission.
type ReviewResponse struct {
	Summary *usecase.Summary   `json:"summary"`
	Steps   []wizard.StepState `json:"steps"`
}

// SubmittedResponse confirms a submission.
type SubmittedResponse struct {
	ReferenceCode string `json:"referenceCode"`
}

// ApplicationResponse is the authorization form state.
type ApplicationResponse struct {
	*usecase.ApplicationView
	PrescriptionOptions []model.PrescriptionRequirement `json:"prescriptionOptions"`
}

// AuthorizationRequest is the payload of POST /account-setup/:code.
type AuthorizationRequest struct {
	AccountAuthorization    bool   `json:"accountAuthorization"`
	PrescriptionRequirement string `json:"prescriptionRequirement"`
}

// AuthorizationSubmittedResponse confirms an authorization.
type AuthorizationSubmittedResponse struct {
	ReferenceCode string `json:"referenceCode"`
}
