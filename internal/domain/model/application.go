package model

import (
	"github.com/polkiloo/onboarding/internal/pkg/validation"
)

// PrescriptionRequirement is the director's choice on prescriptions.
type PrescriptionRequirement string

const (
	WithPrescription    PrescriptionRequirement = "withPrescription"
	WithoutPrescription PrescriptionRequirement = "withoutPrescription"
)

var prescriptionRequirements = []string{string(WithPrescription), string(WithoutPrescription)}

// Application is the server-owned record behind a reference code. Dates
// are ISO strings as the backend sends them, date-only or full timestamps.
type Application struct {
	ID                      int64                   `json:"id"`
	AccountID               int64                   `json:"accountId"`
	ReferenceCode           string                  `json:"referenceCode"`
	ExpiryDate              string                  `json:"expiryDate"`
	IsActive                bool                    `json:"isActive"`
	IsExpired               bool                    `json:"isExpired"`
	IsSubmitted             bool                    `json:"isSubmitted"`
	SubmittedDate           string                  `json:"submittedDate,omitempty"`
	PrescriptionRequirement PrescriptionRequirement `json:"prescriptionRequirement,omitempty"`
}

// Closed reports whether the application no longer accepts authorization.
func (a Application) Closed() bool {
	return a.IsSubmitted || !a.IsActive || a.IsExpired
}

// ApplicationDetails is the application plus the parties shown to the director.
type ApplicationDetails struct {
	Application          Application `json:"application"`
	AccountHolder        string      `json:"accountHolder"`
	OrganizationName     string      `json:"organizationName"`
	MedicalDirectorName  string      `json:"medicalDirectorName"`
	MedicalDirectorEmail string      `json:"medicalDirectorEmail"`
}

// AuthorizationRequest is the director's confirmation of terms.
type AuthorizationRequest struct {
	ReferenceCode           string                  `json:"referenceCode"`
	AccountAuthorization    bool                    `json:"accountAuthorization"`
	PrescriptionRequirement PrescriptionRequirement `json:"prescriptionRequirement"`
	MedicalDirectorEmail    string                  `json:"medicalDirectorEmail"`
}

func (r AuthorizationRequest) Rules() []validation.Rule {
	return []validation.Rule{
		validation.Required("referenceCode", r.ReferenceCode, "Reference Code is required."),
		validation.OneOf("prescriptionRequirement", string(r.PrescriptionRequirement), prescriptionRequirements, "Select a prescription requirement."),
		validation.True("accountAuthorization", r.AccountAuthorization, "You must authorize your account."),
	}
}

func (r *AuthorizationRequest) Validate() validation.Errors {
	return validation.Check(r.Rules()...)
}
