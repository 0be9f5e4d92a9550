package model

import "github.com/polkiloo/onboarding/internal/pkg/validation"

// AcknowledgementInfo records the financial-responsibility acknowledgement.
type AcknowledgementInfo struct {
	NameToAcknowledge      string `json:"nameToAcknowledge"`
	AcknowledgementConsent bool   `json:"acknowledgementConsent"`
}

func (a *AcknowledgementInfo) Sanitize() {
	a.NameToAcknowledge = validation.StripTags(a.NameToAcknowledge)
}

func (a AcknowledgementInfo) Rules() []validation.Rule {
	return []validation.Rule{
		validation.Required("nameToAcknowledge", a.NameToAcknowledge, "Name is required"),
		validation.True("acknowledgementConsent", a.AcknowledgementConsent, "You must acknowledge the terms."),
	}
}

func (a *AcknowledgementInfo) Validate() validation.Errors {
	return validation.Check(a.Rules()...)
}
