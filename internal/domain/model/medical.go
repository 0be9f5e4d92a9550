package model

import "github.com/polkiloo/onboarding/internal/pkg/validation"

// MedicalDirectorInfo identifies the director who authorizes the account.
type MedicalDirectorInfo struct {
	IsAlsoMedicalDirector bool   `json:"isAlsoMedicalDirector"`
	Name                  string `json:"name"`
	LicenseNo             string `json:"licenseNo"`
	Email                 string `json:"email"`
}

func (m *MedicalDirectorInfo) Sanitize() {
	m.Name = validation.StripTags(m.Name)
	m.LicenseNo = validation.StripTags(m.LicenseNo)
	m.Email = validation.StripTags(m.Email)
}

// Rules requires a director e-mail only when the holder is someone else.
func (m MedicalDirectorInfo) Rules() []validation.Rule {
	rules := []validation.Rule{
		validation.Required("name", m.Name, "Name is required"),
	}
	if !m.IsAlsoMedicalDirector {
		rules = append(rules, validation.Email("email", m.Email, "Valid email is required"))
	}
	return rules
}

func (m *MedicalDirectorInfo) Validate() validation.Errors {
	return validation.Check(m.Rules()...)
}
