package test

import (
	"time"

	"github.com/polkiloo/onboarding/internal/domain/model"
)

// PDFDocument returns a document of size bytes detected as PDF.
func PDFDocument(name string, size int) model.Document {
	data := make([]byte, size)
	copy(data, "%PDF-1.4\n")
	return model.Document{Name: name, ContentType: "application/pdf", Data: data}
}

// ValidAccount returns an account that passes validation once documents
// are attached.
func ValidAccount() model.AccountInfo {
	return model.AccountInfo{
		Account: model.AccountHolder{
			HolderName:       "Jane Roe",
			Designation:      "RPh",
			OrganizationName: "Roe Pharmacy",
		},
		BillingAddress: model.Address{
			AddressLine1: "40 Laird Drive",
			City:         "Toronto",
			Province:     "ontario",
			PostalCode:   "M4G 3T2",
		},
		SameAsBilling: true,
		Phone:         "416-555-0100",
		EmailAddress:  "jane@example.com",
	}
}

// ValidPayment returns a VISA payment with every card field filled.
func ValidPayment() model.PaymentInfo {
	return model.PaymentInfo{
		PaymentMethod:        model.PaymentVisa,
		CardNumber:           "4111111111111111",
		NameOnCard:           "Jane Roe",
		CardExpiryDate:       "12/30",
		CVV:                  "123",
		PaymentAuthorization: true,
	}
}

func ValidAcknowledgements() model.AcknowledgementInfo {
	return model.AcknowledgementInfo{NameToAcknowledge: "Jane Roe", AcknowledgementConsent: true}
}

func ValidMedicalDirector() model.MedicalDirectorInfo {
	return model.MedicalDirectorInfo{Name: "Dr. Alex Chen", LicenseNo: "CPSO-123", Email: "alex@example.com"}
}

// OpenApplication returns an active application for code.
func OpenApplication(code string) *model.ApplicationDetails {
	return &model.ApplicationDetails{
		Application: model.Application{
			ID:            1,
			AccountID:     1,
			ReferenceCode: code,
			ExpiryDate:    time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
			IsActive:      true,
		},
		AccountHolder:        "Jane Roe",
		OrganizationName:     "Roe Pharmacy",
		MedicalDirectorName:  "Dr. Alex Chen",
		MedicalDirectorEmail: "alex@example.com",
	}
}
