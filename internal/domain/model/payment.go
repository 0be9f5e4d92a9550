package model

import "github.com/polkiloo/onboarding/internal/pkg/validation"

// PaymentMethod enumerates accepted payment methods.
type PaymentMethod string

const (
	PaymentVisa         PaymentMethod = "visa"
	PaymentMastercard   PaymentMethod = "mastercard"
	PaymentAmex         PaymentMethod = "amex"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// DefaultPaymentMethod is preselected on the payment step.
const DefaultPaymentMethod = PaymentVisa

var paymentMethods = []string{
	string(PaymentVisa),
	string(PaymentMastercard),
	string(PaymentAmex),
	string(PaymentBankTransfer),
}

// Label returns the display name of the method.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentVisa:
		return "VISA"
	case PaymentMastercard:
		return "Master Card"
	case PaymentAmex:
		return "American Express"
	case PaymentBankTransfer:
		return "E-Transfer"
	default:
		return string(m)
	}
}

// CVVLength is the number of CVV digits the card network uses.
func (m PaymentMethod) CVVLength() int {
	if m == PaymentAmex {
		return 4
	}
	return 3
}

// PaymentInfo is the data captured by the payment step.
type PaymentInfo struct {
	PaymentMethod        PaymentMethod `json:"paymentMethod"`
	CardNumber           string        `json:"cardNumber"`
	NameOnCard           string        `json:"nameOnCard"`
	CardExpiryDate       string        `json:"cardExpiryDate"`
	CVV                  string        `json:"cvv"`
	PaymentAuthorization bool          `json:"paymentAuthorization"`
}

// Sanitize strips markup from text fields and applies the default method.
func (p *PaymentInfo) Sanitize() {
	if p.PaymentMethod == "" {
		p.PaymentMethod = DefaultPaymentMethod
	}
	p.NameOnCard = validation.StripTags(p.NameOnCard)
	p.CardNumber = validation.StripTags(p.CardNumber)
	p.CardExpiryDate = validation.StripTags(p.CardExpiryDate)
	p.CVV = validation.StripTags(p.CVV)
}

// Rules returns the payment schema for the selected method. Bank transfer
// carries no card rules.
func (p PaymentInfo) Rules() []validation.Rule {
	rules := []validation.Rule{
		validation.OneOf("paymentMethod", string(p.PaymentMethod), paymentMethods, "Select a payment method"),
	}
	if p.PaymentMethod != PaymentBankTransfer {
		rules = append(rules, p.cardRules()...)
	}
	return append(rules, validation.True("paymentAuthorization", p.PaymentAuthorization, "You must authorize your account."))
}

func (p PaymentInfo) cardRules() []validation.Rule {
	n := p.PaymentMethod.CVVLength()
	cvvMessage := "CVV must be 3 digits"
	if n == 4 {
		cvvMessage = "CVV must be 4 digits"
	}
	return []validation.Rule{
		validation.Required("cardNumber", p.CardNumber, "Card Number is required"),
		validation.Required("nameOnCard", p.NameOnCard, "Name is required"),
		validation.Required("cardExpiryDate", p.CardExpiryDate, "Expiry Date is required"),
		validation.Required("cvv", p.CVV, "CVV is required"),
		validation.Digits("cvv", p.CVV, n, cvvMessage),
	}
}

// Validate checks the payment schema.
func (p *PaymentInfo) Validate() validation.Errors {
	return validation.Check(p.Rules()...)
}
