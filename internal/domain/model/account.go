package model

import (
	"github.com/polkiloo/onboarding/internal/pkg/validation"
)

// Province keys accepted for addresses.
var Provinces = map[string]string{
	"alberta":                   "Alberta",
	"british_columbia":          "British Columbia",
	"manitoba":                  "Manitoba",
	"new_brunswick":             "New Brunswick",
	"newfoundland_and_labrador": "Newfoundland and Labrador",
	"nova_scotia":               "Nova Scotia",
	"ontario":                   "Ontario",
	"prince_edward_island":      "Prince Edward Island",
	"quebec":                    "Quebec",
	"saskatchewan":              "Saskatchewan",
}

var provinceKeys = func() []string {
	keys := make([]string, 0, len(Provinces))
	for k := range Provinces {
		keys = append(keys, k)
	}
	return keys
}()

// AccountHolder identifies the professional opening the account.
type AccountHolder struct {
	HolderName       string `json:"holderName"`
	Designation      string `json:"designation"`
	OrganizationName string `json:"organizationName"`
	ContactPerson    string `json:"contactPerson"`
}

// Address is a billing or shipping address.
type Address struct {
	AddressLine1 string `json:"addressLine_1"`
	AddressLine2 string `json:"addressLine_2"`
	City         string `json:"city"`
	Province     string `json:"province"`
	PostalCode   string `json:"postalCode"`
}

// DeliveryHours holds preferred receiving hours per weekday.
type DeliveryHours struct {
	Monday    string `json:"Monday"`
	Tuesday   string `json:"Tuesday"`
	Wednesday string `json:"Wednesday"`
	Thursday  string `json:"Thursday"`
	Friday    string `json:"Friday"`
}

// Delivery carries optional delivery preferences.
type Delivery struct {
	Instruction string        `json:"instruction"`
	Hours       DeliveryHours `json:"hours"`
}

// DocumentMeta describes an uploaded document without its content.
type DocumentMeta struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// AccountInfo is the data captured by the account step.
type AccountInfo struct {
	Account         AccountHolder  `json:"account"`
	BillingAddress  Address        `json:"billingAddress"`
	ShippingAddress Address        `json:"shippingAddress"`
	SameAsBilling   bool           `json:"sameAsBilling"`
	Delivery        Delivery       `json:"delivery"`
	Phone           string         `json:"phone"`
	EmailAddress    string         `json:"emailAddress"`
	Fax             string         `json:"fax"`
	Documents       []DocumentMeta `json:"documents"`
}

// SyncShipping copies billing into shipping when SameAsBilling is set.
// Calling it repeatedly with unchanged billing is a no-op.
func (a *AccountInfo) SyncShipping() {
	if a.SameAsBilling {
		a.ShippingAddress = a.BillingAddress
	}
}

// Sanitize strips markup from every free-text field.
func (a *AccountInfo) Sanitize() {
	a.Account.HolderName = validation.StripTags(a.Account.HolderName)
	a.Account.Designation = validation.StripTags(a.Account.Designation)
	a.Account.OrganizationName = validation.StripTags(a.Account.OrganizationName)
	a.Account.ContactPerson = validation.StripTags(a.Account.ContactPerson)
	a.BillingAddress.sanitize()
	a.ShippingAddress.sanitize()
	a.Delivery.Instruction = validation.StripTags(a.Delivery.Instruction)
	a.Phone = validation.StripTags(a.Phone)
	a.EmailAddress = validation.StripTags(a.EmailAddress)
	a.Fax = validation.StripTags(a.Fax)
}

func (a *Address) sanitize() {
	a.AddressLine1 = validation.StripTags(a.AddressLine1)
	a.AddressLine2 = validation.StripTags(a.AddressLine2)
	a.City = validation.StripTags(a.City)
	a.Province = validation.StripTags(a.Province)
	a.PostalCode = validation.StripTags(a.PostalCode)
}

// Rules returns the account step schema. Shipping rules are omitted while
// shipping mirrors billing.
func (a AccountInfo) Rules() []validation.Rule {
	rules := []validation.Rule{
		validation.Required("account.holderName", a.Account.HolderName, "Holder name is required"),
		validation.Required("account.designation", a.Account.Designation, "Designation is required"),
		validation.Required("account.organizationName", a.Account.OrganizationName, "Organization name is required"),
	}
	rules = append(rules, a.BillingAddress.rules("billingAddress")...)
	if !a.SameAsBilling {
		rules = append(rules, a.ShippingAddress.rules("shippingAddress")...)
	}
	rules = append(rules,
		validation.Required("phone", a.Phone, "Phone is required"),
		validation.Required("emailAddress", a.EmailAddress, "Email Address is required"),
		validation.Email("emailAddress", a.EmailAddress, "A valid Email Address is required"),
		validation.MinItems("documents", len(a.Documents), 1, "Upload at least one document"),
	)
	return rules
}

// Validate syncs shipping and checks the account schema.
func (a *AccountInfo) Validate() validation.Errors {
	a.SyncShipping()
	return validation.Check(a.Rules()...)
}

func (a Address) rules(prefix string) []validation.Rule {
	return []validation.Rule{
		validation.Required(prefix+".addressLine_1", a.AddressLine1, "Address line 1 is required"),
		validation.Required(prefix+".city", a.City, "City is required"),
		validation.Required(prefix+".province", a.Province, "Province is required"),
		validation.OneOf(prefix+".province", a.Province, provinceKeys, "Province is not recognised"),
		validation.Required(prefix+".postalCode", a.PostalCode, "Postal code is required"),
	}
}
