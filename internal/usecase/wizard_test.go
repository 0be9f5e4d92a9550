package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	domainErrors "github.com/polkiloo/onboarding/internal/domain/errors"
	"github.com/polkiloo/onboarding/internal/domain/model"
	"github.com/polkiloo/onboarding/internal/pkg/validation"
	"github.com/polkiloo/onboarding/internal/session"
	testhelpers "github.com/polkiloo/onboarding/internal/test"
)

func TestWizardLocation(t *testing.T) {
	f := newFixture()
	uc := f.wizard()
	ctx := context.Background()

	if got := uc.Location(ctx, f.session); got != "1" {
		t.Fatalf("expected default location 1, got %q", got)
	}

	_, err := uc.SaveLocation(ctx, f.session, "7")
	if !errors.Is(err, domainErrors.ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation, got %v", err)
	}
	var invalid *validation.Error
	if !errors.As(err, &invalid) || invalid.Fields["location"] == "" {
		t.Fatalf("expected location validation error, got %v", err)
	}

	next, err := uc.SaveLocation(ctx, f.session, "2")
	if err != nil || next != "/account" {
		t.Fatalf("expected next /account, got %q (%v)", next, err)
	}
	if got := uc.Location(ctx, f.session); got != "2" {
		t.Fatalf("expected stored location 2, got %q", got)
	}
}

func TestWizardSaveAccountUsesUploadedDocuments(t *testing.T) {
	f := newFixture()
	uc := f.wizard()
	ctx := context.Background()

	acc := testhelpers.ValidAccount()
	acc.Documents = []model.DocumentMeta{{Name: "forged.pdf", ContentType: "application/pdf", Size: 1}}
	_, err := uc.SaveAccount(ctx, f.session, acc)
	var invalid *validation.Error
	if !errors.As(err, &invalid) || invalid.Fields["documents"] == "" {
		t.Fatalf("expected documents error for client supplied list, got %v", err)
	}
	if f.session.HasData(ctx, session.KeyAccount) {
		t.Fatalf("expected invalid account not to be stored")
	}

	if _, err := f.store.Add(f.session.ID(), []model.Document{testhelpers.PDFDocument("license.pdf", 32)}); err != nil {
		t.Fatalf("add document: %v", err)
	}
	acc.BillingAddress.City = "<b>Toronto</b>"
	next, err := uc.SaveAccount(ctx, f.session, acc)
	if err != nil || next != "/payment" {
		t.Fatalf("expected next /payment, got %q (%v)", next, err)
	}

	stored := uc.Account(ctx, f.session)
	if stored.BillingAddress.City != "Toronto" {
		t.Fatalf("expected sanitised city, got %q", stored.BillingAddress.City)
	}
	if diff := cmp.Diff(stored.BillingAddress, stored.ShippingAddress); diff != "" {
		t.Fatalf("expected shipping to mirror billing (-billing +shipping):\n%s", diff)
	}
	if len(stored.Documents) != 1 || stored.Documents[0].Name != "license.pdf" {
		t.Fatalf("expected server-side document list, got %+v", stored.Documents)
	}
}

func TestWizardPaymentDefaultsAndValidation(t *testing.T) {
	f := newFixture()
	uc := f.wizard()
	ctx := context.Background()

	if got := uc.Payment(ctx, f.session).PaymentMethod; got != model.PaymentVisa {
		t.Fatalf("expected default visa, got %q", got)
	}

	tests := []struct {
		name   string
		mutate func(*model.PaymentInfo)
		field  string
		msg    string
	}{
		{name: "amex needs four digit cvv", mutate: func(p *model.PaymentInfo) { p.PaymentMethod = model.PaymentAmex }, field: "cvv", msg: "CVV must be 4 digits"},
		{name: "card number required", mutate: func(p *model.PaymentInfo) { p.CardNumber = "" }, field: "cardNumber", msg: "Card Number is required"},
		{name: "authorization required", mutate: func(p *model.PaymentInfo) { p.PaymentAuthorization = false }, field: "paymentAuthorization", msg: "You must authorize your account."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testhelpers.ValidPayment()
			tt.mutate(&p)
			_, err := uc.SavePayment(ctx, f.session, p)
			var invalid *validation.Error
			if !errors.As(err, &invalid) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if got := invalid.Fields[tt.field]; got != tt.msg {
				t.Fatalf("expected %q for %s, got %q", tt.msg, tt.field, got)
			}
		})
	}

	bank := model.PaymentInfo{PaymentMethod: model.PaymentBankTransfer, PaymentAuthorization: true}
	if next, err := uc.SavePayment(ctx, f.session, bank); err != nil || next != "/acknowledgements" {
		t.Fatalf("expected bank transfer without card to pass, got %q (%v)", next, err)
	}
}

func TestWizardMedicalDirectorEmailRule(t *testing.T) {
	f := newFixture()
	uc := f.wizard()
	ctx := context.Background()

	md := testhelpers.ValidMedicalDirector()
	md.Email = "not-an-email"
	if _, err := uc.SaveMedicalDirector(ctx, f.session, md); err == nil {
		t.Fatalf("expected invalid email to fail")
	}

	md.IsAlsoMedicalDirector = true
	next, err := uc.SaveMedicalDirector(ctx, f.session, md)
	if err != nil || next != "/review" {
		t.Fatalf("expected email rule to be skipped, got %q (%v)", next, err)
	}
	if got := uc.MedicalDirector(ctx, f.session); !got.IsAlsoMedicalDirector {
		t.Fatalf("expected stored medical director, got %+v", got)
	}
}

func TestWizardAcknowledgementsAndProgress(t *testing.T) {
	f := newFixture()
	uc := f.wizard()
	ctx := context.Background()

	if _, err := uc.SaveAcknowledgements(ctx, f.session, model.AcknowledgementInfo{}); err == nil {
		t.Fatalf("expected empty acknowledgements to fail")
	}
	next, err := uc.SaveAcknowledgements(ctx, f.session, testhelpers.ValidAcknowledgements())
	if err != nil || next != "/medical-director" {
		t.Fatalf("expected next /medical-director, got %q (%v)", next, err)
	}
	if got := uc.Acknowledgements(ctx, f.session); !got.AcknowledgementConsent {
		t.Fatalf("expected stored consent")
	}

	steps := uc.Progress(ctx, f.session, "/acknowledgements")
	for _, step := range steps {
		wantCompleted := step.Path == "/acknowledgements"
		if step.Completed != wantCompleted || step.Active != wantCompleted {
			t.Fatalf("unexpected state for %s: %+v", step.Path, step)
		}
	}
}

func TestWizardSaveFailsOnStorageError(t *testing.T) {
	f := newFixture()
	f.repo.SetErr = errors.New("write failed")

	if _, err := f.wizard().SaveAcknowledgements(context.Background(), f.session, testhelpers.ValidAcknowledgements()); err == nil {
		t.Fatalf("expected storage error to surface")
	}
}
