package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/polkiloo/onboarding/internal/domain/errors"
	"github.com/polkiloo/onboarding/internal/domain/model"
	"github.com/polkiloo/onboarding/internal/pkg/validation"
	testhelpers "github.com/polkiloo/onboarding/internal/test"
)

func validAuthorization() model.AuthorizationRequest {
	return model.AuthorizationRequest{
		AccountAuthorization:    true,
		PrescriptionRequirement: model.WithoutPrescription,
		MedicalDirectorEmail:    "intruder@example.com",
	}
}

func TestApplicationReadOnlyStates(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*model.Application)
		readOnly bool
	}{
		{name: "open", mutate: func(*model.Application) {}},
		{name: "submitted", mutate: func(a *model.Application) { a.IsSubmitted = true }, readOnly: true},
		{name: "inactive", mutate: func(a *model.Application) { a.IsActive = false }, readOnly: true},
		{name: "expired", mutate: func(a *model.Application) { a.IsExpired = true }, readOnly: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.client.GetFn = func(_ context.Context, code string) (*model.ApplicationDetails, error) {
				details := testhelpers.OpenApplication(code)
				tt.mutate(&details.Application)
				return details, nil
			}

			view, err := f.authorization().Application(context.Background(), "ABC123")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if view.ReadOnly != tt.readOnly {
				t.Fatalf("expected readOnly %v, got %v", tt.readOnly, view.ReadOnly)
			}
			if tt.readOnly && view.Notice != ClosedNotice {
				t.Fatalf("expected closed notice, got %q", view.Notice)
			}
		})
	}
}

func TestAuthorizeUsesDirectorEmailFromApplication(t *testing.T) {
	f := newFixture()
	uc := f.authorization()
	ctx := context.Background()
	code := testhelpers.RandomReferenceCode()

	path, err := uc.Authorize(ctx, f.session, code, validAuthorization())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/account-setup/"+code+"/submitted" {
		t.Fatalf("unexpected path %q", path)
	}

	calls := f.client.SubmitCalls()
	if len(calls) != 1 {
		t.Fatalf("expected one authorization, got %d", len(calls))
	}
	if calls[0].MedicalDirectorEmail != "alex@example.com" || calls[0].ReferenceCode != code {
		t.Fatalf("unexpected authorization %+v", calls[0])
	}
	if !uc.Confirmed(ctx, f.session, code) || uc.Confirmed(ctx, f.session, code+"X") {
		t.Fatalf("expected confirmation bound to %s only", code)
	}
}

func TestAuthorizeValidation(t *testing.T) {
	f := newFixture()
	req := validAuthorization()
	req.AccountAuthorization = false
	req.PrescriptionRequirement = "sometimes"

	_, err := f.authorization().Authorize(context.Background(), f.session, "ABC123", req)
	var invalid *validation.Error
	if !errors.As(err, &invalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if invalid.Fields["accountAuthorization"] != "You must authorize your account." {
		t.Fatalf("unexpected consent message %q", invalid.Fields["accountAuthorization"])
	}
	if invalid.Fields["prescriptionRequirement"] == "" {
		t.Fatalf("expected prescription error")
	}

	_, err = f.authorization().Authorize(context.Background(), f.session, "", validAuthorization())
	if !errors.As(err, &invalid) || invalid.Fields["referenceCode"] != "Reference Code is required." {
		t.Fatalf("expected reference code error, got %v", err)
	}
	if len(f.client.SubmitCalls()) != 0 {
		t.Fatalf("expected nothing to be posted")
	}
}

func TestAuthorizeFailures(t *testing.T) {
	tests := []struct {
		name string
		get  func(context.Context, string) (*model.ApplicationDetails, error)
		post func(context.Context, model.AuthorizationRequest) error
		want error
	}{
		{
			name: "unknown code",
			get: func(context.Context, string) (*model.ApplicationDetails, error) {
				return nil, fmt.Errorf("get application: %w", domainErrors.ErrNotFound)
			},
			want: domainErrors.ErrNotFound,
		},
		{
			name: "closed application",
			get: func(_ context.Context, code string) (*model.ApplicationDetails, error) {
				details := testhelpers.OpenApplication(code)
				details.Application.IsSubmitted = true
				return details, nil
			},
			want: domainErrors.ErrApplicationClosed,
		},
		{
			name: "backend down",
			post: func(context.Context, model.AuthorizationRequest) error {
				return domainErrors.ErrBackendUnavailable
			},
			want: domainErrors.ErrBackendUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.client.GetFn = tt.get
			f.client.SubmitFn = tt.post

			_, err := f.authorization().Authorize(context.Background(), f.session, "ABC123", validAuthorization())
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if f.authorization().Confirmed(context.Background(), f.session, "ABC123") {
				t.Fatalf("expected no confirmation after failure")
			}
		})
	}
}

func TestAuthorizationPaths(t *testing.T) {
	if got := AuthorizationPath("A B"); got != "/account-setup/A%20B" {
		t.Fatalf("unexpected path %q", got)
	}
	if got := AuthorizationConfirmationPath("ABC123"); got != "/account-setup/ABC123/submitted" {
		t.Fatalf("unexpected confirmation path %q", got)
	}
}
