package usecase

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/polkiloo/onboarding/internal/adapter/backend"
	domainErrors "github.com/polkiloo/onboarding/internal/domain/errors"
	"github.com/polkiloo/onboarding/internal/domain/model"
	"github.com/polkiloo/onboarding/internal/metrics"
	"github.com/polkiloo/onboarding/internal/session"
	"github.com/polkiloo/onboarding/internal/wizard"
)

// ClosedNotice is shown when an application no longer accepts
// authorization.
const ClosedNotice = "You have already provided authorization for the professional account at Pace Pharmacy."

// ApplicationView is what the medical director sees for a reference code.
type ApplicationView struct {
	Details  model.ApplicationDetails `json:"details"`
	ReadOnly bool                     `json:"readOnly"`
	Notice   string                   `json:"notice,omitempty"`
}

// AuthorizationUseCase drives the medical director authorization flow.
type AuthorizationUseCase struct {
	client  backend.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewAuthorizationUseCase constructs AuthorizationUseCase.
func NewAuthorizationUseCase(client backend.Client, m *metrics.Metrics, logger *slog.Logger) *AuthorizationUseCase {
	return &AuthorizationUseCase{client: client, metrics: m, logger: logger}
}

// Application fetches the application. Submitted, inactive or expired
// applications are read-only.
func (u *AuthorizationUseCase) Application(ctx context.Context, code string) (*ApplicationView, error) {
	details, err := u.client.GetApplication(ctx, code)
	if err != nil {
		return nil, err
	}

	view := &ApplicationView{Details: *details}
	if details.Application.Closed() {
		view.ReadOnly = true
		view.Notice = ClosedNotice
	}
	return view, nil
}

// Authorize validates and posts the authorization for code. The e-mail of
// the medical director is taken from the application, never from input.
func (u *AuthorizationUseCase) Authorize(ctx context.Context, s *session.Session, code string, req model.AuthorizationRequest) (string, error) {
	req.ReferenceCode = code
	if err := req.Validate().Err(); err != nil {
		u.metrics.Authorization(metrics.OutcomeInvalid)
		return "", err
	}

	details, err := u.client.GetApplication(ctx, code)
	if err != nil {
		u.metrics.Authorization(metrics.OutcomeError)
		return "", err
	}
	if details.Application.Closed() {
		u.metrics.Authorization(metrics.OutcomeRejected)
		return "", domainErrors.ErrApplicationClosed
	}

	req.MedicalDirectorEmail = details.MedicalDirectorEmail
	if err := u.client.SubmitApplication(ctx, req); err != nil {
		u.metrics.Authorization(metrics.OutcomeError)
		u.logger.Warn("authorization failed", slog.String("reference_code", code), slog.String("error", err.Error()))
		return "", err
	}

	u.metrics.Authorization(metrics.OutcomeOK)
	u.logger.Info("authorization submitted", slog.String("reference_code", code))

	if err := session.Set(ctx, s, session.KeyAuthorizationSubmitted, code); err != nil {
		return "", err
	}
	return AuthorizationConfirmationPath(code), nil
}

// Confirmed reports whether the session authorized code.
func (u *AuthorizationUseCase) Confirmed(ctx context.Context, s *session.Session, code string) bool {
	return code != "" && session.Get(ctx, s, session.KeyAuthorizationSubmitted, "") == code
}

// AuthorizationPath is the authorization form route for code.
func AuthorizationPath(code string) string {
	return wizard.PathAccountSetup + "/" + url.PathEscape(code)
}

// AuthorizationConfirmationPath is the authorization confirmation route.
func AuthorizationConfirmationPath(code string) string {
	return AuthorizationPath(code) + "/submitted"
}
