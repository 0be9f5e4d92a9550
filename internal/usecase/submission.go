package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/polkiloo/onboarding/internal/adapter/backend"
	"github.com/polkiloo/onboarding/internal/documents"
	domainErrors "github.com/polkiloo/onboarding/internal/domain/errors"
	"github.com/polkiloo/onboarding/internal/domain/model"
	"github.com/polkiloo/onboarding/internal/metrics"
	"github.com/polkiloo/onboarding/internal/session"
	"github.com/polkiloo/onboarding/internal/wizard"
)

// MissingStepError names the first wizard step that still needs data.
type MissingStepError struct {
	Step wizard.Step
}

func (e *MissingStepError) Error() string {
	return fmt.Sprintf("%s step is incomplete", strings.ToLower(e.Step.Title()))
}

func (e *MissingStepError) Unwrap() error { return domainErrors.ErrMissingStep }

// Path is where the user has to go next.
func (e *MissingStepError) Path() string { return e.Step.Path() }

// Summary is the read-only view shown on the review page.
type Summary struct {
	Location         model.Location            `json:"location"`
	Account          model.AccountInfo         `json:"account"`
	Payment          model.PaymentInfo         `json:"payment"`
	Acknowledgements model.AcknowledgementInfo `json:"acknowledgements"`
	MedicalDirector  model.MedicalDirectorInfo `json:"medicalDirector"`
}

// SubmissionUseCase aggregates the wizard and submits it to the backend.
type SubmissionUseCase struct {
	client   backend.Client
	docs     *documents.Store
	metrics  *metrics.Metrics
	logger   *slog.Logger
	inFlight sync.Map
}

// NewSubmissionUseCase constructs SubmissionUseCase.
func NewSubmissionUseCase(client backend.Client, docs *documents.Store, m *metrics.Metrics, logger *slog.Logger) *SubmissionUseCase {
	return &SubmissionUseCase{client: client, docs: docs, metrics: m, logger: logger}
}

// Review returns the summary, or a *MissingStepError for the first of
// account, payment, acknowledgements and medical director without data.
func (u *SubmissionUseCase) Review(ctx context.Context, s *session.Session) (*Summary, error) {
	if step, missing := wizard.FirstMissing(ctx, s); missing {
		return nil, &MissingStepError{Step: step}
	}

	locationID := session.Get(ctx, s, session.KeyLocation, model.DefaultLocationID)
	location, ok := model.LocationByID(locationID)
	if !ok {
		location, _ = model.LocationByID(model.DefaultLocationID)
	}

	summary := &Summary{
		Location:         location,
		Account:          session.Get(ctx, s, session.KeyAccount, model.AccountInfo{}),
		Payment:          session.Get(ctx, s, session.KeyPayment, model.PaymentInfo{}),
		Acknowledgements: session.Get(ctx, s, session.KeyAcknowledgements, model.AcknowledgementInfo{}),
		MedicalDirector:  session.Get(ctx, s, session.KeyMedicalDirector, model.MedicalDirectorInfo{}),
	}
	summary.Account.SyncShipping()
	summary.Account.Documents = u.docs.Metas(s.ID())
	return summary, nil
}

// Submit sends the application and returns the issued reference code. On
// success the session is cleared and only the confirmation data remains.
// On failure the session is left untouched. Once the backend has accepted
// the application, session write failures are logged and the code is still
// returned.
func (u *SubmissionUseCase) Submit(ctx context.Context, s *session.Session) (string, error) {
	if _, busy := u.inFlight.LoadOrStore(s.ID(), struct{}{}); busy {
		return "", domainErrors.ErrSubmissionInProgress
	}
	defer u.inFlight.Delete(s.ID())

	summary, err := u.Review(ctx, s)
	if err != nil {
		return "", err
	}

	docs := u.docs.List(s.ID())
	if len(docs) == 0 {
		return "", fmt.Errorf("%w: %w", domainErrors.ErrNoDocuments, &MissingStepError{Step: wizard.StepAccount})
	}

	preferred, err := strconv.Atoi(summary.Location.ID)
	if err != nil {
		return "", fmt.Errorf("location id %q: %w", summary.Location.ID, err)
	}

	req := model.AccountRequest{
		Account:           summary.Account,
		Payment:           summary.Payment,
		Medical:           summary.MedicalDirector,
		Acknowledgements:  summary.Acknowledgements,
		PreferredLocation: preferred,
	}

	result, err := u.client.CreateAccount(ctx, req, docs)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, domainErrors.ErrDuplicateAccount) {
			outcome = metrics.OutcomeDuplicate
		}
		u.metrics.Submission(outcome)
		u.logger.Warn("account submission failed", slog.String("session_id", s.ID()), slog.String("error", err.Error()))
		return "", err
	}

	u.metrics.Submission(metrics.OutcomeOK)
	u.logger.Info("account submitted", slog.String("session_id", s.ID()), slog.String("reference_code", result.ReferenceCode))

	u.docs.Reset(s.ID())
	u.confirm(ctx, s, result.ReferenceCode)
	return result.ReferenceCode, nil
}

// confirm replaces the wizard state with the confirmation keys.
func (u *SubmissionUseCase) confirm(ctx context.Context, s *session.Session, code string) {
	attrs := []any{slog.String("session_id", s.ID()), slog.String("reference_code", code)}
	if err := s.Clear(ctx); err != nil {
		u.logger.Error("failed to clear submitted session", append(attrs, slog.String("error", err.Error()))...)
	}
	if err := session.Set(ctx, s, session.KeyReferenceCode, code); err != nil {
		u.logger.Error("failed to store reference code", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	if err := session.Set(ctx, s, session.KeyIsSubmitted, true); err != nil {
		u.logger.Error("failed to store submission flag", append(attrs, slog.String("error", err.Error()))...)
	}
}

// Confirmed reports whether the session submitted the application with
// the given reference code.
func (u *SubmissionUseCase) Confirmed(ctx context.Context, s *session.Session, code string) bool {
	if code == "" {
		return false
	}
	stored := session.Get(ctx, s, session.KeyReferenceCode, "")
	return stored == code && session.Get(ctx, s, session.KeyIsSubmitted, false)
}

// ConfirmationPath is the route of the submission confirmation.
func ConfirmationPath(code string) string {
	return wizard.PathSubmitted + "?" + url.Values{"code": {code}}.Encode()
}
