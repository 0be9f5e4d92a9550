package usecase

import (
	"context"
	"fmt"
	"log/slog"

	domainErrors "github.com/polkiloo/onboarding/internal/domain/errors"
	"github.com/polkiloo/onboarding/internal/domain/model"
	"github.com/polkiloo/onboarding/internal/documents"
	"github.com/polkiloo/onboarding/internal/metrics"
	"github.com/polkiloo/onboarding/internal/pkg/validation"
	"github.com/polkiloo/onboarding/internal/session"
	"github.com/polkiloo/onboarding/internal/wizard"
)

// stepForm is implemented by pointers to step data types.
type stepForm[T any] interface {
	*T
	Sanitize()
	Validate() validation.Errors
}

// WizardUseCase loads and saves the data of each wizard step.
type WizardUseCase struct {
	docs    *documents.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewWizardUseCase constructs WizardUseCase.
func NewWizardUseCase(docs *documents.Store, m *metrics.Metrics, logger *slog.Logger) *WizardUseCase {
	return &WizardUseCase{docs: docs, metrics: m, logger: logger}
}

// Location returns the stored location ID, "1" when none was chosen.
func (u *WizardUseCase) Location(ctx context.Context, s *session.Session) string {
	return session.Get(ctx, s, session.KeyLocation, model.DefaultLocationID)
}

// SaveLocation stores a known location and returns the next path.
func (u *WizardUseCase) SaveLocation(ctx context.Context, s *session.Session, id string) (string, error) {
	if _, ok := model.LocationByID(id); !ok {
		u.metrics.StepSaved(wizard.StepLocation.Key(), metrics.OutcomeInvalid)
		return "", fmt.Errorf("%w: %w", domainErrors.ErrInvalidLocation, validation.Errors{"location": "Select a location"}.Err())
	}
	if err := session.Set(ctx, s, session.KeyLocation, id); err != nil {
		u.metrics.StepSaved(wizard.StepLocation.Key(), metrics.OutcomeError)
		return "", err
	}
	u.metrics.StepSaved(wizard.StepLocation.Key(), metrics.OutcomeOK)
	return nextPath(wizard.StepLocation), nil
}

// Account returns the stored account with the current document list.
func (u *WizardUseCase) Account(ctx context.Context, s *session.Session) model.AccountInfo {
	acc := session.Get(ctx, s, session.KeyAccount, model.AccountInfo{})
	acc.Documents = u.docs.Metas(s.ID())
	return acc
}

// SaveAccount validates the account against the uploaded documents.
func (u *WizardUseCase) SaveAccount(ctx context.Context, s *session.Session, acc model.AccountInfo) (string, error) {
	acc.Documents = u.docs.Metas(s.ID())
	return saveStep(ctx, u, s, wizard.StepAccount, &acc)
}

// Payment returns the stored payment, defaulting to the VISA method.
func (u *WizardUseCase) Payment(ctx context.Context, s *session.Session) model.PaymentInfo {
	return session.Get(ctx, s, session.KeyPayment, model.PaymentInfo{PaymentMethod: model.DefaultPaymentMethod})
}

func (u *WizardUseCase) SavePayment(ctx context.Context, s *session.Session, p model.PaymentInfo) (string, error) {
	return saveStep(ctx, u, s, wizard.StepPayment, &p)
}

func (u *WizardUseCase) Acknowledgements(ctx context.Context, s *session.Session) model.AcknowledgementInfo {
	return session.Get(ctx, s, session.KeyAcknowledgements, model.AcknowledgementInfo{})
}

func (u *WizardUseCase) SaveAcknowledgements(ctx context.Context, s *session.Session, a model.AcknowledgementInfo) (string, error) {
	return saveStep(ctx, u, s, wizard.StepAcknowledgements, &a)
}

func (u *WizardUseCase) MedicalDirector(ctx context.Context, s *session.Session) model.MedicalDirectorInfo {
	return session.Get(ctx, s, session.KeyMedicalDirector, model.MedicalDirectorInfo{})
}

func (u *WizardUseCase) SaveMedicalDirector(ctx context.Context, s *session.Session, m model.MedicalDirectorInfo) (string, error) {
	return saveStep(ctx, u, s, wizard.StepMedicalDirector, &m)
}

// Progress returns the sidebar state for currentPath.
func (u *WizardUseCase) Progress(ctx context.Context, s *session.Session, currentPath string) []wizard.StepState {
	return wizard.Progress(ctx, s, currentPath)
}

// saveStep sanitises and validates the form, then stores it under the
// step key. Nothing is stored when validation fails.
func saveStep[T any, P stepForm[T]](ctx context.Context, u *WizardUseCase, s *session.Session, step wizard.Step, form P) (string, error) {
	form.Sanitize()
	if err := form.Validate().Err(); err != nil {
		u.metrics.StepSaved(step.Key(), metrics.OutcomeInvalid)
		return "", err
	}

	if err := session.Set(ctx, s, step.Key(), *form); err != nil {
		u.metrics.StepSaved(step.Key(), metrics.OutcomeError)
		return "", err
	}

	u.logger.Debug("wizard step saved", slog.String("session_id", s.ID()), slog.String("step", step.Key()))
	u.metrics.StepSaved(step.Key(), metrics.OutcomeOK)
	return nextPath(step), nil
}

func nextPath(step wizard.Step) string {
	next, ok := step.Next()
	if !ok {
		return step.Path()
	}
	return next.Path()
}
