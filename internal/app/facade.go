package app

import (
	"context"
	"time"

	"github.com/polkiloo/onboarding/internal/documents"
	"github.com/polkiloo/onboarding/internal/domain/model"
	"github.com/polkiloo/onboarding/internal/domain/repository"
	"github.com/polkiloo/onboarding/internal/pkg/auth"
	"github.com/polkiloo/onboarding/internal/session"
	"github.com/polkiloo/onboarding/internal/usecase"
	"github.com/polkiloo/onboarding/internal/wizard"
)

// HealthChecker reports whether session storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// OnboardingFacade exposes the use cases to the HTTP layer and the sweeper.
type OnboardingFacade struct {
	wizard        *usecase.WizardUseCase
	documents     *usecase.DocumentUseCase
	submissions   *usecase.SubmissionUseCase
	authorization *usecase.AuthorizationUseCase
	sessions      *session.Manager
	tokens        auth.Strategy
	store         *documents.Store
	purger        repository.Purger
	health        HealthChecker
}

func NewOnboardingFacade(
	wizardUC *usecase.WizardUseCase,
	documentUC *usecase.DocumentUseCase,
	submissionUC *usecase.SubmissionUseCase,
	authorizationUC *usecase.AuthorizationUseCase,
	sessions *session.Manager,
	tokens auth.Strategy,
	store *documents.Store,
	purger repository.Purger,
	health HealthChecker,
) *OnboardingFacade {
	return &OnboardingFacade{
		wizard:        wizardUC,
		documents:     documentUC,
		submissions:   submissionUC,
		authorization: authorizationUC,
		sessions:      sessions,
		tokens:        tokens,
		store:         store,
		purger:        purger,
		health:        health,
	}
}

func (f *OnboardingFacade) IssueSessionToken(sid string) (string, error) {
	return f.tokens.IssueToken(sid)
}

func (f *OnboardingFacade) ParseSessionToken(token string) (string, error) {
	return f.tokens.ParseToken(token)
}

func (f *OnboardingFacade) OpenSession(sid string) *session.Session {
	return f.sessions.Open(sid)
}

func (f *OnboardingFacade) Location(ctx context.Context, s *session.Session) string {
	return f.wizard.Location(ctx, s)
}

func (f *OnboardingFacade) SaveLocation(ctx context.Context, s *session.Session, id string) (string, error) {
	return f.wizard.SaveLocation(ctx, s, id)
}

func (f *OnboardingFacade) Account(ctx context.Context, s *session.Session) model.AccountInfo {
	return f.wizard.Account(ctx, s)
}

func (f *OnboardingFacade) SaveAccount(ctx context.Context, s *session.Session, acc model.AccountInfo) (string, error) {
	return f.wizard.SaveAccount(ctx, s, acc)
}

func (f *OnboardingFacade) Payment(ctx context.Context, s *session.Session) model.PaymentInfo {
	return f.wizard.Payment(ctx, s)
}

func (f *OnboardingFacade) SavePayment(ctx context.Context, s *session.Session, p model.PaymentInfo) (string, error) {
	return f.wizard.SavePayment(ctx, s, p)
}

func (f *OnboardingFacade) Acknowledgements(ctx context.Context, s *session.Session) model.AcknowledgementInfo {
	return f.wizard.Acknowledgements(ctx, s)
}

func (f *OnboardingFacade) SaveAcknowledgements(ctx context.Context, s *session.Session, a model.AcknowledgementInfo) (string, error) {
	return f.wizard.SaveAcknowledgements(ctx, s, a)
}

func (f *OnboardingFacade) MedicalDirector(ctx context.Context, s *session.Session) model.MedicalDirectorInfo {
	return f.wizard.MedicalDirector(ctx, s)
}

func (f *OnboardingFacade) SaveMedicalDirector(ctx context.Context, s *session.Session, m model.MedicalDirectorInfo) (string, error) {
	return f.wizard.SaveMedicalDirector(ctx, s, m)
}

func (f *OnboardingFacade) Progress(ctx context.Context, s *session.Session, currentPath string) []wizard.StepState {
	return f.wizard.Progress(ctx, s, currentPath)
}

func (f *OnboardingFacade) UploadDocuments(ctx context.Context, s *session.Session, batch []model.Document) ([]model.DocumentMeta, error) {
	return f.documents.Upload(ctx, s, batch)
}

func (f *OnboardingFacade) Documents(s *session.Session) []model.DocumentMeta {
	return f.documents.List(s)
}

func (f *OnboardingFacade) RemoveDocument(ctx context.Context, s *session.Session, index int) ([]model.DocumentMeta, error) {
	return f.documents.Remove(ctx, s, index)
}

func (f *OnboardingFacade) ResetDocuments(ctx context.Context, s *session.Session) {
	f.documents.Reset(ctx, s)
}

func (f *OnboardingFacade) Review(ctx context.Context, s *session.Session) (*usecase.Summary, error) {
	return f.submissions.Review(ctx, s)
}

func (f *OnboardingFacade) Submit(ctx context.Context, s *session.Session) (string, error) {
	return f.submissions.Submit(ctx, s)
}

func (f *OnboardingFacade) SubmissionConfirmed(ctx context.Context, s *session.Session, code string) bool {
	return f.submissions.Confirmed(ctx, s, code)
}

func (f *OnboardingFacade) Application(ctx context.Context, code string) (*usecase.ApplicationView, error) {
	return f.authorization.Application(ctx, code)
}

func (f *OnboardingFacade) Authorize(ctx context.Context, s *session.Session, code string, req model.AuthorizationRequest) (string, error) {
	return f.authorization.Authorize(ctx, s, code, req)
}

func (f *OnboardingFacade) AuthorizationConfirmed(ctx context.Context, s *session.Session, code string) bool {
	return f.authorization.Confirmed(ctx, s, code)
}

func (f *OnboardingFacade) HealthCheck(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}

// PurgeDocuments drops document lists untouched since before.
func (f *OnboardingFacade) PurgeDocuments(before time.Time) int {
	return f.store.Purge(before)
}

// PurgeSessions drops expired sessions when the backend does not expire
// them itself.
func (f *OnboardingFacade) PurgeSessions(ctx context.Context, before time.Time) (int64, error) {
	if f.purger == nil {
		return 0, nil
	}
	return f.purger.Purge(ctx, before)
}
