package handlers

import (
	"context"

	"github.com/polkiloo/onboarding/internal/domain/model"
	"github.com/polkiloo/onboarding/internal/server/http/middleware"
	"github.com/polkiloo/onboarding/internal/session"
	"github.com/polkiloo/onboarding/internal/usecase"
	"github.com/polkiloo/onboarding/internal/wizard"
)

// WizardFacade loads and saves the wizard steps.
type WizardFacade interface {
	Location(ctx context.Context, s *session.Session) string
	SaveLocation(ctx context.Context, s *session.Session, id string) (string, error)
	Account(ctx context.Context, s *session.Session) model.AccountInfo
	SaveAccount(ctx context.Context, s *session.Session, acc model.AccountInfo) (string, error)
	Payment(ctx context.Context, s *session.Session) model.PaymentInfo
	SavePayment(ctx context.Context, s *session.Session, p model.PaymentInfo) (string, error)
	Acknowledgements(ctx context.Context, s *session.Session) model.AcknowledgementInfo
	SaveAcknowledgements(ctx context.Context, s *session.Session, a model.AcknowledgementInfo) (string, error)
	MedicalDirector(ctx context.Context, s *session.Session) model.MedicalDirectorInfo
	SaveMedicalDirector(ctx context.Context, s *session.Session, m model.MedicalDirectorInfo) (string, error)
	Progress(ctx context.Context, s *session.Session, currentPath string) []wizard.StepState
}

// DocumentFacade manages uploaded account documents.
type DocumentFacade interface {
	UploadDocuments(ctx context.Context, s *session.Session, batch []model.Document) ([]model.DocumentMeta, error)
	Documents(s *session.Session) []model.DocumentMeta
	RemoveDocument(ctx context.Context, s *session.Session, index int) ([]model.DocumentMeta, error)
	ResetDocuments(ctx context.Context, s *session.Session)
}

// SubmissionFacade reviews and submits the application.
type SubmissionFacade interface {
	Review(ctx context.Context, s *session.Session) (*usecase.Summary, error)
	Submit(ctx context.Context, s *session.Session) (string, error)
	SubmissionConfirmed(ctx context.Context, s *session.Session, code string) bool
}

// AuthorizationFacade drives the medical director authorization.
type AuthorizationFacade interface {
	Application(ctx context.Context, code string) (*usecase.ApplicationView, error)
	Authorize(ctx context.Context, s *session.Session, code string, req model.AuthorizationRequest) (string, error)
	AuthorizationConfirmed(ctx context.Context, s *session.Session, code string) bool
}

// HealthFacade reports whether the session storage is reachable.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// OnboardingFacade aggregates the full set of operations used across handlers.
type OnboardingFacade interface {
	middleware.SessionFacade
	WizardFacade
	DocumentFacade
	SubmissionFacade
	AuthorizationFacade
	HealthFacade
}
