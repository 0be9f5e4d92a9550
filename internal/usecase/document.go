package usecase

import (
	"context"
	"log/slog"

	"github.com/polkiloo/onboarding/internal/documents"
	"github.com/polkiloo/onboarding/internal/domain/model"
	"github.com/polkiloo/onboarding/internal/metrics"
	"github.com/polkiloo/onboarding/internal/session"
)

// DocumentUseCase manages the documents attached to the account step.
type DocumentUseCase struct {
	docs    *documents.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewDocumentUseCase constructs DocumentUseCase.
func NewDocumentUseCase(docs *documents.Store, m *metrics.Metrics, logger *slog.Logger) *DocumentUseCase {
	return &DocumentUseCase{docs: docs, metrics: m, logger: logger}
}

// Upload adds a batch of documents. On acceptance the stored account, if
// any, is refreshed with the new document list.
func (u *DocumentUseCase) Upload(ctx context.Context, s *session.Session, batch []model.Document) ([]model.DocumentMeta, error) {
	list, err := u.docs.Add(s.ID(), batch)
	if err != nil {
		u.metrics.DocumentsUploaded(metrics.OutcomeRejected, len(batch))
		return nil, err
	}
	u.metrics.DocumentsUploaded(metrics.OutcomeOK, len(batch))
	u.refreshAccount(ctx, s, list)
	return list, nil
}

// List returns the metadata of the uploaded documents.
func (u *DocumentUseCase) List(s *session.Session) []model.DocumentMeta {
	return u.docs.Metas(s.ID())
}

// Remove deletes the document at index and refreshes the stored account.
func (u *DocumentUseCase) Remove(ctx context.Context, s *session.Session, index int) ([]model.DocumentMeta, error) {
	list, err := u.docs.Remove(s.ID(), index)
	if err != nil {
		return nil, err
	}
	u.refreshAccount(ctx, s, list)
	return list, nil
}

// Reset drops every uploaded document and clears them from the stored
// account.
func (u *DocumentUseCase) Reset(ctx context.Context, s *session.Session) {
	u.docs.Reset(s.ID())
	u.refreshAccount(ctx, s, []model.DocumentMeta{})
}

// refreshAccount copies list into the stored account. A session without an
// account is left alone.
func (u *DocumentUseCase) refreshAccount(ctx context.Context, s *session.Session, list []model.DocumentMeta) {
	if !s.HasData(ctx, session.KeyAccount) {
		return
	}
	acc := session.Get(ctx, s, session.KeyAccount, model.AccountInfo{})
	acc.Documents = list
	if err := session.Set(ctx, s, session.KeyAccount, acc); err != nil {
		u.logger.Warn("failed to refresh account documents", slog.String("session_id", s.ID()), slog.String("error", err.Error()))
	}
}
