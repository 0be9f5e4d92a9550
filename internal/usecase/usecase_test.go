package usecase

import (
	"context"
	"testing"

	"github.com/polkiloo/onboarding/internal/documents"
	"github.com/polkiloo/onboarding/internal/domain/model"
	"github.com/polkiloo/onboarding/internal/session"
	testhelpers "github.com/polkiloo/onboarding/internal/test"
)

type fixture struct {
	repo    *testhelpers.SessionRepositoryStub
	store   *documents.Store
	client  *testhelpers.BackendClientStub
	session *session.Session
}

func newFixture() *fixture {
	repo := testhelpers.NewSessionRepositoryStub()
	return &fixture{
		repo:    repo,
		store:   documents.NewStore(),
		client:  &testhelpers.BackendClientStub{},
		session: testhelpers.NewSessionManager(repo).Open(testhelpers.RandomASCIIString(8, 16)),
	}
}

func (f *fixture) wizard() *WizardUseCase {
	return NewWizardUseCase(f.store, nil, testhelpers.DiscardLogger())
}

func (f *fixture) documents() *DocumentUseCase {
	return NewDocumentUseCase(f.store, nil, testhelpers.DiscardLogger())
}

func (f *fixture) submissions() *SubmissionUseCase {
	return NewSubmissionUseCase(f.client, f.store, nil, testhelpers.DiscardLogger())
}

func (f *fixture) authorization() *AuthorizationUseCase {
	return NewAuthorizationUseCase(f.client, nil, testhelpers.DiscardLogger())
}

func (f *fixture) set(t *testing.T, key string, value any) {
	t.Helper()
	if err := session.Set(context.Background(), f.session, key, value); err != nil {
		t.Fatalf("set %s: %v", key, err)
	}
}

// fill stores every required step plus one uploaded document.
func (f *fixture) fill(t *testing.T) {
	t.Helper()
	if _, err := f.store.Add(f.session.ID(), []model.Document{testhelpers.PDFDocument("license.pdf", 256)}); err != nil {
		t.Fatalf("add document: %v", err)
	}
	account := testhelpers.ValidAccount()
	account.Documents = f.store.Metas(f.session.ID())
	f.set(t, session.KeyAccount, account)
	f.set(t, session.KeyPayment, testhelpers.ValidPayment())
	f.set(t, session.KeyAcknowledgements, testhelpers.ValidAcknowledgements())
	f.set(t, session.KeyMedicalDirector, testhelpers.ValidMedicalDirector())
}
