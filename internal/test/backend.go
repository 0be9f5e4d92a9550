package test

import (
	"context"
	"sync"

	"github.com/polkiloo/onboarding/internal/domain/model"
)

// CreateAccountCall stores information about CreateAccount invocations.
type CreateAccountCall struct {
	Request   model.AccountRequest
	Documents []model.Document
}

// BackendClientStub provides controllable backend behaviour.
type BackendClientStub struct {
	CreateFn func(context.Context, model.AccountRequest, []model.Document) (*model.SubmissionResult, error)
	GetFn    func(context.Context, string) (*model.ApplicationDetails, error)
	SubmitFn func(context.Context, model.AuthorizationRequest) error

	mu          sync.Mutex
	Creates     []CreateAccountCall
	Submissions []model.AuthorizationRequest
}

// CreateAccount records the call and returns reference code ABC123 by default.
func (s *BackendClientStub) CreateAccount(ctx context.Context, req model.AccountRequest, docs []model.Document) (*model.SubmissionResult, error) {
	s.mu.Lock()
	s.Creates = append(s.Creates, CreateAccountCall{Request: req, Documents: docs})
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req, docs)
	}
	return &model.SubmissionResult{ReferenceCode: "ABC123"}, nil
}

// GetApplication returns an open application by default.
func (s *BackendClientStub) GetApplication(ctx context.Context, referenceCode string) (*model.ApplicationDetails, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, referenceCode)
	}
	return OpenApplication(referenceCode), nil
}

// SubmitApplication records authorization requests.
func (s *BackendClientStub) SubmitApplication(ctx context.Context, req model.AuthorizationRequest) error {
	s.mu.Lock()
	s.Submissions = append(s.Submissions, req)
	s.mu.Unlock()
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, req)
	}
	return nil
}

// CreateCalls returns a copy of recorded CreateAccount calls.
func (s *BackendClientStub) CreateCalls() []CreateAccountCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CreateAccountCall(nil), s.Creates...)
}

// SubmitCalls returns a copy of recorded SubmitApplication calls.
func (s *BackendClientStub) SubmitCalls() []model.AuthorizationRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AuthorizationRequest(nil), s.Submissions...)
}
