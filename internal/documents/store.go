// Package documents buffers uploaded account documents per session until
// the application is submitted. Documents never reach the session
// repository.
package documents

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"

	domainErrors "github.com/polkiloo/onboarding/internal/domain/errors"
	"github.com/polkiloo/onboarding/internal/domain/model"
)

// RejectedError describes why a batch was refused. Message is shown to
// the user as is.
type RejectedError struct {
	Reason  error
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

func (e *RejectedError) Unwrap() error { return e.Reason }

type list struct {
	docs    []model.Document
	touched time.Time
}

// Store is the in-memory document list of every session.
type Store struct {
	mu    sync.Mutex
	lists map[string]*list
	now   func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{lists: make(map[string]*list), now: time.Now}
}

// Add appends a batch. The whole batch is refused if any file exceeds
// model.MaxDocumentSize or is not a PDF, JPEG or PNG. The content type of
// accepted files is the detected one.
func (s *Store) Add(sid string, batch []model.Document) ([]model.DocumentMeta, error) {
	if err := checkSizes(batch); err != nil {
		return nil, err
	}

	typed := make([]model.Document, len(batch))
	var unsupported []string
	for i, doc := range batch {
		mtype := mimetype.Detect(doc.Data)
		if !mimetype.EqualsAny(mtype.String(), model.AcceptedDocumentTypes...) {
			unsupported = append(unsupported, fmt.Sprintf("%s (%s)", doc.Name, mtype.String()))
			continue
		}
		doc.ContentType = mtype.String()
		typed[i] = doc
	}
	if len(unsupported) > 0 {
		return nil, &RejectedError{
			Reason:  domainErrors.ErrUnsupportedFile,
			Message: "Only PDF, JPEG and PNG files are accepted: " + strings.Join(unsupported, ", "),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.list(sid)
	l.docs = append(l.docs, typed...)
	return metas(l.docs), nil
}

func checkSizes(batch []model.Document) error {
	oversized := lo.Filter(batch, func(d model.Document, _ int) bool {
		return d.Size() > model.MaxDocumentSize
	})
	if len(oversized) == 0 {
		return nil
	}

	names := lo.Map(oversized, func(d model.Document, _ int) string {
		return fmt.Sprintf("%s (%.2fMB)", d.Name, float64(d.Size())/1024/1024)
	})
	return &RejectedError{
		Reason:  domainErrors.ErrFileTooLarge,
		Message: "File size exceeds 10MB: " + strings.Join(names, ", "),
	}
}

// Remove deletes the document at index.
func (s *Store) Remove(sid string, index int) ([]model.DocumentMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lists[sid]
	if !ok || index < 0 || index >= len(l.docs) {
		return nil, domainErrors.ErrDocumentIndex
	}
	l.docs = append(l.docs[:index:index], l.docs[index+1:]...)
	l.touched = s.now()
	return metas(l.docs), nil
}

// Reset drops every document of the session.
func (s *Store) Reset(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.lists, sid)
}

// List returns a copy of the session's documents in upload order.
func (s *Store) List(sid string) []model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lists[sid]
	if !ok {
		return nil
	}
	return append([]model.Document(nil), l.docs...)
}

// Metas returns the metadata of the session's documents.
func (s *Store) Metas(sid string) []model.DocumentMeta {
	return metas(s.List(sid))
}

// Purge drops lists untouched since before and returns how many were
// dropped.
func (s *Store) Purge(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for sid, l := range s.lists {
		if l.touched.Before(before) {
			delete(s.lists, sid)
			n++
		}
	}
	return n
}

func (s *Store) list(sid string) *list {
	l, ok := s.lists[sid]
	if !ok {
		l = &list{}
		s.lists[sid] = l
	}
	l.touched = s.now()
	return l
}

func metas(docs []model.Document) []model.DocumentMeta {
	return lo.Map(docs, func(d model.Document, _ int) model.DocumentMeta {
		return d.Meta()
	})
}
