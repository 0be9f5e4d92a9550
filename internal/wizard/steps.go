// Package wizard describes the ordered onboarding steps and the progress
// derived from session state.
package wizard

import (
	"context"

	"github.com/samber/lo"

	"github.com/polkiloo/onboarding/internal/session"
)

// Step is one page of the wizard.
type Step int

const (
	StepLocation Step = iota
	StepAccount
	StepPayment
	StepAcknowledgements
	StepMedicalDirector
	StepReview
)

// Steps lists every step in wizard order.
var Steps = []Step{
	StepLocation,
	StepAccount,
	StepPayment,
	StepAcknowledgements,
	StepMedicalDirector,
	StepReview,
}

// Required lists the steps that must be complete before review, in the
// order they are checked.
var Required = []Step{StepAccount, StepPayment, StepAcknowledgements, StepMedicalDirector}

// Route paths outside the step list.
const (
	PathSubmitted    = "/submitted"
	PathAccountSetup = "/account-setup"
)

type stepInfo struct {
	title string
	path  string
	key   string
}

var info = map[Step]stepInfo{
	StepLocation:         {"Location", "/location", session.KeyLocation},
	StepAccount:          {"Account", "/account", session.KeyAccount},
	StepPayment:          {"Payment", "/payment", session.KeyPayment},
	StepAcknowledgements: {"Acknowledgements", "/acknowledgements", session.KeyAcknowledgements},
	StepMedicalDirector:  {"Medical Director", "/medical-director", session.KeyMedicalDirector},
	StepReview:           {"Review", "/review", ""},
}

func (s Step) Title() string { return info[s].title }

func (s Step) Path() string { return info[s].path }

// Key is the session key the step writes, empty for review.
func (s Step) Key() string { return info[s].key }

func (s Step) String() string { return s.Title() }

// Next returns the following step. The last step has none.
func (s Step) Next() (Step, bool) {
	if s < StepLocation || s >= StepReview {
		return 0, false
	}
	return s + 1, true
}

// Prev returns the preceding step. The first step has none.
func (s Step) Prev() (Step, bool) {
	if s <= StepLocation || s > StepReview {
		return 0, false
	}
	return s - 1, true
}

// ByPath resolves a route path to its step.
func ByPath(path string) (Step, bool) {
	return lo.Find(Steps, func(s Step) bool {
		return s.Path() == path
	})
}

// StepState is a step as shown in the progress sidebar.
type StepState struct {
	Title     string `json:"title"`
	Path      string `json:"path"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
}

// Progress reports, per step, whether its data is stored and whether it
// is the page at currentPath.
func Progress(ctx context.Context, s *session.Session, currentPath string) []StepState {
	return lo.Map(Steps, func(step Step, _ int) StepState {
		return StepState{
			Title:     step.Title(),
			Path:      step.Path(),
			Completed: step.Key() != "" && s.HasData(ctx, step.Key()),
			Active:    step.Path() == currentPath,
		}
	})
}

// FirstMissing returns the first required step without stored data.
func FirstMissing(ctx context.Context, s *session.Session) (Step, bool) {
	return lo.Find(Required, func(step Step) bool {
		return !s.HasData(ctx, step.Key())
	})
}
