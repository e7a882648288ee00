// Package onboarding derives the onboarding progress flags shown to a user
// from their profile, company, customer, brand and campaign records.
//
// Nothing derived here is persisted. Resolve is a pure function of its inputs
// and the clock, and any missing source counts as incomplete.
package onboarding

import (
	"time"

	"github.com/gosuda/hubreach/internal/domain"
	"github.com/gosuda/hubreach/internal/names"
)

// DefaultRepromptAfter is how long a dismissed verification recommendation
// stays hidden.
const DefaultRepromptAfter = 7 * 24 * time.Hour

// Sources are the records a State is derived from. Nil pointers and empty
// slices mean the record was absent or failed to load.
type Sources struct {
	Authenticated bool
	Profile       *domain.UserProfile
	Company       *domain.Company
	Customer      *domain.Customer
	Brands        []domain.Brand
	Campaigns     []domain.Campaign
}

type StepResult struct {
	Name     StepName `json:"name"`
	Label    string   `json:"label"`
	Complete bool     `json:"complete"`
}

type State struct {
	ProfileComplete                bool         `json:"is_profile_complete"`
	OnboardingComplete             bool         `json:"is_onboarding_complete"`
	ShowVerificationRecommendation bool         `json:"show_verification_recommendation"`
	DisplayName                    string       `json:"display_name"`
	Steps                          []StepResult `json:"steps"`
	Blocking                       []StepName   `json:"blocking"`
	CompletedSteps                 int          `json:"completed_steps"`
	TotalSteps                     int          `json:"total_steps"`
	NextStep                       *StepName    `json:"next_step,omitempty"`
}

type Resolver struct {
	now           func() time.Time
	repromptAfter time.Duration
}

type Option func(*Resolver)

// WithClock overrides the time source used for the re-prompt window.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithRepromptAfter overrides DefaultRepromptAfter. Non-positive values are
// ignored.
func WithRepromptAfter(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.repromptAfter = d
		}
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{now: time.Now, repromptAfter: DefaultRepromptAfter}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Resolve(src Sources) State {
	st := State{
		ProfileComplete: ProfileComplete(src.Profile),
		TotalSteps:      len(steps),
		Steps:           make([]StepResult, 0, len(steps)),
		Blocking:        []StepName{},
	}

	for _, step := range steps {
		ok := step.Check(&src)
		st.Steps = append(st.Steps, StepResult{Name: step.Name, Label: step.Label, Complete: ok})
		if ok {
			st.CompletedSteps++
			continue
		}
		st.Blocking = append(st.Blocking, step.Name)
		if st.NextStep == nil {
			name := step.Name
			st.NextStep = &name
		}
	}

	st.OnboardingComplete = len(st.Blocking) == 0
	st.ShowVerificationRecommendation = r.ShowVerificationRecommendation(src.Profile)
	st.DisplayName = displayName(src.Profile)

	return st
}

// ShowVerificationRecommendation is true while verification setup is not
// completed and the recommendation was never dismissed or was dismissed more
// than the re-prompt window ago. A missing profile shows the recommendation.
func (r *Resolver) ShowVerificationRecommendation(p *domain.UserProfile) bool {
	if p == nil {
		return true
	}
	if p.VerificationSetupCompleted {
		return false
	}
	if p.VerificationRecommendationShownAt == nil {
		return true
	}
	return r.now().Sub(*p.VerificationRecommendationShownAt) > r.repromptAfter
}

func displayName(p *domain.UserProfile) string {
	if p == nil {
		return names.DisplayName(names.DisplayNameOptions{})
	}
	return names.DisplayName(names.DisplayNameOptions{
		FirstName: &p.FirstName,
		LastName:  &p.LastName,
		Email:     &p.Email,
	})
}
