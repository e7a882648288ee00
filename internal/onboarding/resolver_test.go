package onboarding_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/hubreach/internal/domain"
	"github.com/gosuda/hubreach/internal/onboarding"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func timePtr(t time.Time) *time.Time { return &t }

// completeSources returns sources for which every step holds.
func completeSources() onboarding.Sources {
	companyID := uuid.New()
	accepted := fixedNow.Add(-48 * time.Hour)
	setup := fixedNow.Add(-24 * time.Hour)

	return onboarding.Sources{
		Authenticated: true,
		Profile: &domain.UserProfile{
			ID:        uuid.New(),
			FirstName: "Mary",
			LastName:  "Watson",
			Email:     "mj@example.com",
			CompanyID: &companyID,
		},
		Company: &domain.Company{ID: companyID, LegalName: "Acme LLC", EIN: "12-3456789"},
		Customer: &domain.Customer{
			StripeSubscriptionID:    "sub_123",
			SubscriptionStatus:      "active",
			PrivacyPolicyAcceptedAt: &accepted,
			PhoneNumberProvisioned:  true,
			AccountSetupCompletedAt: &setup,
			PlatformAccessGranted:   true,
		},
		Brands:    []domain.Brand{{Status: "pending"}, {Status: "approved"}},
		Campaigns: []domain.Campaign{{Status: "approved"}},
	}
}

// breakers knock out exactly one step each.
var breakers = map[onboarding.StepName]func(*onboarding.Sources){
	onboarding.StepAuthenticated:          func(s *onboarding.Sources) { s.Authenticated = false },
	onboarding.StepSubscriptionID:         func(s *onboarding.Sources) { s.Customer.StripeSubscriptionID = "" },
	onboarding.StepSubscriptionActive:     func(s *onboarding.Sources) { s.Customer.SubscriptionStatus = "past_due" },
	onboarding.StepProfileComplete:        func(s *onboarding.Sources) { s.Profile.LastName = " " },
	onboarding.StepCompanyLegalName:       func(s *onboarding.Sources) { s.Company.LegalName = "" },
	onboarding.StepCompanyEIN:             func(s *onboarding.Sources) { s.Company.EIN = "" },
	onboarding.StepBrandApproved:          func(s *onboarding.Sources) { s.Brands = []domain.Brand{{Status: "rejected"}} },
	onboarding.StepPrivacyPolicyAccepted:  func(s *onboarding.Sources) { s.Customer.PrivacyPolicyAcceptedAt = nil },
	onboarding.StepCampaignApproved:       func(s *onboarding.Sources) { s.Campaigns = nil },
	onboarding.StepPhoneNumberProvisioned: func(s *onboarding.Sources) { s.Customer.PhoneNumberProvisioned = false },
	onboarding.StepAccountSetupCompleted:  func(s *onboarding.Sources) { s.Customer.AccountSetupCompletedAt = nil },
	onboarding.StepPlatformAccessGranted:  func(s *onboarding.Sources) { s.Customer.PlatformAccessGranted = false },
}

func TestSteps_Order(t *testing.T) {
	t.Parallel()

	want := []onboarding.StepName{
		onboarding.StepAuthenticated,
		onboarding.StepSubscriptionID,
		onboarding.StepSubscriptionActive,
		onboarding.StepProfileComplete,
		onboarding.StepCompanyLegalName,
		onboarding.StepCompanyEIN,
		onboarding.StepBrandApproved,
		onboarding.StepPrivacyPolicyAccepted,
		onboarding.StepCampaignApproved,
		onboarding.StepPhoneNumberProvisioned,
		onboarding.StepAccountSetupCompleted,
		onboarding.StepPlatformAccessGranted,
	}

	steps := onboarding.Steps()
	require.Len(t, steps, 12)
	for i, s := range steps {
		assert.Equal(t, want[i], s.Name)
		assert.NotEmpty(t, s.Label)
	}

	// Mutating the copy leaves the package list untouched.
	steps[0].Name = "tampered"
	assert.Equal(t, onboarding.StepAuthenticated, onboarding.Steps()[0].Name)
}

func TestResolve_AllComplete(t *testing.T) {
	t.Parallel()

	st := onboarding.NewResolver(onboarding.WithClock(clock)).Resolve(completeSources())

	assert.True(t, st.ProfileComplete)
	assert.True(t, st.OnboardingComplete)
	assert.Empty(t, st.Blocking)
	assert.Nil(t, st.NextStep)
	assert.Equal(t, 12, st.CompletedSteps)
	assert.Equal(t, 12, st.TotalSteps)
	assert.Equal(t, "Mary Watson", st.DisplayName)
	for _, s := range st.Steps {
		assert.True(t, s.Complete, s.Name)
	}
}

// Each single failing step keeps the aggregate incomplete and is reported as
// the only blocker.
func TestResolve_EachStepBlocks(t *testing.T) {
	t.Parallel()

	require.Len(t, breakers, len(onboarding.Steps()), "every step needs a breaker")

	for name, breakStep := range breakers {
		t.Run(string(name), func(t *testing.T) {
			t.Parallel()

			src := completeSources()
			breakStep(&src)

			st := onboarding.NewResolver(onboarding.WithClock(clock)).Resolve(src)
			assert.False(t, st.OnboardingComplete)
			assert.Equal(t, []onboarding.StepName{name}, st.Blocking)
			require.NotNil(t, st.NextStep)
			assert.Equal(t, name, *st.NextStep)
			assert.Equal(t, 11, st.CompletedSteps)
		})
	}
}

func TestResolve_MissingSourcesAreIncomplete(t *testing.T) {
	t.Parallel()

	st := onboarding.NewResolver(onboarding.WithClock(clock)).Resolve(onboarding.Sources{})

	assert.False(t, st.ProfileComplete)
	assert.False(t, st.OnboardingComplete)
	assert.True(t, st.ShowVerificationRecommendation)
	assert.Equal(t, 0, st.CompletedSteps)
	assert.Len(t, st.Blocking, 12)
	require.NotNil(t, st.NextStep)
	assert.Equal(t, onboarding.StepAuthenticated, *st.NextStep)
	assert.Equal(t, "Unknown", st.DisplayName)
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()

	r := onboarding.NewResolver(onboarding.WithClock(clock))
	src := completeSources()
	src.Customer.PlatformAccessGranted = false

	assert.Equal(t, r.Resolve(src), r.Resolve(src))
}

func TestProfileComplete(t *testing.T) {
	t.Parallel()

	companyID := uuid.New()

	tests := []struct {
		name    string
		profile *domain.UserProfile
		want    bool
	}{
		{"nil profile", nil, false},
		{"complete", &domain.UserProfile{FirstName: "A", LastName: "B", CompanyID: &companyID}, true},
		{"no first name", &domain.UserProfile{LastName: "B", CompanyID: &companyID}, false},
		{"blank last name", &domain.UserProfile{FirstName: "A", LastName: "  ", CompanyID: &companyID}, false},
		{"no company", &domain.UserProfile{FirstName: "A", LastName: "B"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, onboarding.ProfileComplete(tt.profile))
		})
	}
}

func TestShowVerificationRecommendation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile *domain.UserProfile
		want    bool
	}{
		{"no profile", nil, true},
		{"never shown", &domain.UserProfile{}, true},
		{"setup completed", &domain.UserProfile{VerificationSetupCompleted: true}, false},
		{"setup completed and stale dismissal", &domain.UserProfile{VerificationSetupCompleted: true, VerificationRecommendationShownAt: timePtr(fixedNow.Add(-30 * 24 * time.Hour))}, false},
		{"just dismissed", &domain.UserProfile{VerificationRecommendationShownAt: timePtr(fixedNow)}, false},
		{"dismissed six days ago", &domain.UserProfile{VerificationRecommendationShownAt: timePtr(fixedNow.Add(-6 * 24 * time.Hour))}, false},
		{"dismissed exactly seven days ago", &domain.UserProfile{VerificationRecommendationShownAt: timePtr(fixedNow.Add(-7 * 24 * time.Hour))}, false},
		{"dismissed just over seven days ago", &domain.UserProfile{VerificationRecommendationShownAt: timePtr(fixedNow.Add(-7*24*time.Hour - time.Second))}, true},
		{"dismissed eight days ago", &domain.UserProfile{VerificationRecommendationShownAt: timePtr(fixedNow.Add(-8 * 24 * time.Hour))}, true},
	}

	r := onboarding.NewResolver(onboarding.WithClock(clock))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, r.ShowVerificationRecommendation(tt.profile))
		})
	}
}

// After a dismissal the recommendation stays hidden until the window passes.
func TestShowVerificationRecommendation_Reprompts(t *testing.T) {
	t.Parallel()

	now := fixedNow
	r := onboarding.NewResolver(onboarding.WithClock(func() time.Time { return now }))
	profile := &domain.UserProfile{VerificationRecommendationShownAt: timePtr(fixedNow)}

	assert.False(t, r.ShowVerificationRecommendation(profile))

	now = fixedNow.Add(7*24*time.Hour + time.Minute)
	assert.True(t, r.ShowVerificationRecommendation(profile))
}

func TestWithRepromptAfter(t *testing.T) {
	t.Parallel()

	profile := &domain.UserProfile{VerificationRecommendationShownAt: timePtr(fixedNow.Add(-2 * time.Hour))}

	short := onboarding.NewResolver(onboarding.WithClock(clock), onboarding.WithRepromptAfter(time.Hour))
	assert.True(t, short.ShowVerificationRecommendation(profile))

	ignored := onboarding.NewResolver(onboarding.WithClock(clock), onboarding.WithRepromptAfter(0))
	assert.False(t, ignored.ShowVerificationRecommendation(profile))
}

func TestResolve_DisplayNameFallsBackToEmail(t *testing.T) {
	t.Parallel()

	src := onboarding.Sources{Authenticated: true, Profile: &domain.UserProfile{Email: "john.doe@x.com"}}
	st := onboarding.NewResolver(onboarding.WithClock(clock)).Resolve(src)

	assert.Equal(t, "john.doe", st.DisplayName)
}
