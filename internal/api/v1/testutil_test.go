package v1_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/hubreach/internal/auth"
	"github.com/gosuda/hubreach/internal/domain"
	"github.com/gosuda/hubreach/internal/onboarding"
	"github.com/gosuda/hubreach/internal/server/middleware"
	"github.com/gosuda/hubreach/internal/subscriber"
)

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

func userCtx(userID uuid.UUID) context.Context {
	return middleware.WithUser(context.Background(), userID, auth.RoleAuthenticated)
}

// parseErrorBody decodes the RFC 9457 problem detail from the response body.
func parseErrorBody(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// ---------------------------------------------------------------------------
// Mock SubscriberService
// ---------------------------------------------------------------------------

type mockSubscriberService struct {
	resolveDefaultListFunc   func(ctx context.Context, hub domain.HubID, listType domain.ListType) subscriber.ListLookup
	addEmailSubscriberFunc   func(ctx context.Context, p subscriber.EmailSubscriberParams) subscriber.Result
	addSmsSubscriberFunc     func(ctx context.Context, p subscriber.SmsSubscriberParams) subscriber.Result
	checkEmailSubscribedFunc func(ctx context.Context, email string, hub domain.HubID) (bool, error)
	checkSmsSubscribedFunc   func(ctx context.Context, phone string, hub domain.HubID) (bool, error)
	addLeadToEmailListFunc   func(ctx context.Context, lead subscriber.Lead) subscriber.Result
	addLeadToSmsListFunc     func(ctx context.Context, lead subscriber.Lead) subscriber.Result
}

func (m *mockSubscriberService) ResolveDefaultList(ctx context.Context, hub domain.HubID, listType domain.ListType) subscriber.ListLookup {
	return m.resolveDefaultListFunc(ctx, hub, listType)
}

func (m *mockSubscriberService) AddEmailSubscriber(ctx context.Context, p subscriber.EmailSubscriberParams) subscriber.Result {
	return m.addEmailSubscriberFunc(ctx, p)
}

func (m *mockSubscriberService) AddSmsSubscriber(ctx context.Context, p subscriber.SmsSubscriberParams) subscriber.Result {
	return m.addSmsSubscriberFunc(ctx, p)
}

func (m *mockSubscriberService) CheckEmailSubscribed(ctx context.Context, email string, hub domain.HubID) (bool, error) {
	return m.checkEmailSubscribedFunc(ctx, email, hub)
}

func (m *mockSubscriberService) CheckSmsSubscribed(ctx context.Context, phone string, hub domain.HubID) (bool, error) {
	return m.checkSmsSubscribedFunc(ctx, phone, hub)
}

func (m *mockSubscriberService) AddLeadToEmailList(ctx context.Context, lead subscriber.Lead) subscriber.Result {
	return m.addLeadToEmailListFunc(ctx, lead)
}

func (m *mockSubscriberService) AddLeadToSmsList(ctx context.Context, lead subscriber.Lead) subscriber.Result {
	return m.addLeadToSmsListFunc(ctx, lead)
}

// ---------------------------------------------------------------------------
// Mock OnboardingService
// ---------------------------------------------------------------------------

type mockOnboardingService struct {
	stateFunc   func(ctx context.Context, userID uuid.UUID) onboarding.State
	dismissFunc func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockOnboardingService) State(ctx context.Context, userID uuid.UUID) onboarding.State {
	return m.stateFunc(ctx, userID)
}

func (m *mockOnboardingService) DismissVerificationRecommendation(ctx context.Context, userID uuid.UUID) error {
	return m.dismissFunc(ctx, userID)
}
