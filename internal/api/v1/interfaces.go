package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/gosuda/hubreach/internal/domain"
	"github.com/gosuda/hubreach/internal/onboarding"
	"github.com/gosuda/hubreach/internal/subscriber"
)

// SubscriberService abstracts list and subscriber operations for handler testing.
// *subscriber.Service satisfies this interface.
type SubscriberService interface {
	ResolveDefaultList(ctx context.Context, hub domain.HubID, listType domain.ListType) subscriber.ListLookup
	AddEmailSubscriber(ctx context.Context, p subscriber.EmailSubscriberParams) subscriber.Result
	AddSmsSubscriber(ctx context.Context, p subscriber.SmsSubscriberParams) subscriber.Result
	CheckEmailSubscribed(ctx context.Context, email string, hub domain.HubID) (bool, error)
	CheckSmsSubscribed(ctx context.Context, phone string, hub domain.HubID) (bool, error)
	AddLeadToEmailList(ctx context.Context, lead subscriber.Lead) subscriber.Result
	AddLeadToSmsList(ctx context.Context, lead subscriber.Lead) subscriber.Result
}

// OnboardingService abstracts onboarding state operations for handler testing.
// *onboarding.Service satisfies this interface.
type OnboardingService interface {
	State(ctx context.Context, userID uuid.UUID) onboarding.State
	DismissVerificationRecommendation(ctx context.Context, userID uuid.UUID) error
}
