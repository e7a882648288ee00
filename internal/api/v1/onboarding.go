package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/hubreach/internal/domain"
	"github.com/gosuda/hubreach/internal/onboarding"
	"github.com/gosuda/hubreach/internal/server/middleware"
)

type GetOnboardingInput struct{}

type GetOnboardingOutput struct {
	Body onboarding.State
}

type DismissVerificationInput struct{}

func RegisterOnboardingRoutes(api huma.API, svc OnboardingService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-onboarding-state",
		Method:      http.MethodGet,
		Path:        "/onboarding",
		Summary:     "Derive the onboarding state of the current user",
		Tags:        []string{"Onboarding"},
	}, func(ctx context.Context, _ *GetOnboardingInput) (*GetOnboardingOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		return &GetOnboardingOutput{Body: svc.State(ctx, userID)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "dismiss-verification-recommendation",
		Method:      http.MethodPost,
		Path:        "/onboarding/verification-recommendation/dismiss",
		Summary:     "Hide the verification recommendation for the re-prompt window",
		Tags:        []string{"Onboarding"},
	}, func(ctx context.Context, _ *DismissVerificationInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		if err := svc.DismissVerificationRecommendation(ctx, userID); err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return nil, huma.Error401Unauthorized("missing user context")
			}
			return nil, huma.Error500InternalServerError("failed to dismiss recommendation", err)
		}

		return nil, nil
	})
}
