package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/gosuda/hubreach/internal/api/v1"
	"github.com/gosuda/hubreach/internal/domain"
	"github.com/gosuda/hubreach/internal/onboarding"
)

func newOnboardingTestAPI(t *testing.T) (humatest.TestAPI, *mockOnboardingService) {
	t.Helper()

	_, api := humatest.New(t)
	svc := &mockOnboardingService{}
	v1.RegisterOnboardingRoutes(api, svc)

	return api, svc
}

// ---------------------------------------------------------------------------
// GET /onboarding
// ---------------------------------------------------------------------------

func TestGetOnboardingState(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		api, svc := newOnboardingTestAPI(t)
		userID := uuid.New()
		next := onboarding.StepName("company_ein")
		svc.stateFunc = func(_ context.Context, id uuid.UUID) onboarding.State {
			assert.Equal(t, userID, id)
			return onboarding.State{
				ProfileComplete:                true,
				ShowVerificationRecommendation: true,
				DisplayName:                    "Ada Lovelace",
				CompletedSteps:                 4,
				TotalSteps:                     12,
				NextStep:                       &next,
			}
		}

		resp := api.GetCtx(userCtx(userID), "/onboarding")

		require.Equal(t, http.StatusOK, resp.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, true, body["is_profile_complete"])
		assert.Equal(t, false, body["is_onboarding_complete"])
		assert.Equal(t, true, body["show_verification_recommendation"])
		assert.Equal(t, "Ada Lovelace", body["display_name"])
		assert.Equal(t, "company_ein", body["next_step"])
	})

	t.Run("missing_user", func(t *testing.T) {
		t.Parallel()

		api, _ := newOnboardingTestAPI(t)

		resp := api.Get("/onboarding")

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Contains(t, parseErrorBody(t, resp.Body.Bytes())["detail"], "missing user context")
	})
}

// ---------------------------------------------------------------------------
// POST /onboarding/verification-recommendation/dismiss
// ---------------------------------------------------------------------------

func TestDismissVerificationRecommendation(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		api, svc := newOnboardingTestAPI(t)
		userID := uuid.New()
		calls := 0
		svc.dismissFunc = func(_ context.Context, id uuid.UUID) error {
			calls++
			assert.Equal(t, userID, id)
			return nil
		}

		resp := api.PostCtx(userCtx(userID), "/onboarding/verification-recommendation/dismiss", struct{}{})

		assert.Equal(t, http.StatusNoContent, resp.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("store_failure", func(t *testing.T) {
		t.Parallel()

		api, svc := newOnboardingTestAPI(t)
		svc.dismissFunc = func(context.Context, uuid.UUID) error {
			return errors.New("write failed")
		}

		resp := api.PostCtx(userCtx(uuid.New()), "/onboarding/verification-recommendation/dismiss", struct{}{})

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})

	t.Run("unauthorized_from_service", func(t *testing.T) {
		t.Parallel()

		api, svc := newOnboardingTestAPI(t)
		svc.dismissFunc = func(context.Context, uuid.UUID) error {
			return fmt.Errorf("onboarding.Dismiss: %w", domain.ErrUnauthorized)
		}

		resp := api.PostCtx(userCtx(uuid.Nil), "/onboarding/verification-recommendation/dismiss", struct{}{})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("missing_user", func(t *testing.T) {
		t.Parallel()

		api, _ := newOnboardingTestAPI(t)

		resp := api.Post("/onboarding/verification-recommendation/dismiss", struct{}{})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}
