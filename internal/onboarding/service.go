package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gosuda/hubreach/internal/domain"
)

// Service loads onboarding sources through a RecordStore and resolves them.
type Service struct {
	store    domain.RecordStore
	resolver *Resolver
	logger   zerolog.Logger
	now      func() time.Time
}

func NewService(store domain.RecordStore, resolver *Resolver, logger zerolog.Logger) *Service {
	return &Service{
		store:    store,
		resolver: resolver,
		logger:   logger.With().Str("component", "onboarding").Logger(),
		now:      resolver.now,
	}
}

// Load fetches every source for userID. A source that fails to load is left
// empty and logged; Load itself never fails. uuid.Nil means no signed-in user.
func (s *Service) Load(ctx context.Context, userID uuid.UUID) Sources {
	src := Sources{Authenticated: userID != uuid.Nil}
	if !src.Authenticated {
		return src
	}

	if row, ok := s.first(ctx, domain.TableProfiles, domain.Eq("id", userID)); ok {
		src.Profile = domain.ProfileFromRow(row)
	}
	if row, ok := s.first(ctx, domain.TableCustomers, domain.Eq("user_id", userID)); ok {
		src.Customer = domain.CustomerFromRow(row)
	}

	if src.Profile == nil || src.Profile.CompanyID == nil {
		return src
	}
	companyID := *src.Profile.CompanyID

	if row, ok := s.first(ctx, domain.TableCompanies, domain.Eq("id", companyID)); ok {
		src.Company = domain.CompanyFromRow(row)
	}
	for _, row := range s.all(ctx, domain.TableBrands, domain.Eq("company_id", companyID)) {
		src.Brands = append(src.Brands, domain.BrandFromRow(row))
	}
	for _, row := range s.all(ctx, domain.TableCampaigns, domain.Eq("company_id", companyID)) {
		src.Campaigns = append(src.Campaigns, domain.CampaignFromRow(row))
	}

	return src
}

// State loads and resolves the onboarding state of userID.
func (s *Service) State(ctx context.Context, userID uuid.UUID) State {
	return s.resolver.Resolve(s.Load(ctx, userID))
}

// DismissVerificationRecommendation records that userID dismissed the
// verification recommendation now. It issues exactly one update.
func (s *Service) DismissVerificationRecommendation(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("onboarding.DismissVerificationRecommendation: %w", domain.ErrUnauthorized)
	}

	err := s.store.Update(ctx, domain.TableProfiles,
		[]domain.Filter{domain.Eq("id", userID)},
		domain.Row{"verification_recommendation_shown_at": s.now().UTC()},
	)
	if err != nil {
		return fmt.Errorf("onboarding.DismissVerificationRecommendation: %w", err)
	}

	return nil
}

func (s *Service) first(ctx context.Context, table string, filter domain.Filter) (domain.Row, bool) {
	rows, err := s.store.Query(ctx, table, []domain.Filter{filter}, 1)
	if err != nil {
		s.logger.Warn().Err(err).Str("table", table).Msg("onboarding source unavailable")
		return nil, false
	}
	if len(rows) == 0 {
		return nil, false
	}
	return rows[0], true
}

func (s *Service) all(ctx context.Context, table string, filter domain.Filter) []domain.Row {
	rows, err := s.store.Query(ctx, table, []domain.Filter{filter}, 0)
	if err != nil {
		s.logger.Warn().Err(err).Str("table", table).Msg("onboarding source unavailable")
		return nil
	}
	return rows
}
