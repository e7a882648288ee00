package domain

import (
	"time"

	"github.com/google/uuid"
)

// Approval status shared by brands and campaigns.
const StatusApproved = "approved"

// SubscriptionStatusActive is the only subscription status that counts as paid.
const SubscriptionStatusActive = "active"

// UserProfile is a row of the profiles table.
type UserProfile struct {
	ID                                uuid.UUID
	FirstName                         string
	LastName                          string
	Email                             string
	CompanyID                         *uuid.UUID
	VerificationSetupCompleted        bool
	VerificationRecommendationShownAt *time.Time
}

type Company struct {
	ID        uuid.UUID
	LegalName string
	EIN       string
}

// Customer carries billing and account provisioning state for a user.
type Customer struct {
	UserID                  uuid.UUID
	StripeSubscriptionID    string
	SubscriptionStatus      string
	PrivacyPolicyAcceptedAt *time.Time
	PhoneNumberProvisioned  bool
	AccountSetupCompletedAt *time.Time
	PlatformAccessGranted   bool
}

type Brand struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Status    string
}

type Campaign struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Status    string
}

func ProfileFromRow(r Row) *UserProfile {
	id, _ := r.UUID("id")
	return &UserProfile{
		ID:                                id,
		FirstName:                         r.String("first_name"),
		LastName:                          r.String("last_name"),
		Email:                             r.String("email"),
		CompanyID:                         r.UUIDPtr("company_id"),
		VerificationSetupCompleted:        r.Bool("verification_setup_completed"),
		VerificationRecommendationShownAt: r.TimePtr("verification_recommendation_shown_at"),
	}
}

func CompanyFromRow(r Row) *Company {
	id, _ := r.UUID("id")
	return &Company{
		ID:        id,
		LegalName: r.String("legal_name"),
		EIN:       r.String("ein"),
	}
}

func CustomerFromRow(r Row) *Customer {
	userID, _ := r.UUID("user_id")
	return &Customer{
		UserID:                  userID,
		StripeSubscriptionID:    r.String("stripe_subscription_id"),
		SubscriptionStatus:      r.String("subscription_status"),
		PrivacyPolicyAcceptedAt: r.TimePtr("privacy_policy_accepted_at"),
		PhoneNumberProvisioned:  r.Bool("phone_number_provisioned"),
		AccountSetupCompletedAt: r.TimePtr("account_setup_completed_at"),
		PlatformAccessGranted:   r.Bool("platform_access_granted"),
	}
}

func BrandFromRow(r Row) Brand {
	id, _ := r.UUID("id")
	companyID, _ := r.UUID("company_id")
	return Brand{ID: id, CompanyID: companyID, Status: r.String("status")}
}

func CampaignFromRow(r Row) Campaign {
	id, _ := r.UUID("id")
	companyID, _ := r.UUID("company_id")
	return Campaign{ID: id, CompanyID: companyID, Status: r.String("status")}
}
