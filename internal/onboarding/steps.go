package onboarding

import (
	"strings"

	"github.com/gosuda/hubreach/internal/domain"
)

// StepName identifies one onboarding requirement.
type StepName string

const (
	StepAuthenticated          StepName = "authenticated"
	StepSubscriptionID         StepName = "subscription_id"
	StepSubscriptionActive     StepName = "subscription_active"
	StepProfileComplete        StepName = "profile_complete"
	StepCompanyLegalName       StepName = "company_legal_name"
	StepCompanyEIN             StepName = "company_ein"
	StepBrandApproved          StepName = "brand_approved"
	StepPrivacyPolicyAccepted  StepName = "privacy_policy_accepted"
	StepCampaignApproved       StepName = "campaign_approved"
	StepPhoneNumberProvisioned StepName = "phone_number_provisioned"
	StepAccountSetupCompleted  StepName = "account_setup_completed"
	StepPlatformAccessGranted  StepName = "platform_access_granted"
)

// Step is a single requirement evaluated against the loaded sources. Check
// must treat a nil source as unmet.
type Step struct {
	Name  StepName
	Label string
	Check func(src *Sources) bool
}

var steps = []Step{
	{StepAuthenticated, "Sign in", func(src *Sources) bool {
		return src.Authenticated
	}},
	{StepSubscriptionID, "Start a subscription", func(src *Sources) bool {
		return src.Customer != nil && strings.TrimSpace(src.Customer.StripeSubscriptionID) != ""
	}},
	{StepSubscriptionActive, "Activate billing", func(src *Sources) bool {
		return src.Customer != nil && src.Customer.SubscriptionStatus == domain.SubscriptionStatusActive
	}},
	{StepProfileComplete, "Complete your profile", func(src *Sources) bool {
		return ProfileComplete(src.Profile)
	}},
	{StepCompanyLegalName, "Add your company's legal name", func(src *Sources) bool {
		return src.Company != nil && strings.TrimSpace(src.Company.LegalName) != ""
	}},
	{StepCompanyEIN, "Add your company's EIN", func(src *Sources) bool {
		return src.Company != nil && strings.TrimSpace(src.Company.EIN) != ""
	}},
	{StepBrandApproved, "Get a brand approved", func(src *Sources) bool {
		for _, b := range src.Brands {
			if b.Status == domain.StatusApproved {
				return true
			}
		}
		return false
	}},
	{StepPrivacyPolicyAccepted, "Accept the privacy policy", func(src *Sources) bool {
		return src.Customer != nil && src.Customer.PrivacyPolicyAcceptedAt != nil
	}},
	{StepCampaignApproved, "Get a campaign approved", func(src *Sources) bool {
		for _, c := range src.Campaigns {
			if c.Status == domain.StatusApproved {
				return true
			}
		}
		return false
	}},
	{StepPhoneNumberProvisioned, "Provision a phone number", func(src *Sources) bool {
		return src.Customer != nil && src.Customer.PhoneNumberProvisioned
	}},
	{StepAccountSetupCompleted, "Finish account setup", func(src *Sources) bool {
		return src.Customer != nil && src.Customer.AccountSetupCompletedAt != nil
	}},
	{StepPlatformAccessGranted, "Wait for platform access", func(src *Sources) bool {
		return src.Customer != nil && src.Customer.PlatformAccessGranted
	}},
}

// Steps returns the ordered onboarding requirements. The slice is a copy.
func Steps() []Step {
	return append([]Step(nil), steps...)
}

// ProfileComplete reports whether p has a first name, a last name and a
// company.
func ProfileComplete(p *domain.UserProfile) bool {
	return p != nil &&
		strings.TrimSpace(p.FirstName) != "" &&
		strings.TrimSpace(p.LastName) != "" &&
		p.CompanyID != nil
}
