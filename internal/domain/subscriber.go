package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Fixed values written on every subscriber created by this module.
const (
	SubscriberSourceWebsite = "website"
	SubscriberStatusActive  = "active"
)

// EmailSubscriberInsert is the row written to email_subscribers.
type EmailSubscriberInsert struct {
	ListID      uuid.UUID
	HubID       HubID
	Email       string
	FirstName   *string
	LastName    *string
	Phone       *string
	CompanyName *string
}

func (s *EmailSubscriberInsert) Validate() error {
	if strings.TrimSpace(s.Email) == "" {
		return fmt.Errorf("email is required: %w", ErrValidation)
	}
	if s.ListID == uuid.Nil {
		return fmt.Errorf("list id is required: %w", ErrValidation)
	}
	if !s.HubID.Valid() {
		return fmt.Errorf("hub %d: %w", s.HubID, ErrInvalidHub)
	}
	return nil
}

func (s *EmailSubscriberInsert) Row() Row {
	return Row{
		"list_id":      s.ListID,
		"hub_id":       int(s.HubID),
		"email":        s.Email,
		"first_name":   s.FirstName,
		"last_name":    s.LastName,
		"phone":        s.Phone,
		"company_name": s.CompanyName,
		"source":       SubscriberSourceWebsite,
		"status":       SubscriberStatusActive,
	}
}

// SmsSubscriberInsert is the row written to sms_subscribers.
type SmsSubscriberInsert struct {
	ListID      uuid.UUID
	HubID       HubID
	PhoneNumber string
	FirstName   *string
	LastName    *string
	Email       *string
	CompanyName *string
}

func (s *SmsSubscriberInsert) Validate() error {
	if strings.TrimSpace(s.PhoneNumber) == "" {
		return fmt.Errorf("phone number is required: %w", ErrValidation)
	}
	if s.ListID == uuid.Nil {
		return fmt.Errorf("list id is required: %w", ErrValidation)
	}
	if !s.HubID.Valid() {
		return fmt.Errorf("hub %d: %w", s.HubID, ErrInvalidHub)
	}
	return nil
}

func (s *SmsSubscriberInsert) Row() Row {
	return Row{
		"list_id":      s.ListID,
		"hub_id":       int(s.HubID),
		"phone_number": s.PhoneNumber,
		"first_name":   s.FirstName,
		"last_name":    s.LastName,
		"email":        s.Email,
		"company_name": s.CompanyName,
		"source":       SubscriberSourceWebsite,
		"status":       SubscriberStatusActive,
	}
}
