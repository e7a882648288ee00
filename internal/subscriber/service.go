// Package subscriber resolves the default list of a hub and writes email and
// SMS subscriber rows for signups and lead captures.
//
// No operation returns a Go error or panics to its caller. Failures surface as
// a Result with Success false, a false boolean, or a non-found ListLookup.
// A dedup check followed by an insert is not atomic; two concurrent callers
// can both insert the same identity.
package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gosuda/hubreach/internal/domain"
	"github.com/gosuda/hubreach/internal/names"
)

const fallbackInsertError = "Failed to add subscriber"

// EventPublisher delivers subscriber events. *redis.PubSub satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// ChannelFunc names the event channel for a hub and list type.
type ChannelFunc func(hub domain.HubID, listType domain.ListType) string

// Result is the outcome of an insert. Error is set only when Success is false.
type Result struct {
	Success bool         `json:"success"`
	Data    []domain.Row `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

type EmailSubscriberParams struct {
	Email    string
	ListID   uuid.UUID
	FullName *string
	HubID    domain.HubID
	Phone    *string
	Company  *string
}

type SmsSubscriberParams struct {
	PhoneNumber string
	ListID      uuid.UUID
	FullName    *string
	HubID       domain.HubID
	Email       *string
	Company     *string
}

// Lead is a contact captured by a website form. The destination list is the
// hub's default list.
type Lead struct {
	Email       string
	PhoneNumber string
	Name        *string
	HubID       domain.HubID
	Company     *string
}

// Event is published after a subscriber row is written.
type Event struct {
	Type     string          `json:"type"`
	HubID    domain.HubID    `json:"hub_id"`
	ListType domain.ListType `json:"list_type"`
	ListID   uuid.UUID       `json:"list_id"`
	At       time.Time       `json:"at"`
}

const EventSubscriberCreated = "subscriber.created"

type Service struct {
	store   domain.RecordStore
	events  EventPublisher
	channel ChannelFunc
	logger  zerolog.Logger
	now     func() time.Time
}

// NewService builds a Service. events may be nil, in which case no events are
// published.
func NewService(store domain.RecordStore, events EventPublisher, channel ChannelFunc, logger zerolog.Logger) *Service {
	return &Service{
		store:   store,
		events:  events,
		channel: channel,
		logger:  logger.With().Str("component", "subscriber").Logger(),
		now:     time.Now,
	}
}

// ResolveDefaultList finds the marketing list of hub for listType.
func (s *Service) ResolveDefaultList(ctx context.Context, hub domain.HubID, listType domain.ListType) ListLookup {
	if !hub.Valid() {
		return ListLookup{Status: LookupInvalid, Err: fmt.Errorf("hub %d: %w", hub, domain.ErrInvalidHub)}
	}
	table, err := listType.ListTable()
	if err != nil {
		return ListLookup{Status: LookupInvalid, Err: err}
	}

	rows, err := safeQuery(ctx, s.store, table, []domain.Filter{
		domain.Eq("hub_id", int(hub)),
		domain.Eq("list_type", domain.ListPurposeMarketing),
	}, 1)
	if err != nil {
		return ListLookup{Status: LookupStoreError, Err: err}
	}
	if len(rows) == 0 {
		return ListLookup{Status: LookupNotFound}
	}

	id, ok := rows[0].UUID("id")
	if !ok {
		return ListLookup{Status: LookupStoreError, Err: fmt.Errorf("%s row without usable id", table)}
	}

	return ListLookup{Status: LookupFound, ID: id}
}

// DefaultListID collapses ResolveDefaultList to found or not: a missing list
// and a store failure both report false.
func (s *Service) DefaultListID(ctx context.Context, hub domain.HubID, listType domain.ListType) (uuid.UUID, bool) {
	lookup := s.ResolveDefaultList(ctx, hub, listType)

	switch lookup.Status {
	case LookupFound:
		return lookup.ID, true
	case LookupNotFound:
		s.logger.Warn().Int("hub_id", int(hub)).Str("list_type", string(listType)).Msg("no default list for hub")
	default:
		s.logger.Error().Err(lookup.Err).Int("hub_id", int(hub)).Str("list_type", string(listType)).
			Str("status", lookup.Status.String()).Msg("default list lookup failed")
	}

	return uuid.Nil, false
}

func (s *Service) AddEmailSubscriber(ctx context.Context, p EmailSubscriberParams) Result {
	name := names.ParseFullName(p.FullName)
	in := &domain.EmailSubscriberInsert{
		ListID:      p.ListID,
		HubID:       p.HubID,
		Email:       p.Email,
		FirstName:   name.FirstName,
		LastName:    name.LastName,
		Phone:       p.Phone,
		CompanyName: p.Company,
	}
	if err := in.Validate(); err != nil {
		return failure(err.Error())
	}

	return s.insert(ctx, domain.ListTypeEmail, p.HubID, p.ListID, in.Row())
}

func (s *Service) AddSmsSubscriber(ctx context.Context, p SmsSubscriberParams) Result {
	name := names.ParseFullName(p.FullName)
	in := &domain.SmsSubscriberInsert{
		ListID:      p.ListID,
		HubID:       p.HubID,
		PhoneNumber: p.PhoneNumber,
		FirstName:   name.FirstName,
		LastName:    name.LastName,
		Email:       p.Email,
		CompanyName: p.Company,
	}
	if err := in.Validate(); err != nil {
		return failure(err.Error())
	}

	return s.insert(ctx, domain.ListTypeSms, p.HubID, p.ListID, in.Row())
}

func (s *Service) insert(ctx context.Context, listType domain.ListType, hub domain.HubID, listID uuid.UUID, row domain.Row) Result {
	table, err := listType.SubscriberTable()
	if err != nil {
		return failure(err.Error())
	}

	data, err := safeInsert(ctx, s.store, table, row)
	if err != nil {
		s.logger.Error().Err(err).Int("hub_id", int(hub)).Str("table", table).Msg("subscriber insert failed")
		return failure(insertErrorMessage(err))
	}

	s.publish(ctx, listType, hub, listID)

	return Result{Success: true, Data: data}
}

func (s *Service) publish(ctx context.Context, listType domain.ListType, hub domain.HubID, listID uuid.UUID) {
	if s.events == nil || s.channel == nil {
		return
	}

	payload, err := json.Marshal(Event{
		Type:     EventSubscriberCreated,
		HubID:    hub,
		ListType: listType,
		ListID:   listID,
		At:       s.now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("marshal subscriber event")
		return
	}

	if err := s.events.Publish(ctx, s.channel(hub, listType), payload); err != nil {
		s.logger.Warn().Err(err).Int("hub_id", int(hub)).Msg("publish subscriber event")
	}
}

// IsEmailSubscribed reports whether email already exists in hub. A store
// failure reads as not subscribed.
func (s *Service) IsEmailSubscribed(ctx context.Context, email string, hub domain.HubID) bool {
	ok, err := s.CheckEmailSubscribed(ctx, email, hub)
	if err != nil {
		s.logger.Error().Err(err).Int("hub_id", int(hub)).Msg("email subscription check failed")
	}
	return ok
}

// IsSmsSubscribed reports whether phone already exists in hub. A store
// failure reads as not subscribed.
func (s *Service) IsSmsSubscribed(ctx context.Context, phone string, hub domain.HubID) bool {
	ok, err := s.CheckSmsSubscribed(ctx, phone, hub)
	if err != nil {
		s.logger.Error().Err(err).Int("hub_id", int(hub)).Msg("sms subscription check failed")
	}
	return ok
}

// CheckEmailSubscribed is IsEmailSubscribed with the store failure exposed.
func (s *Service) CheckEmailSubscribed(ctx context.Context, email string, hub domain.HubID) (bool, error) {
	return s.exists(ctx, domain.TableEmailSubscribers, "email", email, hub)
}

// CheckSmsSubscribed is IsSmsSubscribed with the store failure exposed.
func (s *Service) CheckSmsSubscribed(ctx context.Context, phone string, hub domain.HubID) (bool, error) {
	return s.exists(ctx, domain.TableSmsSubscribers, "phone_number", phone, hub)
}

func (s *Service) exists(ctx context.Context, table, column, value string, hub domain.HubID) (bool, error) {
	if !hub.Valid() {
		return false, fmt.Errorf("subscriber.exists: hub %d: %w", hub, domain.ErrInvalidHub)
	}

	rows, err := safeQuery(ctx, s.store, table, []domain.Filter{
		domain.Eq(column, value),
		domain.Eq("hub_id", int(hub)),
	}, 1)
	if err != nil {
		return false, fmt.Errorf("subscriber.exists: %w", err)
	}

	return len(rows) > 0, nil
}

func (s *Service) AddLeadToEmailList(ctx context.Context, lead Lead) Result {
	listID, ok := s.DefaultListID(ctx, lead.HubID, domain.ListTypeEmail)
	if !ok {
		return failure(fmt.Sprintf("No email list found for hub %d", lead.HubID))
	}

	return s.AddEmailSubscriber(ctx, EmailSubscriberParams{
		Email:    lead.Email,
		ListID:   listID,
		FullName: lead.Name,
		HubID:    lead.HubID,
		Phone:    optional(lead.PhoneNumber),
		Company:  lead.Company,
	})
}

func (s *Service) AddLeadToSmsList(ctx context.Context, lead Lead) Result {
	listID, ok := s.DefaultListID(ctx, lead.HubID, domain.ListTypeSms)
	if !ok {
		return failure(fmt.Sprintf("No sms list found for hub %d", lead.HubID))
	}

	return s.AddSmsSubscriber(ctx, SmsSubscriberParams{
		PhoneNumber: lead.PhoneNumber,
		ListID:      listID,
		FullName:    lead.Name,
		HubID:       lead.HubID,
		Email:       optional(lead.Email),
		Company:     lead.Company,
	})
}

// insertErrorMessage prefers the store's own message, then the error text,
// then a generic message.
func insertErrorMessage(err error) string {
	if msg := domain.StoreMessage(err); msg != "" {
		return msg
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackInsertError
}

var errStorePanic = errors.New("record store panicked")

func safeQuery(ctx context.Context, store domain.RecordStore, table string, filters []domain.Filter, limit int) (rows []domain.Row, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("%w: %v", errStorePanic, r)
		}
	}()
	return store.Query(ctx, table, filters, limit)
}

func safeInsert(ctx context.Context, store domain.RecordStore, table string, row domain.Row) (rows []domain.Row, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("%w: %v", errStorePanic, r)
		}
	}()
	return store.Insert(ctx, table, row)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
