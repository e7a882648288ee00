package domain

import "fmt"

// ListType selects the messaging channel of a list.
type ListType string

const (
	ListTypeEmail ListType = "email"
	ListTypeSms   ListType = "sms"
)

// ListPurposeMarketing is the list_type column value that marks the default
// list of a hub.
const ListPurposeMarketing = "marketing"

func (t ListType) Valid() bool {
	return t == ListTypeEmail || t == ListTypeSms
}

// ListTable returns the table holding lists of this type.
func (t ListType) ListTable() (string, error) {
	switch t {
	case ListTypeEmail:
		return TableEmailLists, nil
	case ListTypeSms:
		return TableSmsLists, nil
	default:
		return "", fmt.Errorf("ListType.ListTable %q: %w", string(t), ErrInvalidListType)
	}
}

// SubscriberTable returns the table holding subscribers of this type.
func (t ListType) SubscriberTable() (string, error) {
	switch t {
	case ListTypeEmail:
		return TableEmailSubscribers, nil
	case ListTypeSms:
		return TableSmsSubscribers, nil
	default:
		return "", fmt.Errorf("ListType.SubscriberTable %q: %w", string(t), ErrInvalidListType)
	}
}
