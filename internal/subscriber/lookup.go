package subscriber

import (
	"github.com/google/uuid"
)

// LookupStatus distinguishes why a default list was or was not resolved.
type LookupStatus int

const (
	LookupFound LookupStatus = iota + 1
	LookupNotFound
	LookupStoreError
	LookupInvalid
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupNotFound:
		return "not_found"
	case LookupStoreError:
		return "store_error"
	case LookupInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// ListLookup is the outcome of a default list resolution. ID is set only when
// Status is LookupFound; Err only for LookupStoreError and LookupInvalid.
type ListLookup struct {
	Status LookupStatus
	ID     uuid.UUID
	Err    error
}

func (l ListLookup) Found() bool { return l.Status == LookupFound }
