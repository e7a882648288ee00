package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Column accessors tolerate the value shapes produced by the different store
// backends (pgx decodes uuid as [16]byte, JSON backends as string). A missing
// or NULL column reads as the zero value.

func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case *string:
		if v != nil {
			return *v
		}
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	}
	return ""
}

// StringPtr returns nil for a missing, NULL or blank column.
func (r Row) StringPtr(col string) *string {
	s := r.String(col)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func (r Row) Bool(col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	case *bool:
		return v != nil && *v
	}
	return false
}

func (r Row) UUID(col string) (uuid.UUID, bool) {
	switch v := r[col].(type) {
	case uuid.UUID:
		return v, v != uuid.Nil
	case [16]byte:
		id := uuid.UUID(v)
		return id, id != uuid.Nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, false
		}
		return id, id != uuid.Nil
	case *uuid.UUID:
		if v != nil {
			return *v, *v != uuid.Nil
		}
	}
	return uuid.Nil, false
}

// UUIDPtr returns nil when the column holds no usable id.
func (r Row) UUIDPtr(col string) *uuid.UUID {
	id, ok := r.UUID(col)
	if !ok {
		return nil
	}
	return &id
}

func (r Row) Time(col string) (time.Time, bool) {
	switch v := r[col].(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v != nil {
			return *v, !v.IsZero()
		}
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

func (r Row) TimePtr(col string) *time.Time {
	t, ok := r.Time(col)
	if !ok {
		return nil
	}
	return &t
}

func (r Row) Int(col string) (int64, bool) {
	switch v := r[col].(type) {
	case int:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	}
	return 0, false
}
