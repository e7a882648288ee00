// Package names splits and formats the free-text person names captured by
// signup and lead forms.
//
// The split is lossy: the first token is always the first name, so a
// multi-word first name ("Mary Jane Watson") does not round-trip.
package names

import "strings"

const defaultDisplayName = "Unknown"

// Name is a decomposed full name. Nil means the part is absent.
type Name struct {
	FirstName *string
	LastName  *string
}

// Parse splits s on runs of whitespace. The first token becomes the first
// name and the remaining tokens, joined by single spaces, the last name.
func Parse(s string) Name {
	tokens := strings.Fields(s)
	switch len(tokens) {
	case 0:
		return Name{}
	case 1:
		return Name{FirstName: &tokens[0]}
	default:
		last := strings.Join(tokens[1:], " ")
		return Name{FirstName: &tokens[0], LastName: &last}
	}
}

// ParseFullName is Parse for an optional input.
func ParseFullName(s *string) Name {
	if s == nil {
		return Name{}
	}
	return Parse(*s)
}

// FormatFullName joins the trimmed non-empty parts with a single space. It
// returns nil when both parts are empty.
func FormatFullName(firstName, lastName *string) *string {
	parts := make([]string, 0, 2)
	for _, p := range []*string{firstName, lastName} {
		if v := trimmed(p); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	full := strings.Join(parts, " ")
	return &full
}

type DisplayNameOptions struct {
	FullName  *string
	FirstName *string
	LastName  *string
	Email     *string
	Fallback  string
}

// DisplayName picks the first non-empty of: full name, first and last name,
// first name, email local part, fallback, "Unknown".
func DisplayName(opts DisplayNameOptions) string {
	if v := trimmed(opts.FullName); v != "" {
		return v
	}
	if v := FormatFullName(opts.FirstName, opts.LastName); v != nil {
		return *v
	}
	if v := trimmed(opts.FirstName); v != "" {
		return v
	}
	if email := trimmed(opts.Email); email != "" {
		local, _, _ := strings.Cut(email, "@")
		if local != "" {
			return local
		}
	}
	if opts.Fallback != "" {
		return opts.Fallback
	}
	return defaultDisplayName
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
