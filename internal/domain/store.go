package domain

import "context"

// Table names of the hosted backend. The schema is owned by the backend; this
// module only reads and writes through RecordStore.
const (
	TableEmailLists       = "email_lists"
	TableSmsLists         = "sms_lists"
	TableEmailSubscribers = "email_subscribers"
	TableSmsSubscribers   = "sms_subscribers"
	TableProfiles         = "profiles"
	TableCompanies        = "companies"
	TableCustomers        = "customers"
	TableBrands           = "brands"
	TableCampaigns        = "campaigns"
)

// KnownTables lists every table a RecordStore may be asked about.
var KnownTables = []string{
	TableEmailLists,
	TableSmsLists,
	TableEmailSubscribers,
	TableSmsSubscribers,
	TableProfiles,
	TableCompanies,
	TableCustomers,
	TableBrands,
	TableCampaigns,
}

// Row is a single record keyed by column name.
type Row map[string]any

// Filter is an equality predicate on one column.
type Filter struct {
	Column string
	Value  any
}

// Eq builds an equality filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

// RecordStore is the narrow contract against the hosted record store.
// A limit of zero means no limit.
type RecordStore interface {
	Query(ctx context.Context, table string, filters []Filter, limit int) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) ([]Row, error)
	Update(ctx context.Context, table string, filters []Filter, patch Row) error
}
