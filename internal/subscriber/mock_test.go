package subscriber_test

import (
	"context"
	"sync"

	"github.com/gosuda/hubreach/internal/domain"
)

// ---------------------------------------------------------------------------
// Mock RecordStore
// ---------------------------------------------------------------------------

type queryCall struct {
	table   string
	filters []domain.Filter
	limit   int
}

type insertCall struct {
	table string
	row   domain.Row
}

type mockStore struct {
	mu         sync.Mutex
	queries    []queryCall
	inserts    []insertCall
	queryFunc  func(ctx context.Context, table string, filters []domain.Filter, limit int) ([]domain.Row, error)
	insertFunc func(ctx context.Context, table string, row domain.Row) ([]domain.Row, error)
	updateFunc func(ctx context.Context, table string, filters []domain.Filter, patch domain.Row) error
}

func (m *mockStore) Query(ctx context.Context, table string, filters []domain.Filter, limit int) ([]domain.Row, error) {
	m.mu.Lock()
	m.queries = append(m.queries, queryCall{table: table, filters: filters, limit: limit})
	m.mu.Unlock()

	if m.queryFunc == nil {
		return nil, nil
	}
	return m.queryFunc(ctx, table, filters, limit)
}

func (m *mockStore) Insert(ctx context.Context, table string, row domain.Row) ([]domain.Row, error) {
	m.mu.Lock()
	m.inserts = append(m.inserts, insertCall{table: table, row: row})
	m.mu.Unlock()

	if m.insertFunc == nil {
		return []domain.Row{row}, nil
	}
	return m.insertFunc(ctx, table, row)
}

func (m *mockStore) Update(ctx context.Context, table string, filters []domain.Filter, patch domain.Row) error {
	if m.updateFunc == nil {
		panic("not implemented")
	}
	return m.updateFunc(ctx, table, filters, patch)
}

func (m *mockStore) insertCalls() []insertCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]insertCall(nil), m.inserts...)
}

func (m *mockStore) queryCalls() []queryCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]queryCall(nil), m.queries...)
}

// ---------------------------------------------------------------------------
// Mock EventPublisher
// ---------------------------------------------------------------------------

type published struct {
	channel string
	payload []byte
}

type mockPublisher struct {
	mu       sync.Mutex
	messages []published
	err      error
}

func (m *mockPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, published{channel: channel, payload: payload})
	return m.err
}
