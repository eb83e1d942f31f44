package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/shivam18213/distance-calculator/internal/domain"
	"github.com/shivam18213/distance-calculator/internal/validate"
)

// MockQueryStore is an in-memory QueryStore for tests. Set the *Err fields
// to force failures.
type MockQueryStore struct {
	mu      sync.Mutex
	queries []*domain.Query
	nextID  int64

	SaveErr    error
	HistoryErr error
	GetErr     error
}

func NewMockQueryStore() *MockQueryStore {
	return &MockQueryStore{}
}

func (m *MockQueryStore) SaveQuery(ctx context.Context, q *domain.Query) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return 0, m.SaveErr
	}

	m.nextID++
	q.ID = m.nextID
	q.Timestamp = time.Now().UTC().Truncate(time.Second)

	stored := *q
	m.queries = append(m.queries, &stored)

	return q.ID, nil
}

func (m *MockQueryStore) GetHistory(ctx context.Context, limit int) ([]*domain.Query, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}

	limit = validate.ClampLimit(limit, validate.DefaultHistoryLimit)

	out := make([]*domain.Query, 0, limit)
	for i := len(m.queries) - 1; i >= 0 && len(out) < limit; i-- {
		q := *m.queries[i]
		out = append(out, &q)
	}

	return out, nil
}

func (m *MockQueryStore) GetQueryByID(ctx context.Context, id int64) (*domain.Query, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}

	for _, q := range m.queries {
		if q.ID == id {
			out := *q
			return &out, nil
		}
	}

	return nil, nil
}

func (m *MockQueryStore) ClearHistory(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := int64(len(m.queries))
	m.queries = nil

	return deleted, nil
}
