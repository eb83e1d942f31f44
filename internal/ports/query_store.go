package ports

import (
	"context"

	"github.com/shivam18213/distance-calculator/internal/domain"
)

// Port: a boundary for the durable, append-only log of distance queries.
type QueryStore interface {
	// SaveQuery appends a new record. On return the record is durable; the
	// assigned identifier is returned and also written back to q.ID along
	// with the server-assigned q.Timestamp.
	SaveQuery(ctx context.Context, q *domain.Query) (int64, error)

	// GetHistory returns at most limit records, most recent first (ties
	// broken by descending identifier). The limit is clamped to [1,100].
	GetHistory(ctx context.Context, limit int) ([]*domain.Query, error)

	// GetQueryByID returns the record with the given identifier, or
	// (nil, nil) when no such record exists.
	GetQueryByID(ctx context.Context, id int64) (*domain.Query, error)

	// ClearHistory irreversibly deletes all records and reports how many
	// were removed.
	ClearHistory(ctx context.Context) (int64, error)
}
