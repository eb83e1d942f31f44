package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shivam18213/distance-calculator/internal/domain"
	"github.com/shivam18213/distance-calculator/internal/platform/obs"
	"github.com/shivam18213/distance-calculator/internal/validate"
)

// Timestamps are stored as sortable text with second precision, always UTC.
const timeLayout = "2006-01-02 15:04:05"

// SQLite-backed implementation of the QueryStore port.
//
// Every operation is a single statement or short-lived transaction; SQLite's
// rowid autoincrement keeps identifiers unique and monotonic under
// concurrent writers.
type SqliteQueryRepository struct{ DB *sql.DB }

func NewSqliteQueryRepository(db *sql.DB) *SqliteQueryRepository {
	return &SqliteQueryRepository{DB: db}
}

// SaveQuery appends a new record. The insert is a single atomic statement;
// once it returns, the record is durable.
func (s *SqliteQueryRepository) SaveQuery(ctx context.Context, q *domain.Query) (_ int64, err error) {
	defer obs.Time(ctx, "queries.SaveQuery")(&err)

	if s.DB == nil {
		return 0, errors.New("sqlite query repository: DB is nil")
	}

	ts := time.Now().UTC().Truncate(time.Second)

	stmt := `
	INSERT INTO queries (
		source_address,
		destination_address,
		source_lat,
		source_lon,
		dest_lat,
		dest_lon,
		distance_km,
		distance_miles,
		timestamp
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	res, err := s.DB.ExecContext(ctx, stmt,
		q.Source,
		q.Destination,
		q.SourceCoords.Lat,
		q.SourceCoords.Lon,
		q.DestinationCoords.Lat,
		q.DestinationCoords.Lon,
		q.DistanceKm,
		q.DistanceMiles,
		ts.Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("save query: insert into queries: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save query: read inserted id: %w", err)
	}

	q.ID = id
	q.Timestamp = ts

	return id, nil
}

// GetHistory returns the most recent records, newest first. The limit is
// clamped in the same way the HTTP layer clamps it.
func (s *SqliteQueryRepository) GetHistory(ctx context.Context, limit int) (_ []*domain.Query, err error) {
	defer obs.Time(ctx, "queries.GetHistory")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite query repository: DB is nil")
	}

	limit = validate.ClampLimit(limit, validate.DefaultHistoryLimit)

	stmt := `
	SELECT
		id,
		source_address,
		destination_address,
		source_lat,
		source_lon,
		dest_lat,
		dest_lon,
		distance_km,
		distance_miles,
		timestamp
	FROM queries
	ORDER BY timestamp DESC, id DESC
	LIMIT ?;
	`

	rows, err := s.DB.QueryContext(ctx, stmt, limit)
	if err != nil {
		return nil, fmt.Errorf("get history: query queries table: %w", err)
	}
	defer rows.Close()

	queries := make([]*domain.Query, 0, limit)
	for rows.Next() {
		q, err := scanSqliteQuery(rows)
		if err != nil {
			return nil, fmt.Errorf("get history: %w", err)
		}
		queries = append(queries, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get history: row iteration: %w", err)
	}

	return queries, nil
}

// GetQueryByID returns (nil, nil) when no record has the given identifier.
func (s *SqliteQueryRepository) GetQueryByID(ctx context.Context, id int64) (*domain.Query, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite query repository: DB is nil")
	}

	stmt := `
	SELECT
		id,
		source_address,
		destination_address,
		source_lat,
		source_lon,
		dest_lat,
		dest_lon,
		distance_km,
		distance_miles,
		timestamp
	FROM queries
	WHERE id = ?;
	`

	q, err := scanSqliteQuery(s.DB.QueryRowContext(ctx, stmt, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get query id=%d: %w", id, err)
	}

	return q, nil
}

// ClearHistory deletes every record. This destroys data, so the count is
// always logged.
func (s *SqliteQueryRepository) ClearHistory(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("sqlite query repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM queries;`)
	if err != nil {
		return 0, fmt.Errorf("clear history: delete from queries: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear history: read affected rows: %w", err)
	}

	log.Printf("cleared query history deleted=%d", deleted)

	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSqliteQuery(row rowScanner) (*domain.Query, error) {
	var q domain.Query
	var ts string

	err := row.Scan(
		&q.ID,
		&q.Source,
		&q.Destination,
		&q.SourceCoords.Lat,
		&q.SourceCoords.Lon,
		&q.DestinationCoords.Lat,
		&q.DestinationCoords.Lon,
		&q.DistanceKm,
		&q.DistanceMiles,
		&ts,
	)
	if err != nil {
		return nil, err
	}

	q.Timestamp, err = time.ParseInLocation(timeLayout, ts, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}

	return &q, nil
}
