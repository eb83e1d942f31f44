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

// SQLQueryRepository is the Postgres twin of SqliteQueryRepository, for
// deployments where the query log lives in a shared database. Identifier
// assignment relies on BIGSERIAL, so it stays unique and monotonic under
// concurrent inserts.
type SQLQueryRepository struct{ DB *sql.DB }

func NewSQLQueryRepository(db *sql.DB) *SQLQueryRepository {
	return &SQLQueryRepository{DB: db}
}

// InitPostgresSchema initializes the Postgres schema.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	stmt := `
	CREATE TABLE IF NOT EXISTS queries (
		id BIGSERIAL PRIMARY KEY,
		source_address TEXT NOT NULL,
		destination_address TEXT NOT NULL,
		source_lat DOUBLE PRECISION NOT NULL,
		source_lon DOUBLE PRECISION NOT NULL,
		dest_lat DOUBLE PRECISION NOT NULL,
		dest_lon DOUBLE PRECISION NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		distance_miles DOUBLE PRECISION NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_queries_timestamp
	ON queries(timestamp DESC, id DESC);
	`

	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("init postgres schema: %w", err)
	}

	return nil
}

func (s *SQLQueryRepository) SaveQuery(ctx context.Context, q *domain.Query) (_ int64, err error) {
	defer obs.Time(ctx, "queries.SaveQuery")(&err)

	if s.DB == nil {
		return 0, errors.New("sql query repository: DB is nil")
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
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id;
	`

	var id int64
	err = s.DB.QueryRowContext(ctx, stmt,
		q.Source,
		q.Destination,
		q.SourceCoords.Lat,
		q.SourceCoords.Lon,
		q.DestinationCoords.Lat,
		q.DestinationCoords.Lon,
		q.DistanceKm,
		q.DistanceMiles,
		ts,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save query: insert into queries: %w", err)
	}

	q.ID = id
	q.Timestamp = ts

	return id, nil
}

func (s *SQLQueryRepository) GetHistory(ctx context.Context, limit int) (_ []*domain.Query, err error) {
	defer obs.Time(ctx, "queries.GetHistory")(&err)

	if s.DB == nil {
		return nil, errors.New("sql query repository: DB is nil")
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
	LIMIT $1;
	`

	rows, err := s.DB.QueryContext(ctx, stmt, limit)
	if err != nil {
		return nil, fmt.Errorf("get history: query queries table: %w", err)
	}
	defer rows.Close()

	queries := make([]*domain.Query, 0, limit)
	for rows.Next() {
		q, err := scanSQLQuery(rows)
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

func (s *SQLQueryRepository) GetQueryByID(ctx context.Context, id int64) (*domain.Query, error) {
	if s.DB == nil {
		return nil, errors.New("sql query repository: DB is nil")
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
	WHERE id = $1;
	`

	q, err := scanSQLQuery(s.DB.QueryRowContext(ctx, stmt, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get query id=%d: %w", id, err)
	}

	return q, nil
}

func (s *SQLQueryRepository) ClearHistory(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("sql query repository: DB is nil")
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

func scanSQLQuery(row rowScanner) (*domain.Query, error) {
	var q domain.Query
	var ts time.Time

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

	q.Timestamp = ts.UTC()

	return &q, nil
}
