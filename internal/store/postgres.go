package store

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/fpl-auction/invoice-cli/internal/model"
)

// pgQuerier is the subset of pgxpool.Pool the store uses. pgxmock
// satisfies it in tests.
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool pgQuerier
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool-compatible querier. Used by tests.
func NewPostgresFromPool(pool pgQuerier) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS records (
	id               UUID PRIMARY KEY,
	file_name        TEXT NOT NULL UNIQUE,
	file_path        TEXT NOT NULL,
	month            TEXT NOT NULL,
	company          TEXT NOT NULL,
	event_type       TEXT NOT NULL,
	event            TEXT NOT NULL,
	stand            TEXT NOT NULL,
	invoice_date     TEXT,
	event_date       TEXT,
	quantity         INTEGER NOT NULL DEFAULT 0,
	ticket_price     TEXT NOT NULL DEFAULT '0',
	is_fee_only      BOOLEAN NOT NULL DEFAULT FALSE,
	confidence       INTEGER NOT NULL,
	confidence_notes TEXT NOT NULL,
	processed_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_records_company ON records(company);
CREATE INDEX IF NOT EXISTS idx_records_month ON records(month);
CREATE INDEX IF NOT EXISTS idx_records_confidence ON records(confidence);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveRecord(ctx context.Context, rec *model.InvoiceRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.ProcessedAt.IsZero() {
		rec.ProcessedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO records (
			id, file_name, file_path, month, company, event_type, event, stand,
			invoice_date, event_date, quantity, ticket_price, is_fee_only,
			confidence, confidence_notes, processed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (file_name) DO UPDATE SET
			file_path = EXCLUDED.file_path,
			month = EXCLUDED.month,
			company = EXCLUDED.company,
			event_type = EXCLUDED.event_type,
			event = EXCLUDED.event,
			stand = EXCLUDED.stand,
			invoice_date = EXCLUDED.invoice_date,
			event_date = EXCLUDED.event_date,
			quantity = EXCLUDED.quantity,
			ticket_price = EXCLUDED.ticket_price,
			is_fee_only = EXCLUDED.is_fee_only,
			confidence = EXCLUDED.confidence,
			confidence_notes = EXCLUDED.confidence_notes,
			processed_at = EXCLUDED.processed_at`,
		rec.ID, rec.FileName, rec.FilePath, rec.Month, rec.Company, rec.EventType,
		rec.Event, rec.Stand, rec.InvoiceDate, rec.EventDate, rec.Quantity,
		rec.TicketPrice.String(), rec.IsFeeOnly, rec.Confidence, rec.ConfidenceNotes,
		rec.ProcessedAt,
	)
	return eris.Wrapf(err, "postgres: save record %s", rec.FileName)
}

func (s *PostgresStore) HasRecord(ctx context.Context, fileName string) (bool, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(1) FROM records WHERE file_name = $1`, fileName,
	).Scan(&n)
	if err != nil {
		return false, eris.Wrapf(err, "postgres: has record %s", fileName)
	}
	return n > 0, nil
}

func (s *PostgresStore) ProcessedFileNames(ctx context.Context) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx, `SELECT file_name FROM records`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list processed file names")
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "postgres: scan file name")
		}
		names[name] = true
	}
	return names, eris.Wrap(rows.Err(), "postgres: iterate file names")
}

func (s *PostgresStore) ListRecords(ctx context.Context, filter RecordFilter) ([]model.InvoiceRecord, error) {
	query := `SELECT id, file_name, file_path, month, company, event_type, event, stand,
		invoice_date, event_date, quantity, ticket_price, is_fee_only,
		confidence, confidence_notes, processed_at
		FROM records WHERE 1=1`
	var args []any

	switch filter.Band {
	case model.BandHigh:
		query += ` AND confidence >= 80`
	case model.BandMedium:
		query += ` AND confidence >= 50 AND confidence < 80`
	case model.BandLow:
		query += ` AND confidence < 50`
	}
	if filter.Company != "" {
		args = append(args, filter.Company)
		query += ` AND company = $` + strconv.Itoa(len(args))
	}
	if filter.Month != "" {
		args = append(args, filter.Month)
		query += ` AND month = $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY confidence DESC, month, invoice_date, file_name`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list records")
	}
	defer rows.Close()

	var records []model.InvoiceRecord
	for rows.Next() {
		rec, err := scanPgRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, eris.Wrap(rows.Err(), "postgres: iterate records")
}

func scanPgRecord(rows pgx.Rows) (*model.InvoiceRecord, error) {
	var (
		rec      model.InvoiceRecord
		invDate  *string
		evDate   *string
		priceStr string
	)
	err := rows.Scan(
		&rec.ID, &rec.FileName, &rec.FilePath, &rec.Month, &rec.Company,
		&rec.EventType, &rec.Event, &rec.Stand, &invDate, &evDate,
		&rec.Quantity, &priceStr, &rec.IsFeeOnly, &rec.Confidence,
		&rec.ConfidenceNotes, &rec.ProcessedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan record")
	}
	if invDate != nil {
		rec.InvoiceDate = *invDate
	}
	if evDate != nil {
		rec.EventDate = *evDate
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: parse price %q", priceStr)
	}
	rec.TicketPrice = price

	return &rec, nil
}
