package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/fpl-auction/invoice-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS records (
	id               TEXT PRIMARY KEY,
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
	is_fee_only      INTEGER NOT NULL DEFAULT 0,
	confidence       INTEGER NOT NULL,
	confidence_notes TEXT NOT NULL,
	processed_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_records_company ON records(company);
CREATE INDEX IF NOT EXISTS idx_records_month ON records(month);
CREATE INDEX IF NOT EXISTS idx_records_confidence ON records(confidence);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRecord(ctx context.Context, rec *model.InvoiceRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.ProcessedAt.IsZero() {
		rec.ProcessedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (
			id, file_name, file_path, month, company, event_type, event, stand,
			invoice_date, event_date, quantity, ticket_price, is_fee_only,
			confidence, confidence_notes, processed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_name) DO UPDATE SET
			file_path = excluded.file_path,
			month = excluded.month,
			company = excluded.company,
			event_type = excluded.event_type,
			event = excluded.event,
			stand = excluded.stand,
			invoice_date = excluded.invoice_date,
			event_date = excluded.event_date,
			quantity = excluded.quantity,
			ticket_price = excluded.ticket_price,
			is_fee_only = excluded.is_fee_only,
			confidence = excluded.confidence,
			confidence_notes = excluded.confidence_notes,
			processed_at = excluded.processed_at`,
		rec.ID, rec.FileName, rec.FilePath, rec.Month, rec.Company, rec.EventType,
		rec.Event, rec.Stand, rec.InvoiceDate, rec.EventDate, rec.Quantity,
		rec.TicketPrice.String(), rec.IsFeeOnly, rec.Confidence, rec.ConfidenceNotes,
		rec.ProcessedAt,
	)
	return eris.Wrapf(err, "sqlite: save record %s", rec.FileName)
}

func (s *SQLiteStore) HasRecord(ctx context.Context, fileName string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM records WHERE file_name = ?`, fileName,
	).Scan(&n)
	if err != nil {
		return false, eris.Wrapf(err, "sqlite: has record %s", fileName)
	}
	return n > 0, nil
}

func (s *SQLiteStore) ProcessedFileNames(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT file_name FROM records`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list processed file names")
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan file name")
		}
		names[name] = true
	}
	return names, eris.Wrap(rows.Err(), "sqlite: iterate file names")
}

func (s *SQLiteStore) ListRecords(ctx context.Context, filter RecordFilter) ([]model.InvoiceRecord, error) {
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
		query += ` AND company = ?`
		args = append(args, filter.Company)
	}
	if filter.Month != "" {
		query += ` AND month = ?`
		args = append(args, filter.Month)
	}

	query += ` ORDER BY confidence DESC, month, invoice_date, file_name`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET; -1 means unbounded.
		query += ` LIMIT -1`
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list records")
	}
	defer rows.Close()

	var records []model.InvoiceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate records")
}

// scanRecord reads one record row. Dates are stored as ISO strings and
// prices as decimal strings, so nothing driver-specific leaks into the model.
func scanRecord(rows *sql.Rows) (*model.InvoiceRecord, error) {
	var (
		rec      model.InvoiceRecord
		invDate  sql.NullString
		evDate   sql.NullString
		priceStr string
	)
	err := rows.Scan(
		&rec.ID, &rec.FileName, &rec.FilePath, &rec.Month, &rec.Company,
		&rec.EventType, &rec.Event, &rec.Stand, &invDate, &evDate,
		&rec.Quantity, &priceStr, &rec.IsFeeOnly, &rec.Confidence,
		&rec.ConfidenceNotes, &rec.ProcessedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "store: scan record")
	}
	rec.InvoiceDate = invDate.String
	rec.EventDate = evDate.String

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, eris.Wrapf(err, "store: parse price %q", priceStr)
	}
	rec.TicketPrice = price

	return &rec, nil
}
