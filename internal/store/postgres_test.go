package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpl-auction/invoice-cli/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresFromPool(mock), mock
}

func TestPostgresMigrate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS records").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSaveRecord(t *testing.T) {
	s, mock := newMockStore(t)

	rec := testRecord("genie_31.03.pdf")
	rec.ID = "00000000-0000-0000-0000-000000000001"
	rec.ProcessedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO records").
		WithArgs(rec.ID, rec.FileName, rec.FilePath, rec.Month, rec.Company,
			rec.EventType, rec.Event, rec.Stand, rec.InvoiceDate, rec.EventDate,
			rec.Quantity, rec.TicketPrice.String(), rec.IsFeeOnly, rec.Confidence,
			rec.ConfidenceNotes, rec.ProcessedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveRecord(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSaveRecordAssignsID(t *testing.T) {
	s, mock := newMockStore(t)

	rec := testRecord("a.pdf")
	mock.ExpectExec("INSERT INTO records").
		WithArgs(pgxmock.AnyArg(), rec.FileName, rec.FilePath, rec.Month, rec.Company,
			rec.EventType, rec.Event, rec.Stand, rec.InvoiceDate, rec.EventDate,
			rec.Quantity, rec.TicketPrice.String(), rec.IsFeeOnly, rec.Confidence,
			rec.ConfidenceNotes, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveRecord(context.Background(), rec))
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.ProcessedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHasRecord(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("a.pdf").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := s.HasRecord(context.Background(), "a.pdf")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProcessedFileNames(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT file_name FROM records").
		WillReturnRows(pgxmock.NewRows([]string{"file_name"}).
			AddRow("a.pdf").
			AddRow("b.pdf"))

	names, err := s.ProcessedFileNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"a.pdf": true, "b.pdf": true}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func recordRows() *pgxmock.Rows {
	invDate := "2024-03-31"
	evDate := "2024-03-31"
	return pgxmock.NewRows([]string{
		"id", "file_name", "file_path", "month", "company", "event_type",
		"event", "stand", "invoice_date", "event_date", "quantity",
		"ticket_price", "is_fee_only", "confidence", "confidence_notes",
		"processed_at",
	}).AddRow(
		"00000000-0000-0000-0000-000000000001", "genie_31.03.pdf",
		"invoices/Mar_24/genie_31.03.pdf", "March 2024", "TicketGenie",
		"IPL 2024", "GT vs SRH", "BLOCK E BAY 5-UPPER", &invDate, &evDate,
		5, "18906.25", false, 100, "High confidence",
		time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	)
}

func TestPostgresListRecords(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("FROM records WHERE 1=1 ORDER BY").
		WillReturnRows(recordRows())

	records, err := s.ListRecords(context.Background(), RecordFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "genie_31.03.pdf", got.FileName)
	assert.Equal(t, "2024-03-31", got.InvoiceDate)
	assert.Equal(t, "2024-03-31", got.EventDate)
	assert.True(t, got.TicketPrice.Equal(decimal.RequireFromString("18906.25")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListRecordsFilterPlaceholders(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`AND confidence >= 80 AND company = \$1 AND month = \$2(.+)LIMIT \$3 OFFSET \$4`).
		WithArgs("TicketGenie", "March 2024", 10, 5).
		WillReturnRows(recordRows())

	records, err := s.ListRecords(context.Background(), RecordFilter{
		Band:    model.BandHigh,
		Company: "TicketGenie",
		Month:   "March 2024",
		Limit:   10,
		Offset:  5,
	})
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListRecordsNullDates(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{
		"id", "file_name", "file_path", "month", "company", "event_type",
		"event", "stand", "invoice_date", "event_date", "quantity",
		"ticket_price", "is_fee_only", "confidence", "confidence_notes",
		"processed_at",
	}).AddRow(
		"00000000-0000-0000-0000-000000000002", "scan0042.png",
		"misc/scan0042.png", "Unknown", "Unknown", "Unknown Event",
		"Unknown Event", "General", (*string)(nil), (*string)(nil),
		0, "0", false, 20, "Company unclear, Price not found",
		time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	)

	mock.ExpectQuery("FROM records").WillReturnRows(rows)

	records, err := s.ListRecords(context.Background(), RecordFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].InvoiceDate)
	assert.Empty(t, records[0].EventDate)
	assert.True(t, records[0].TicketPrice.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
