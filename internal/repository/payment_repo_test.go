package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
		// Skip the version query gorm issues on connect
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestSumAmountByInvoiceID_Coalesce(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)
	invoiceID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM "payments" WHERE invoice_id = $1`)).
		WithArgs(invoiceID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("1306.80"))

	total, err := repo.SumAmountByInvoiceID(context.Background(), nil, invoiceID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("1306.80")), "total = %s", total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// An invoice without payments sums to zero, not NULL: the COALESCE keeps the
// remaining-balance arithmetic away from null handling.
func TestSumAmountByInvoiceID_SinPagos(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)
	invoiceID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM "payments" WHERE invoice_id = $1`)).
		WithArgs(invoiceID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))

	total, err := repo.SumAmountByInvoiceID(context.Background(), nil, invoiceID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestCountByInvoiceID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)
	invoiceID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "payments" WHERE invoice_id = $1`)).
		WithArgs(invoiceID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountByInvoiceID(context.Background(), nil, invoiceID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestFindForUpdate_BloqueaLaFila(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db)
	invoiceID := uuid.New()

	// Preload execution order is an implementation detail of the ORM
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(`SELECT .* FROM "invoices" WHERE id = \$1.*FOR UPDATE`).
		WithArgs(invoiceID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "total"}).
			AddRow(invoiceID, "PENDIENTE", "1306.80"))
	// Second read loads the row again with its items, already under the lock
	mock.ExpectQuery(`SELECT .* FROM "invoices" WHERE id = \$1`).
		WithArgs(invoiceID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "total"}).
			AddRow(invoiceID, "PENDIENTE", "1306.80"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "invoice_service_items" WHERE "invoice_service_items"."invoice_id" = $1`)).
		WithArgs(invoiceID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "invoice_products" WHERE "invoice_products"."invoice_id" = $1`)).
		WithArgs(invoiceID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_id"}))

	inv, err := repo.FindForUpdate(db, invoiceID)
	require.NoError(t, err)
	assert.Equal(t, invoiceID, inv.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
