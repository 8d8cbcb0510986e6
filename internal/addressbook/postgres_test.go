package addressbook

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "addressbook/internal/common/errors"
	"addressbook/internal/common/logger"
)

func newPostgresStoreWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db, logger.NewTestLogger(t)), mock
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	store, mock := newPostgresStoreWithMock(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS address_book_entries").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AddAddress(t *testing.T) {
	store, mock := newPostgresStoreWithMock(t)

	entry := createTestEntry()
	mock.ExpectExec("INSERT INTO address_book_entries").
		WithArgs(
			entry.ID,
			entry.HouseNumber,
			entry.Street,
			entry.City,
			entry.Postcode,
			entry.Province,
			entry.Country,
			entry.FirstName,
			entry.LastName,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.AddAddress(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AddAddressFailure(t *testing.T) {
	store, mock := newPostgresStoreWithMock(t)

	mock.ExpectExec("INSERT INTO address_book_entries").
		WillReturnError(fmt.Errorf("connection reset"))

	err := store.AddAddress(context.Background(), createTestEntry())
	require.Error(t, err)
	assert.True(t, stderrors.IsCode(err, stderrors.ErrCodeStore))
	assert.Contains(t, stderrors.AsStandard(err).Details, "connection reset")
}
