package addressbook

import (
	"context"
	"database/sql"
	"fmt"

	"addressbook/internal/address"
	stderrors "addressbook/internal/common/errors"
	"addressbook/internal/common/logger"
)

const createTableQuery = `
CREATE TABLE IF NOT EXISTS address_book_entries (
	id           TEXT PRIMARY KEY,
	house_number TEXT NOT NULL,
	street       TEXT NOT NULL,
	city         TEXT NOT NULL,
	postcode     TEXT NOT NULL,
	province     TEXT NOT NULL DEFAULT '',
	country      TEXT NOT NULL DEFAULT '',
	first_name   TEXT NOT NULL,
	last_name    TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertEntryQuery = `
INSERT INTO address_book_entries
	(id, house_number, street, city, postcode, province, country, first_name, last_name)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
	first_name = EXCLUDED.first_name,
	last_name  = EXCLUDED.last_name,
	updated_at = now()`

// PostgresStore persists entries in PostgreSQL. The deterministic address ID
// is the primary key, so re-saving the same address updates the person
// instead of duplicating the row.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log,
	}
}

// EnsureSchema creates the entries table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("failed to create address_book_entries table: %w", err)
	}
	return nil
}

func (s *PostgresStore) AddAddress(ctx context.Context, entry address.Entry) error {
	_, err := s.db.ExecContext(ctx, insertEntryQuery,
		entry.ID,
		entry.HouseNumber,
		entry.Street,
		entry.City,
		entry.Postcode,
		entry.Province,
		entry.Country,
		entry.FirstName,
		entry.LastName,
	)
	if err != nil {
		return stderrors.NewStoreError(fmt.Errorf("failed to insert address book entry: %w", err))
	}

	s.logger.Debug("address book entry saved", map[string]interface{}{
		"entryId": entry.ID,
	})
	return nil
}

var _ Store = (*PostgresStore)(nil)
