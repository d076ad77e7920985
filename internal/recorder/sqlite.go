package recorder

import (
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// saveAttempts bounds the busy-retry loop on concurrent writes.
const saveAttempts = 5

// SQLite writes records to a local SQLite database. All columns are
// stored as TEXT; counts are already stringified by extraction.
type SQLite struct {
	db     *sqlx.DB
	insert string
}

// NewSQLite opens (creating if needed) the database at path and ensures
// the works table exists.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	cols := make([]string, len(FieldKeys))
	marks := make([]string, len(FieldKeys))
	for i, k := range FieldKeys {
		cols[i] = fmt.Sprintf("%q TEXT", k)
		marks[i] = "?"
	}

	schema := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS works (%s)", strings.Join(cols, ", "),
	)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create works table: %w", err)
	}

	quoted := make([]string, len(FieldKeys))
	for i, k := range FieldKeys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	insert := fmt.Sprintf(
		"INSERT INTO works (%s) VALUES (%s)",
		strings.Join(quoted, ", "), strings.Join(marks, ", "),
	)

	return &SQLite{db: db, insert: insert}, nil
}

// FieldKeys returns the canonical field order.
func (s *SQLite) FieldKeys() []string { return FieldKeys }

// Save inserts one record row, retrying when the database is locked by
// a concurrent writer.
func (s *SQLite) Save(values []any) error {
	if len(values) != len(FieldKeys) {
		return fmt.Errorf("expected %d values, got %d", len(FieldKeys), len(values))
	}

	args := make([]any, len(values))
	for i, v := range values {
		args[i] = stringify(v)
	}

	err := retry.Do(
		func() error {
			_, err := s.db.Exec(s.insert, args...)
			return err
		},
		retry.Attempts(saveAttempts),
		retry.Delay(50*time.Millisecond),
		retry.RetryIf(func(err error) bool {
			return strings.Contains(err.Error(), "database is locked")
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
