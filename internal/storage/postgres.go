package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/QueasyListening/uptime-api/internal/storage/migrations"
)

const uniqueViolation = "23505"

// PgxIface is the subset of pgxpool.Pool the store uses, kept as an
// interface so tests can substitute a pgxmock pool.
type PgxIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps every record as a jsonb row in a single records table
// keyed by (collection, id). Row-level UPDATE gives the atomic replace
// semantics the registries rely on.
type PostgresStore struct {
	db PgxIface
}

func NewPostgresStore(db PgxIface) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, collection, id string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record %s/%s: %w", collection, id, err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO records (collection, id, data)
		VALUES ($1, $2, $3)
	`, collection, id, data)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create record %s/%s: %w", collection, id, err)
	}

	return nil
}

func (s *PostgresStore) Read(ctx context.Context, collection, id string, out any) error {
	row := s.db.QueryRow(ctx, `
		SELECT data
		FROM records
		WHERE collection = $1 AND id = $2
	`, collection, id)

	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNoRecord
		}
		return fmt.Errorf("failed to read record %s/%s: %w", collection, id, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode record %s/%s: %w", collection, id, err)
	}

	return nil
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record %s/%s: %w", collection, id, err)
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE records
		SET data = $3
		WHERE collection = $1 AND id = $2
	`, collection, id, data)
	if err != nil {
		return fmt.Errorf("failed to update record %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRecord
	}

	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM records
		WHERE collection = $1 AND id = $2
	`, collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete record %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRecord
	}

	return nil
}

// RunMigrations applies the embedded goose migrations against the database
// named by dsn. It opens its own database/sql connection because goose does
// not speak pgxpool.
func RunMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
