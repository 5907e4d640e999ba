package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	docMain     = "main"
	docPayments = "payments"
)

// PostgresStore keeps each snapshot document as a jsonb row, for
// deployments where the bot's working directory is not durable.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore connects to the database and ensures the documents
// table exists
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			name       text PRIMARY KEY,
			body       jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)
	`
	if _, err := db.Exec(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close releases the connection pool
func (s *PostgresStore) Close() {
	s.db.Close()
}

// LoadMain reads the main document, or returns an empty one if no snapshot
// was ever saved
func (s *PostgresStore) LoadMain(ctx context.Context) (*MainDocument, error) {
	doc := NewMainDocument()
	if err := s.load(ctx, docMain, doc); err != nil {
		return nil, err
	}
	doc.normalize()
	return doc, nil
}

// SaveMain overwrites the main document
func (s *PostgresStore) SaveMain(ctx context.Context, doc *MainDocument) error {
	return s.save(ctx, docMain, doc)
}

// LoadPayments reads the payments document, or returns an empty ledger if
// no snapshot was ever saved
func (s *PostgresStore) LoadPayments(ctx context.Context) (PaymentsDocument, error) {
	doc := PaymentsDocument{}
	if err := s.load(ctx, docPayments, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SavePayments overwrites the payments document
func (s *PostgresStore) SavePayments(ctx context.Context, doc PaymentsDocument) error {
	return s.save(ctx, docPayments, doc)
}

func (s *PostgresStore) load(ctx context.Context, name string, v any) error {
	var body []byte
	query := `SELECT body FROM documents WHERE name = $1`
	err := s.db.QueryRow(ctx, query, name).Scan(&body)
	if err == pgx.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load document %s: %w", name, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse document %s: %w", name, err)
	}
	return nil
}

func (s *PostgresStore) save(ctx context.Context, name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", name, err)
	}
	query := `
		INSERT INTO documents (name, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
	`
	if _, err := s.db.Exec(ctx, query, name, body); err != nil {
		return fmt.Errorf("failed to save document %s: %w", name, err)
	}
	return nil
}
