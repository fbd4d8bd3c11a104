/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements lending.Store (clients, obligations, payments) using SQLite.
  In production, the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

PAYMENT APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on the payments table
  - No DELETE statements on the payments table
  - Payments are removed only by cascade when their obligation is deleted

KEY TABLES:
  clients:     Debtor records, document number unique
  obligations: Debts, FK to clients with ON DELETE CASCADE
  payments:    Append-only settlements, FK to obligations with CASCADE

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block, single writer at a time, better crash
  recovery.

USAGE:
  store, err := sqlite.New("./data/lending.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - lending/store.go: Interface definitions
  - lending/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/inversionesmg/lending-engine/lending"
	_ "github.com/mattn/go-sqlite3"
)

// Store implements lending.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Clients (debtors)
	CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		document_number TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL,
		email TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_clients_document
		ON clients(document_number);

	-- Obligations (debts)
	CREATE TABLE IF NOT EXISTS obligations (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		principal TEXT NOT NULL,
		due_date TEXT NOT NULL,
		created_date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_obligations_client
		ON obligations(client_id);

	-- Payments (append-only ledger of settlements)
	CREATE TABLE IF NOT EXISTS payments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		obligation_id TEXT NOT NULL REFERENCES obligations(id) ON DELETE CASCADE,
		amount TEXT NOT NULL,
		paid_on TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Insertion order = chronological order; the rowid preserves it.
	CREATE INDEX IF NOT EXISTS idx_payments_obligation
		ON payments(obligation_id, id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CLIENT STORE (lending.ClientStore interface)
// =============================================================================

// SaveClient inserts or updates a client record.
func (s *Store) SaveClient(ctx context.Context, c lending.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO clients (id, name, document_number, phone, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			document_number = excluded.document_number,
			phone = excluded.phone,
			email = excluded.email
	`

	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.DocumentNumber, c.Phone, nullString(c.Email),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return lending.ErrDuplicateDocument
		}
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

// GetClient returns a client by ID, or (nil, nil) when absent.
func (s *Store) GetClient(ctx context.Context, id lending.ClientID) (*lending.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getClientWhere(ctx, "id = ?", string(id))
}

// GetClientByDocument returns a client by document number, or (nil, nil).
func (s *Store) GetClientByDocument(ctx context.Context, document string) (*lending.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getClientWhere(ctx, "document_number = ?", document)
}

func (s *Store) getClientWhere(ctx context.Context, where string, arg any) (*lending.Client, error) {
	query := `SELECT id, name, document_number, phone, email FROM clients WHERE ` + where

	var (
		c     lending.Client
		email sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.DocumentNumber, &c.Phone, &email,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	c.Email = email.String
	return &c, nil
}

// ListClients returns all clients ordered by name.
func (s *Store) ListClients(ctx context.Context) ([]lending.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, document_number, phone, email FROM clients ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []lending.Client
	for rows.Next() {
		var (
			c     lending.Client
			email sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.DocumentNumber, &c.Phone, &email); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		c.Email = email.String
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// DeleteClient removes a client; obligations and payments cascade.
func (s *Store) DeleteClient(ctx context.Context, id lending.ClientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return lending.ErrClientNotFound
	}
	return nil
}

// =============================================================================
// OBLIGATION STORE (lending.ObligationStore interface)
// =============================================================================

// SaveObligation inserts or updates an obligation record. Payments carried
// on the value are ignored: they go through AppendPayment only.
func (s *Store) SaveObligation(ctx context.Context, o lending.Obligation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO obligations (id, client_id, principal, due_date, created_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			principal = excluded.principal,
			due_date = excluded.due_date,
			created_date = excluded.created_date
	`

	_, err := s.db.ExecContext(ctx, query,
		o.ID, o.ClientID, o.Principal.String(),
		o.DueDate.String(), o.CreatedDate.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return lending.ErrClientNotFound
		}
		return fmt.Errorf("failed to save obligation: %w", err)
	}
	return nil
}

// GetObligation returns an obligation with its payments, or (nil, nil).
func (s *Store) GetObligation(ctx context.Context, id lending.ObligationID) (*lending.Obligation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, client_id, principal, due_date, created_date FROM obligations WHERE id = ?`

	o, err := s.scanObligation(s.db.QueryRowContext(ctx, query, string(id)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if o.Payments, err = s.loadPayments(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// ListObligationsByClient returns a client's obligations with payments,
// oldest created first.
func (s *Store) ListObligationsByClient(ctx context.Context, clientID lending.ClientID) ([]lending.Obligation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, client_id, principal, due_date, created_date
		 FROM obligations WHERE client_id = ?
		 ORDER BY created_date ASC, id ASC`, string(clientID))
	if err != nil {
		return nil, fmt.Errorf("failed to list obligations: %w", err)
	}
	defer rows.Close()

	var obligations []lending.Obligation
	for rows.Next() {
		o, err := s.scanObligation(rows)
		if err != nil {
			return nil, err
		}
		obligations = append(obligations, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range obligations {
		if obligations[i].Payments, err = s.loadPayments(ctx, obligations[i].ID); err != nil {
			return nil, err
		}
	}
	return obligations, nil
}

// DeleteObligation removes an obligation; its payments cascade.
func (s *Store) DeleteObligation(ctx context.Context, id lending.ObligationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM obligations WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete obligation: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return lending.ErrObligationNotFound
	}
	return nil
}

// AppendPayment records a settlement. This is the ONLY write to payments.
func (s *Store) AppendPayment(ctx context.Context, id lending.ObligationID, p lending.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO payments (obligation_id, amount, paid_on, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		string(id), p.Amount.String(), p.Date.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return lending.ErrObligationNotFound
		}
		return fmt.Errorf("failed to append payment: %w", err)
	}
	return nil
}

func (s *Store) loadPayments(ctx context.Context, id lending.ObligationID) ([]lending.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT amount, paid_on FROM payments WHERE obligation_id = ? ORDER BY id ASC`,
		string(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	defer rows.Close()

	var payments []lending.Payment
	for rows.Next() {
		var amount, paidOn string
		if err := rows.Scan(&amount, &paidOn); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		date, err := lending.ParseDate(paidOn)
		if err != nil {
			return nil, fmt.Errorf("corrupt payment date %q: %w", paidOn, err)
		}
		payments = append(payments, lending.Payment{
			Amount: lending.ParseMoney(amount),
			Date:   date,
		})
	}
	return payments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanObligation(row rowScanner) (*lending.Obligation, error) {
	var (
		o                lending.Obligation
		principal        string
		dueDate, created string
	)
	err := row.Scan(&o.ID, &o.ClientID, &principal, &dueDate, &created)
	if err != nil {
		return nil, err
	}

	o.Principal = lending.ParseMoney(principal)
	if o.DueDate, err = lending.ParseDate(dueDate); err != nil {
		return nil, fmt.Errorf("corrupt due date %q: %w", dueDate, err)
	}
	if o.CreatedDate, err = lending.ParseDate(created); err != nil {
		return nil, fmt.Errorf("corrupt created date %q: %w", created, err)
	}
	return &o, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
