/*
store.go - Persistence interfaces for clients, obligations, and payments

PURPOSE:
  Defines the interface between the engine's consumers and the record
  store. The engine itself never calls these - handlers fetch records,
  pass them to Resolve, and write results nowhere. Different
  implementations can use SQLite or in-memory storage.

PAYMENT APPEND-ONLY CONTRACT:
  Payments are appended, never mutated or removed. There is no
  UpdatePayment or DeletePayment; a payment disappears only when its
  obligation is deleted. Corrections happen by administrative deletion
  and re-entry of the obligation, which is an explicit, audited act.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - lending/store/memory.go: In-memory for testing

SEE ALSO:
  - resolver.go: The pure computation these records feed
*/
package lending

import "context"

// ClientStore persists debtor records. Document numbers are unique;
// SaveClient returns ErrDuplicateDocument on a second client with the
// same document.
type ClientStore interface {
	SaveClient(ctx context.Context, c Client) error

	// GetClient returns (nil, nil) when the client doesn't exist.
	GetClient(ctx context.Context, id ClientID) (*Client, error)

	// GetClientByDocument is the public-lookup path.
	GetClientByDocument(ctx context.Context, document string) (*Client, error)

	ListClients(ctx context.Context) ([]Client, error)

	// DeleteClient removes the client and cascades to its obligations
	// and their payments.
	DeleteClient(ctx context.Context, id ClientID) error
}

// ObligationStore persists debts and their payment histories.
type ObligationStore interface {
	SaveObligation(ctx context.Context, o Obligation) error

	// GetObligation returns the obligation with payments in chronological
	// (insertion) order, or (nil, nil) when absent.
	GetObligation(ctx context.Context, id ObligationID) (*Obligation, error)

	ListObligationsByClient(ctx context.Context, clientID ClientID) ([]Obligation, error)

	DeleteObligation(ctx context.Context, id ObligationID) error

	// AppendPayment records a settlement. Append-only: no update, no
	// delete. Returns ErrObligationNotFound for an unknown obligation.
	AppendPayment(ctx context.Context, id ObligationID, p Payment) error
}

// Store is the full persistence surface the admin panel needs.
type Store interface {
	ClientStore
	ObligationStore
}
