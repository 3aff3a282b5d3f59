package types

import "errors"

// Store is the record-store access layer. Each Load returns the full record
// set in persisted order (empty, not nil error, when the set does not exist
// yet). Each Replace durably rewrites the full set; on error the previous
// durable content remains authoritative and the caller must treat the
// in-flight command as failed. The ledger and audit log are append-only.
//
// Implementations are not safe for concurrent use; command processing is
// strictly sequential.
type Store interface {
	LoadAccounts() ([]Account, error)
	ReplaceAccounts([]Account) error

	LoadBooks() ([]Book, error)
	ReplaceBooks([]Book) error

	LoadLedger() ([]LedgerEntry, error)
	AppendLedger(LedgerEntry) error

	LoadAudit() ([]AuditEntry, error)
	AppendAudit(AuditEntry) error

	// Close releases backend resources. Idempotent.
	Close() error
}

// Store operation errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrBadRecord   = errors.New("malformed record")
)
