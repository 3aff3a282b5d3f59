// Package textfile implements the flat-file record store backend. Each
// record set is one newline-terminated file of tab-separated escaped fields
// in the data directory; mutable sets are rewritten whole, the finance
// ledger and audit log are append-only.
package textfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pagecroft/bookstore/internal/auth"
	"github.com/pagecroft/bookstore/internal/codec"
	"github.com/pagecroft/bookstore/pkg/types"
)

// Record file names within the data directory.
const (
	accountsFile = "accounts.db"
	booksFile    = "books.db"
	financeFile  = "finance.db"
	auditFile    = "audit.log"
)

// Store is the flat-file backend. Not safe for concurrent use.
type Store struct {
	dataDir string
	closed  bool
}

// Open prepares the data directory, seeds the root account on first run and
// returns a ready Store.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{dataDir: dataDir}
	if err := s.ensureSeeded(); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureSeeded writes the initial record files on first run: the accounts
// set containing only the root superuser, and empty book, finance and audit
// files.
func (s *Store) ensureSeeded() error {
	accountsPath := s.path(accountsFile)
	if _, err := os.Stat(accountsPath); os.IsNotExist(err) {
		hash, salt, err := auth.HashPassword(types.RootPassword)
		if err != nil {
			return fmt.Errorf("seed root account: %w", err)
		}
		root := types.Account{
			UserID:       types.RootUserID,
			PasswordHash: hash,
			PasswordSalt: salt,
			Privilege:    types.PrivilegeOwner,
			Username:     types.RootUserID,
			Active:       true,
		}
		if err := writeLines(accountsPath, []string{codec.EncodeAccount(root)}); err != nil {
			return fmt.Errorf("seed root account: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("stat %s: %w", accountsPath, err)
	}

	for _, name := range []string{booksFile, financeFile, auditFile} {
		path := s.path(name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := writeLines(path, nil); err != nil {
				return err
			}
		} else if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// Close marks the store closed. Subsequent operations fail with
// ErrStoreClosed.
func (s *Store) Close() error {
	s.closed = true
	return nil
}

// LoadAccounts reads the full accounts set in persisted order. Malformed
// lines are skipped.
func (s *Store) LoadAccounts() ([]types.Account, error) {
	if s.closed {
		return nil, types.ErrStoreClosed
	}
	lines, err := readLines(s.path(accountsFile))
	if err != nil {
		return nil, err
	}
	accounts := make([]types.Account, 0, len(lines))
	for _, line := range lines {
		a, err := codec.DecodeAccount(line)
		if err != nil {
			continue
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// ReplaceAccounts atomically rewrites the full accounts set.
func (s *Store) ReplaceAccounts(accounts []types.Account) error {
	if s.closed {
		return types.ErrStoreClosed
	}
	lines := make([]string, len(accounts))
	for i, a := range accounts {
		lines[i] = codec.EncodeAccount(a)
	}
	return writeLines(s.path(accountsFile), lines)
}

// LoadBooks reads the full book catalog in persisted order. Malformed lines
// are skipped.
func (s *Store) LoadBooks() ([]types.Book, error) {
	if s.closed {
		return nil, types.ErrStoreClosed
	}
	lines, err := readLines(s.path(booksFile))
	if err != nil {
		return nil, err
	}
	books := make([]types.Book, 0, len(lines))
	for _, line := range lines {
		b, err := codec.DecodeBook(line)
		if err != nil {
			continue
		}
		books = append(books, b)
	}
	return books, nil
}

// ReplaceBooks atomically rewrites the full book catalog.
func (s *Store) ReplaceBooks(books []types.Book) error {
	if s.closed {
		return types.ErrStoreClosed
	}
	lines := make([]string, len(books))
	for i, b := range books {
		lines[i] = codec.EncodeBook(b)
	}
	return writeLines(s.path(booksFile), lines)
}

// LoadLedger reads the finance ledger in append order.
func (s *Store) LoadLedger() ([]types.LedgerEntry, error) {
	if s.closed {
		return nil, types.ErrStoreClosed
	}
	lines, err := readLines(s.path(financeFile))
	if err != nil {
		return nil, err
	}
	entries := make([]types.LedgerEntry, 0, len(lines))
	for _, line := range lines {
		e, err := codec.DecodeLedgerEntry(line)
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// AppendLedger durably appends one ledger entry.
func (s *Store) AppendLedger(e types.LedgerEntry) error {
	if s.closed {
		return types.ErrStoreClosed
	}
	return appendLine(s.path(financeFile), codec.EncodeLedgerEntry(e))
}

// LoadAudit reads the audit log in append order.
func (s *Store) LoadAudit() ([]types.AuditEntry, error) {
	if s.closed {
		return nil, types.ErrStoreClosed
	}
	lines, err := readLines(s.path(auditFile))
	if err != nil {
		return nil, err
	}
	entries := make([]types.AuditEntry, 0, len(lines))
	for _, line := range lines {
		e, err := codec.DecodeAuditEntry(line)
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// AppendAudit durably appends one audit entry.
func (s *Store) AppendAudit(e types.AuditEntry) error {
	if s.closed {
		return types.ErrStoreClosed
	}
	return appendLine(s.path(auditFile), codec.EncodeAuditEntry(e))
}

var _ types.Store = (*Store)(nil)
