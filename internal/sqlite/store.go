// Package sqlite implements the SQLite record store backend. It keeps the
// same whole-set load and replace contract as the flat-file backend; the
// database is an indexed substitute for the record files, not a different
// data model.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/pagecroft/bookstore/internal/auth"
	"github.com/pagecroft/bookstore/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// dbFile is the database file name within the data directory.
const dbFile = "bookstore.db"

// Store is the SQLite backend. Not safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database in dataDir, applies the schema and
// seeds the root account when the accounts table is empty.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFile))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSeeded(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// ensureSeeded inserts the root superuser when no accounts exist yet.
func (s *Store) ensureSeeded() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, salt, err := auth.HashPassword(types.RootPassword)
	if err != nil {
		return fmt.Errorf("seed root account: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO accounts (user_id, password_hash, password_salt, privilege, username, active)
		 VALUES (?, ?, ?, ?, ?, 1)`,
		types.RootUserID, hash, salt, types.PrivilegeOwner, types.RootUserID,
	)
	if err != nil {
		return fmt.Errorf("seed root account: %w", err)
	}
	return nil
}

// Close closes the database. Idempotent.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// LoadAccounts reads the full accounts set in insertion order.
func (s *Store) LoadAccounts() ([]types.Account, error) {
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}
	rows, err := s.db.Query(
		`SELECT user_id, password_hash, password_salt, privilege, username, active
		 FROM accounts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	defer rows.Close()

	var accounts []types.Account
	for rows.Next() {
		var a types.Account
		var active int
		if err := rows.Scan(&a.UserID, &a.PasswordHash, &a.PasswordSalt, &a.Privilege, &a.Username, &active); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Active = active == 1
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// ReplaceAccounts rewrites the accounts set in one transaction.
func (s *Store) ReplaceAccounts(accounts []types.Account) error {
	if s.db == nil {
		return types.ErrStoreClosed
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("replace accounts: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM accounts`); err != nil {
		return fmt.Errorf("replace accounts: clear: %w", err)
	}
	for _, a := range accounts {
		active := 0
		if a.Active {
			active = 1
		}
		_, err := tx.Exec(
			`INSERT INTO accounts (user_id, password_hash, password_salt, privilege, username, active)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			a.UserID, a.PasswordHash, a.PasswordSalt, a.Privilege, a.Username, active,
		)
		if err != nil {
			return fmt.Errorf("replace accounts: insert %q: %w", a.UserID, err)
		}
	}
	return tx.Commit()
}

// LoadBooks reads the full book catalog in insertion order.
func (s *Store) LoadBooks() ([]types.Book, error) {
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}
	rows, err := s.db.Query(
		`SELECT isbn, name, author, keywords, price_cents, stock FROM books ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	defer rows.Close()

	var books []types.Book
	for rows.Next() {
		var b types.Book
		var keywords string
		if err := rows.Scan(&b.ISBN, &b.Name, &b.Author, &keywords, &b.PriceCents, &b.Stock); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		b.Keywords = types.SplitKeywords(keywords)
		books = append(books, b)
	}
	return books, rows.Err()
}

// ReplaceBooks rewrites the book catalog in one transaction.
func (s *Store) ReplaceBooks(books []types.Book) error {
	if s.db == nil {
		return types.ErrStoreClosed
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("replace books: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM books`); err != nil {
		return fmt.Errorf("replace books: clear: %w", err)
	}
	for _, b := range books {
		_, err := tx.Exec(
			`INSERT INTO books (isbn, name, author, keywords, price_cents, stock)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			b.ISBN, b.Name, b.Author, b.KeywordString(), b.PriceCents, b.Stock,
		)
		if err != nil {
			return fmt.Errorf("replace books: insert %q: %w", b.ISBN, err)
		}
	}
	return tx.Commit()
}

// LoadLedger reads the finance ledger in append order.
func (s *Store) LoadLedger() ([]types.LedgerEntry, error) {
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}
	rows, err := s.db.Query(`SELECT entry_id, entry_type, amount_cents FROM ledger ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	defer rows.Close()

	var entries []types.LedgerEntry
	for rows.Next() {
		var e types.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.AmountCents); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AppendLedger appends one ledger entry.
func (s *Store) AppendLedger(e types.LedgerEntry) error {
	if s.db == nil {
		return types.ErrStoreClosed
	}
	_, err := s.db.Exec(
		`INSERT INTO ledger (entry_id, entry_type, amount_cents) VALUES (?, ?, ?)`,
		e.ID, e.Type, e.AmountCents,
	)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// LoadAudit reads the audit log in append order.
func (s *Store) LoadAudit() ([]types.AuditEntry, error) {
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}
	rows, err := s.db.Query(`SELECT actor, command FROM audit ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("load audit: %w", err)
	}
	defer rows.Close()

	var entries []types.AuditEntry
	for rows.Next() {
		var e types.AuditEntry
		if err := rows.Scan(&e.Actor, &e.Command); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AppendAudit appends one audit entry.
func (s *Store) AppendAudit(e types.AuditEntry) error {
	if s.db == nil {
		return types.ErrStoreClosed
	}
	_, err := s.db.Exec(`INSERT INTO audit (actor, command) VALUES (?, ?)`, e.Actor, e.Command)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

var _ types.Store = (*Store)(nil)
