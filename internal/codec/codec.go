// Package codec encodes and decodes one typed record to and from a
// tab-separated text line. Free-text fields escape backslash, tab and
// newline as two-character sequences so any visible-ASCII content survives
// the line-oriented record files.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pagecroft/bookstore/pkg/types"
)

// Escape rewrites `\`, tab and newline as `\\`, `\t` and `\n`.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Unescape reverses Escape. A trailing lone backslash and unknown escape
// sequences are passed through unchanged.
func Unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 't':
				b.WriteByte('\t')
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// EncodeAccount renders an account as one record line (no trailing newline).
func EncodeAccount(a types.Account) string {
	active := "0"
	if a.Active {
		active = "1"
	}
	return strings.Join([]string{
		Escape(a.UserID),
		Escape(a.PasswordHash),
		Escape(a.PasswordSalt),
		strconv.Itoa(a.Privilege),
		Escape(a.Username),
		active,
	}, "\t")
}

// DecodeAccount parses one account record line.
func DecodeAccount(line string) (types.Account, error) {
	parts := strings.Split(line, "\t")
	if len(parts) < 6 {
		return types.Account{}, fmt.Errorf("%w: account needs 6 fields, got %d", types.ErrBadRecord, len(parts))
	}
	priv, err := strconv.Atoi(parts[3])
	if err != nil {
		return types.Account{}, fmt.Errorf("%w: account privilege %q", types.ErrBadRecord, parts[3])
	}
	return types.Account{
		UserID:       Unescape(parts[0]),
		PasswordHash: Unescape(parts[1]),
		PasswordSalt: Unescape(parts[2]),
		Privilege:    priv,
		Username:     Unescape(parts[4]),
		Active:       parts[5] == "1",
	}, nil
}

// EncodeBook renders a book as one record line (no trailing newline).
func EncodeBook(b types.Book) string {
	return strings.Join([]string{
		Escape(b.ISBN),
		Escape(b.Name),
		Escape(b.Author),
		Escape(b.KeywordString()),
		strconv.FormatInt(b.PriceCents, 10),
		strconv.FormatInt(b.Stock, 10),
	}, "\t")
}

// DecodeBook parses one book record line.
func DecodeBook(line string) (types.Book, error) {
	parts := strings.Split(line, "\t")
	if len(parts) < 6 {
		return types.Book{}, fmt.Errorf("%w: book needs 6 fields, got %d", types.ErrBadRecord, len(parts))
	}
	price, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil {
		return types.Book{}, fmt.Errorf("%w: book price %q", types.ErrBadRecord, parts[4])
	}
	stock, err := strconv.ParseInt(parts[5], 10, 64)
	if err != nil {
		return types.Book{}, fmt.Errorf("%w: book stock %q", types.ErrBadRecord, parts[5])
	}
	return types.Book{
		ISBN:       Unescape(parts[0]),
		Name:       Unescape(parts[1]),
		Author:     Unescape(parts[2]),
		Keywords:   types.SplitKeywords(Unescape(parts[3])),
		PriceCents: price,
		Stock:      stock,
	}, nil
}

// EncodeLedgerEntry renders a ledger entry as one record line.
func EncodeLedgerEntry(e types.LedgerEntry) string {
	return strings.Join([]string{
		Escape(e.ID),
		e.Type,
		strconv.FormatInt(e.AmountCents, 10),
	}, "\t")
}

// DecodeLedgerEntry parses one ledger record line.
func DecodeLedgerEntry(line string) (types.LedgerEntry, error) {
	parts := strings.Split(line, "\t")
	if len(parts) != 3 {
		return types.LedgerEntry{}, fmt.Errorf("%w: ledger entry needs 3 fields, got %d", types.ErrBadRecord, len(parts))
	}
	if !types.ValidEntryType(parts[1]) {
		return types.LedgerEntry{}, fmt.Errorf("%w: ledger entry type %q", types.ErrBadRecord, parts[1])
	}
	amount, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return types.LedgerEntry{}, fmt.Errorf("%w: ledger amount %q", types.ErrBadRecord, parts[2])
	}
	return types.LedgerEntry{
		ID:          Unescape(parts[0]),
		Type:        parts[1],
		AmountCents: amount,
	}, nil
}

// EncodeAuditEntry renders an audit entry as one record line. The raw
// command is escaped so embedded tabs cannot split the actor field on read.
func EncodeAuditEntry(e types.AuditEntry) string {
	return Escape(e.Actor) + "\t" + Escape(e.Command)
}

// DecodeAuditEntry parses one audit record line. Only the first tab
// separates actor from command; the command may itself contain tabs once
// unescaped.
func DecodeAuditEntry(line string) (types.AuditEntry, error) {
	actor, command, ok := strings.Cut(line, "\t")
	if !ok {
		return types.AuditEntry{}, fmt.Errorf("%w: audit entry needs 2 fields", types.ErrBadRecord)
	}
	return types.AuditEntry{
		Actor:   Unescape(actor),
		Command: Unescape(command),
	}, nil
}
