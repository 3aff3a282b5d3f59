package types

// Ledger entry types. BUY entries count as income, IMPORT entries as
// expense in finance reports.
const (
	EntryBuy    = "BUY"
	EntryImport = "IMPORT"
)

// LedgerEntry is one monetary event in the append-only finance ledger.
// Entries are never rewritten; insertion order is the only index.
type LedgerEntry struct {
	ID          string // UUID v7, assigned when the entry is appended
	Type        string // EntryBuy or EntryImport
	AmountCents int64
}

// ValidEntryType reports whether t is a recognized ledger entry type.
func ValidEntryType(t string) bool {
	return t == EntryBuy || t == EntryImport
}
