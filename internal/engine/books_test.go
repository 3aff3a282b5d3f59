package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagecroft/bookstore/pkg/types"
)

// stockBook creates a priced, stocked catalog record under the given ISBN.
func stockBook(t *testing.T, e *Engine, isbn string) {
	t.Helper()
	out := feed(e,
		"su root sjtu",
		"select "+isbn,
		`modify -name="The Go Programming Language" -author=Donovan -keyword=go|programming -price=39.99`,
		"import 20 150.00",
		"logout",
	)
	require.Equal(t, "", out)
}

func TestShowBooks(t *testing.T) {
	line := "b1\tThe Go Programming Language\tDonovan\tgo|programming\t39.99\t20\n"

	tests := []struct {
		name string
		line string
		want string
	}{
		{"no filter", "show", line},
		{"isbn match", "show -ISBN=b1", line},
		{"isbn miss", "show -ISBN=zz", "\n"},
		{"name match", `show -name="The Go Programming Language"`, line},
		{"author match", "show -author=Donovan", line},
		{"keyword match", "show -keyword=go", line},
		{"keyword miss", "show -keyword=rust", "\n"},
		{"keyword with separator", "show -keyword=go|programming", "Invalid\n"},
		{"empty filter value", "show -name=", "Invalid\n"},
		{"unknown filter", "show -publisher=x", "Invalid\n"},
		{"two filters", "show -ISBN=b1 -author=Donovan", "Invalid\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			stockBook(t, e, "b1")
			feed(e, "register c pw C", "su c pw")
			assert.Equal(t, tt.want, feed(e, tt.line))
		})
	}
}

func TestShowBooksSortedByISBN(t *testing.T) {
	e := newTestEngine(t)
	feed(e, "su root sjtu", "select b2", "select b1", "select a9")

	out := feed(e, "show")
	assert.Equal(t, "a9\t\t\t\t0.00\t0\nb1\t\t\t\t0.00\t0\nb2\t\t\t\t0.00\t0\n", out)
}

func TestShowRequiresLogin(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, "Invalid\n", feed(e, "show"))
}

func TestBuy(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"total printed", "buy b1 2", "79.98\n"},
		{"single copy", "buy b1 1", "39.99\n"},
		{"whole stock", "buy b1 20", "799.80\n"},
		{"more than stock", "buy b1 21", "Invalid\n"},
		{"zero quantity", "buy b1 0", "Invalid\n"},
		{"negative quantity", "buy b1 -1", "Invalid\n"},
		{"signed quantity", "buy b1 +2", "Invalid\n"},
		{"unknown isbn", "buy zz 1", "Invalid\n"},
		{"missing quantity", "buy b1", "Invalid\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			stockBook(t, e, "b1")
			feed(e, "register c pw C", "su c pw")
			assert.Equal(t, tt.want, feed(e, tt.line))
		})
	}
}

func TestBuyDecrementsStockAndLogsIncome(t *testing.T) {
	e := newTestEngine(t)
	stockBook(t, e, "b1")
	feed(e, "register c pw C", "su c pw", "buy b1 2")

	books, err := e.store.LoadBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, int64(18), books[0].Stock)

	ledger, err := e.store.LoadLedger()
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.Equal(t, types.EntryBuy, ledger[1].Type)
	assert.Equal(t, int64(7998), ledger[1].AmountCents)
}

func TestSelectCreatesBareRecord(t *testing.T) {
	e := newTestEngine(t)
	out := feed(e, "su root sjtu", "select b1", "show")
	assert.Equal(t, "b1\t\t\t\t0.00\t0\n", out)
	assert.Equal(t, "b1", e.Sessions().Selected())
}

func TestSelectExistingKeepsRecord(t *testing.T) {
	e := newTestEngine(t)
	stockBook(t, e, "b1")
	out := feed(e, "su root sjtu", "select b1", "show -ISBN=b1")
	assert.Equal(t, "b1\tThe Go Programming Language\tDonovan\tgo|programming\t39.99\t20\n", out)
}

func TestSelectRequiresStaff(t *testing.T) {
	e := newTestEngine(t)
	feed(e, "register c pw C", "su c pw")
	assert.Equal(t, "Invalid\n", feed(e, "select b1"))
}

func TestModify(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
	}{
		{"name", `modify -name="New Name"`, true},
		{"author", "modify -author=Pike", true},
		{"keywords", "modify -keyword=go|concurrency", true},
		{"price", "modify -price=10.50", true},
		{"rename", "modify -ISBN=b2", true},
		{"all at once", `modify -ISBN=b3 -name=N -author=A -keyword=k -price=1.00`, true},
		{"unchanged isbn", "modify -ISBN=b1", false},
		{"isbn collision", "modify -ISBN=other", false},
		{"duplicate edit", "modify -name=A -name=B", false},
		{"empty value", "modify -name=", false},
		{"unknown field", "modify -stock=5", false},
		{"duplicate keyword tag", "modify -keyword=go|go", false},
		{"empty keyword tag", "modify -keyword=go||x", false},
		{"bad price", "modify -price=1.a0", false},
		{"no edits", "modify", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			stockBook(t, e, "b1")
			feed(e, "su root sjtu", "select other", "select b1")
			if tt.ok {
				assert.Equal(t, "", feed(e, tt.line))
			} else {
				assert.Equal(t, "Invalid\n", feed(e, tt.line))
			}
		})
	}
}

func TestModifyWithoutSelection(t *testing.T) {
	e := newTestEngine(t)
	feed(e, "su root sjtu")
	assert.Equal(t, "Invalid\n", feed(e, "modify -name=X"))
}

func TestModifyRenameMovesSelection(t *testing.T) {
	e := newTestEngine(t)
	feed(e, "su root sjtu", "select b1", "modify -ISBN=b2")

	assert.Equal(t, "b2", e.Sessions().Selected())

	// Further edits land on the renamed record.
	out := feed(e, "modify -price=5.00", "show -ISBN=b2")
	assert.Equal(t, "b2\t\t\t\t5.00\t0\n", out)
}

func TestSelectionIsPerFrame(t *testing.T) {
	e := newTestEngine(t)
	feed(e,
		"su root sjtu",
		"useradd clerk pw 3 Clerk",
		"select b1",
		"su clerk",
	)
	// The inner frame has no selection of its own.
	assert.Equal(t, "Invalid\n", feed(e, "modify -name=X"))

	// Popping back restores the outer frame's selection.
	out := feed(e, "logout", "modify -name=X")
	assert.Equal(t, "", out)
}

func TestImport(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
	}{
		{"basic", "import 10 5.00", true},
		{"fractional cost", "import 1 .50", true},
		{"zero quantity", "import 0 5.00", false},
		{"negative quantity", "import -1 5.00", false},
		{"zero cost", "import 10 0.00", false},
		{"bad cost", "import 10 5.0.0", false},
		{"missing cost", "import 10", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			feed(e, "su root sjtu", "select b1")
			if tt.ok {
				assert.Equal(t, "", feed(e, tt.line))
			} else {
				assert.Equal(t, "Invalid\n", feed(e, tt.line))
			}
		})
	}
}

func TestImportAddsStockWithoutTouchingPrice(t *testing.T) {
	e := newTestEngine(t)
	stockBook(t, e, "b1")
	feed(e, "su root sjtu", "select b1", "import 5 100.00")

	books, err := e.store.LoadBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, int64(25), books[0].Stock)
	assert.Equal(t, int64(3999), books[0].PriceCents, "import cost never sets the sale price")

	ledger, err := e.store.LoadLedger()
	require.NoError(t, err)
	last := ledger[len(ledger)-1]
	assert.Equal(t, types.EntryImport, last.Type)
	assert.Equal(t, int64(10000), last.AmountCents)
}

func TestImportWithoutSelection(t *testing.T) {
	e := newTestEngine(t)
	feed(e, "su root sjtu")
	assert.Equal(t, "Invalid\n", feed(e, "import 10 5.00"))
}
