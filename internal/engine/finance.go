package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pagecroft/bookstore/internal/validate"
	"github.com/pagecroft/bookstore/pkg/types"
)

// sumEntries totals BUY amounts as income and IMPORT amounts as expense.
func sumEntries(entries []types.LedgerEntry) (income, expense int64) {
	for _, e := range entries {
		if e.Type == types.EntryBuy {
			income += e.AmountCents
		} else {
			expense += e.AmountCents
		}
	}
	return income, expense
}

// showFinance reports income and expense over the last N ledger entries, or
// all of them without a count. A count of zero prints a bare newline; a
// count beyond the ledger length is rejected rather than clamped.
func (e *Engine) showFinance(tokens []string) (string, error) {
	if err := e.require(types.PrivilegeOwner); err != nil {
		return "", err
	}
	if len(tokens) != 2 && len(tokens) != 3 {
		return "", fmt.Errorf("%w: show finance takes at most 1 argument", ErrMalformed)
	}

	count := int64(-1)
	if len(tokens) == 3 {
		n, ok := validate.ParseInt(tokens[2])
		if !ok || n < 0 {
			return "", fmt.Errorf("%w: count", ErrValidation)
		}
		count = n
	}
	if count == 0 {
		return "\n", nil
	}

	entries, err := e.store.LoadLedger()
	if err != nil {
		return "", err
	}
	if count > int64(len(entries)) {
		return "", fmt.Errorf("%w: count exceeds ledger length", ErrConflict)
	}
	if count >= 0 {
		entries = entries[int64(len(entries))-count:]
	}

	income, expense := sumEntries(entries)
	return "+ " + validate.FormatMoney(income) + " - " + validate.FormatMoney(expense) + "\n", nil
}

// auditLog dumps the full audit log in append order, one actor-command pair
// per line. An empty log prints a bare newline.
func (e *Engine) auditLog() (string, error) {
	if err := e.require(types.PrivilegeOwner); err != nil {
		return "", err
	}
	entries, err := e.store.LoadAudit()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "\n", nil
	}
	var out strings.Builder
	for _, entry := range entries {
		out.WriteString(entry.Actor)
		out.WriteByte('\t')
		out.WriteString(entry.Command)
		out.WriteByte('\n')
	}
	return out.String(), nil
}

// report handles "report finance" (aggregate income and expense over the
// entire ledger) and "report employee" (per-actor audit-entry counts sorted
// by actor id).
func (e *Engine) report(tokens []string) (string, error) {
	if err := e.require(types.PrivilegeOwner); err != nil {
		return "", err
	}
	if len(tokens) != 2 {
		return "", fmt.Errorf("%w: report takes 1 argument", ErrMalformed)
	}

	switch tokens[1] {
	case "finance":
		entries, err := e.store.LoadLedger()
		if err != nil {
			return "", err
		}
		income, expense := sumEntries(entries)
		return "Total\t+ " + validate.FormatMoney(income) + "\t- " + validate.FormatMoney(expense) + "\n", nil

	case "employee":
		entries, err := e.store.LoadAudit()
		if err != nil {
			return "", err
		}
		if len(entries) == 0 {
			return "\n", nil
		}
		counts := make(map[string]int64, len(entries))
		for _, entry := range entries {
			counts[entry.Actor]++
		}
		actors := make([]string, 0, len(counts))
		for actor := range counts {
			actors = append(actors, actor)
		}
		sort.Strings(actors)
		var out strings.Builder
		for _, actor := range actors {
			out.WriteString(actor)
			out.WriteByte('\t')
			out.WriteString(strconv.FormatInt(counts[actor], 10))
			out.WriteByte('\n')
		}
		return out.String(), nil
	}
	return "", fmt.Errorf("%w: unknown report %q", ErrMalformed, tokens[1])
}
