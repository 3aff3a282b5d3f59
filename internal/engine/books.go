package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pagecroft/bookstore/internal/validate"
	"github.com/pagecroft/bookstore/pkg/types"
)

// Filter and modify flag names.
const (
	flagISBN    = "-ISBN"
	flagName    = "-name"
	flagAuthor  = "-author"
	flagKeyword = "-keyword"
	flagPrice   = "-price"
)

// findBook returns the index of the book with the given ISBN, or -1.
func findBook(books []types.Book, isbn string) int {
	for i := range books {
		if books[i].ISBN == isbn {
			return i
		}
	}
	return -1
}

// splitFlag parses one "-key=value" token. The tokenizer has already
// stripped any quotes around the value.
func splitFlag(arg string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(arg, "=")
	return key, value, ok
}

// showBooks lists books matching at most one filter, sorted ascending by
// ISBN. An empty result prints a bare newline.
func (e *Engine) showBooks(tokens []string) (string, error) {
	if err := e.require(types.PrivilegeCustomer); err != nil {
		return "", err
	}
	if len(tokens) > 2 {
		return "", fmt.Errorf("%w: show takes at most one filter", ErrMalformed)
	}

	var field, value string
	if len(tokens) == 2 {
		var ok bool
		field, value, ok = splitFlag(tokens[1])
		if !ok || value == "" {
			return "", fmt.Errorf("%w: show filter", ErrMalformed)
		}
		switch field {
		case flagISBN, flagName, flagAuthor:
		case flagKeyword:
			if strings.Contains(value, types.KeywordSeparator) {
				return "", fmt.Errorf("%w: keyword filter takes a single tag", ErrMalformed)
			}
		default:
			return "", fmt.Errorf("%w: unknown filter %q", ErrMalformed, field)
		}
	}

	books, err := e.store.LoadBooks()
	if err != nil {
		return "", err
	}

	var matched []types.Book
	for i := range books {
		b := books[i]
		ok := true
		switch field {
		case flagISBN:
			ok = b.ISBN == value
		case flagName:
			ok = b.Name == value
		case flagAuthor:
			ok = b.Author == value
		case flagKeyword:
			ok = b.HasKeyword(value)
		}
		if ok {
			matched = append(matched, b)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ISBN < matched[j].ISBN })

	if len(matched) == 0 {
		return "\n", nil
	}
	var out strings.Builder
	for _, b := range matched {
		out.WriteString(b.ISBN)
		out.WriteByte('\t')
		out.WriteString(b.Name)
		out.WriteByte('\t')
		out.WriteString(b.Author)
		out.WriteByte('\t')
		out.WriteString(b.KeywordString())
		out.WriteByte('\t')
		out.WriteString(validate.FormatMoney(b.PriceCents))
		out.WriteByte('\t')
		out.WriteString(strconv.FormatInt(b.Stock, 10))
		out.WriteByte('\n')
	}
	return out.String(), nil
}

// buy decrements stock, appends a BUY ledger entry of price times quantity
// and prints the total.
func (e *Engine) buy(tokens []string) (string, error) {
	if err := e.require(types.PrivilegeCustomer); err != nil {
		return "", err
	}
	if len(tokens) != 3 {
		return "", fmt.Errorf("%w: buy takes 2 arguments", ErrMalformed)
	}
	isbn := tokens[1]
	if !validate.ISBN(isbn) {
		return "", fmt.Errorf("%w: isbn", ErrValidation)
	}
	qty, ok := validate.ParseInt(tokens[2])
	if !ok || qty <= 0 {
		return "", fmt.Errorf("%w: quantity", ErrValidation)
	}

	books, err := e.store.LoadBooks()
	if err != nil {
		return "", err
	}
	i := findBook(books, isbn)
	if i < 0 {
		return "", fmt.Errorf("%w: unknown isbn %q", ErrConflict, isbn)
	}
	if books[i].Stock < qty {
		return "", fmt.Errorf("%w: insufficient stock", ErrConflict)
	}

	books[i].Stock -= qty
	total := books[i].PriceCents * qty
	if err := e.store.ReplaceBooks(books); err != nil {
		return "", err
	}
	if err := e.appendLedger(types.EntryBuy, total); err != nil {
		return "", err
	}
	return validate.FormatMoney(total) + "\n", nil
}

// selectBook sets the current frame's selection, creating a bare catalog
// record when the ISBN has never been seen.
func (e *Engine) selectBook(tokens []string) error {
	if err := e.require(types.PrivilegeStaff); err != nil {
		return err
	}
	if len(tokens) != 2 {
		return fmt.Errorf("%w: select takes 1 argument", ErrMalformed)
	}
	isbn := tokens[1]
	if !validate.ISBN(isbn) {
		return fmt.Errorf("%w: isbn", ErrValidation)
	}

	books, err := e.store.LoadBooks()
	if err != nil {
		return err
	}
	if findBook(books, isbn) < 0 {
		books = append(books, types.Book{ISBN: isbn})
		if err := e.store.ReplaceBooks(books); err != nil {
			return err
		}
	}

	e.sessions.SetSelected(isbn)
	return nil
}

// modifyEdits holds the parsed field edits of one modify command.
type modifyEdits map[string]string

// parseModifyFlags parses one or more "-key=value" edits. Duplicate keys,
// unknown keys and empty values are malformed.
func parseModifyFlags(tokens []string) (modifyEdits, error) {
	if len(tokens) < 2 {
		return nil, fmt.Errorf("%w: modify takes at least one edit", ErrMalformed)
	}
	edits := make(modifyEdits, len(tokens)-1)
	for _, arg := range tokens[1:] {
		key, value, ok := splitFlag(arg)
		if !ok {
			return nil, fmt.Errorf("%w: modify edit %q", ErrMalformed, arg)
		}
		switch key {
		case flagISBN, flagName, flagAuthor, flagKeyword, flagPrice:
		default:
			return nil, fmt.Errorf("%w: unknown edit %q", ErrMalformed, key)
		}
		if _, dup := edits[key]; dup {
			return nil, fmt.Errorf("%w: duplicate edit %q", ErrMalformed, key)
		}
		if value == "" {
			return nil, fmt.Errorf("%w: empty value for %q", ErrMalformed, key)
		}
		edits[key] = value
	}
	return edits, nil
}

// modify applies one or more field edits atomically to the selected book.
// On an ISBN change the current frame's selection follows the renamed
// record.
func (e *Engine) modify(tokens []string) error {
	if err := e.require(types.PrivilegeStaff); err != nil {
		return err
	}
	selected := e.sessions.Selected()
	if selected == "" {
		return fmt.Errorf("%w: no book selected", ErrConflict)
	}
	edits, err := parseModifyFlags(tokens)
	if err != nil {
		return err
	}

	books, err := e.store.LoadBooks()
	if err != nil {
		return err
	}
	i := findBook(books, selected)
	if i < 0 {
		return fmt.Errorf("%w: selected book missing", ErrConflict)
	}
	b := books[i]

	if v, ok := edits[flagISBN]; ok {
		if !validate.ISBN(v) {
			return fmt.Errorf("%w: isbn", ErrValidation)
		}
		if v == b.ISBN {
			return fmt.Errorf("%w: isbn unchanged", ErrConflict)
		}
		if findBook(books, v) >= 0 {
			return fmt.Errorf("%w: isbn %q exists", ErrConflict, v)
		}
		b.ISBN = v
	}
	if v, ok := edits[flagName]; ok {
		if !validate.BookText(v) {
			return fmt.Errorf("%w: name", ErrValidation)
		}
		b.Name = v
	}
	if v, ok := edits[flagAuthor]; ok {
		if !validate.BookText(v) {
			return fmt.Errorf("%w: author", ErrValidation)
		}
		b.Author = v
	}
	if v, ok := edits[flagKeyword]; ok {
		if !validate.Keyword(v) {
			return fmt.Errorf("%w: keyword", ErrValidation)
		}
		tags := types.SplitKeywords(v)
		seen := make(map[string]bool, len(tags))
		for _, tag := range tags {
			if tag == "" || seen[tag] {
				return fmt.Errorf("%w: keyword tags must be non-empty and distinct", ErrConflict)
			}
			seen[tag] = true
		}
		b.Keywords = tags
	}
	if v, ok := edits[flagPrice]; ok {
		cents, ok := validate.ParseMoney(v)
		if !ok {
			return fmt.Errorf("%w: price", ErrValidation)
		}
		b.PriceCents = cents
	}

	books[i] = b
	if err := e.store.ReplaceBooks(books); err != nil {
		return err
	}
	if _, ok := edits[flagISBN]; ok {
		e.sessions.SetSelected(b.ISBN)
	}
	return nil
}

// importStock increments the selected book's stock and appends an IMPORT
// ledger entry for the total cost. The cost does not change the book's
// price.
func (e *Engine) importStock(tokens []string) error {
	if err := e.require(types.PrivilegeStaff); err != nil {
		return err
	}
	selected := e.sessions.Selected()
	if selected == "" {
		return fmt.Errorf("%w: no book selected", ErrConflict)
	}
	if len(tokens) != 3 {
		return fmt.Errorf("%w: import takes 2 arguments", ErrMalformed)
	}
	qty, ok := validate.ParseInt(tokens[1])
	if !ok || qty <= 0 {
		return fmt.Errorf("%w: quantity", ErrValidation)
	}
	cost, ok := validate.ParseMoney(tokens[2])
	if !ok || cost <= 0 {
		return fmt.Errorf("%w: total cost", ErrValidation)
	}

	books, err := e.store.LoadBooks()
	if err != nil {
		return err
	}
	i := findBook(books, selected)
	if i < 0 {
		return fmt.Errorf("%w: selected book missing", ErrConflict)
	}

	books[i].Stock += qty
	if err := e.store.ReplaceBooks(books); err != nil {
		return err
	}
	return e.appendLedger(types.EntryImport, cost)
}

// appendLedger appends one monetary event with a fresh time-ordered id.
func (e *Engine) appendLedger(entryType string, amountCents int64) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("ledger entry id: %w", err)
	}
	return e.store.AppendLedger(types.LedgerEntry{
		ID:          id.String(),
		Type:        entryType,
		AmountCents: amountCents,
	})
}
