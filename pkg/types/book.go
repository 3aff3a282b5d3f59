package types

import "strings"

// KeywordSeparator joins keyword tags in serialized form and in command
// arguments. Individual tags must never contain it.
const KeywordSeparator = "|"

// Book is one row of the book catalog. Keywords is an ordered list of
// pairwise-distinct tags; the order given at modify time is preserved.
type Book struct {
	ISBN       string
	Name       string
	Author     string
	Keywords   []string
	PriceCents int64
	Stock      int64
}

// HasKeyword reports whether tag exactly matches one of the book's keywords.
func (b *Book) HasKeyword(tag string) bool {
	for _, k := range b.Keywords {
		if k == tag {
			return true
		}
	}
	return false
}

// KeywordString returns the serialized keyword list, tags joined by "|".
func (b *Book) KeywordString() string {
	return strings.Join(b.Keywords, KeywordSeparator)
}

// SplitKeywords splits a serialized keyword list into tags. The empty string
// yields nil rather than a single empty tag.
func SplitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, KeywordSeparator)
}
