// Package validate provides the pure field predicates and the integer and
// money parsers that gate every mutation. Predicates have no side effects
// and consult no state; business rules live in the engine.
package validate

// Field length limits.
const (
	MaxIdentifierLen = 30
	MaxUsernameLen   = 30
	MaxISBNLen       = 20
	MaxBookTextLen   = 60
)

// visibleASCII reports whether c is a printable ASCII character, space
// included.
func visibleASCII(b byte) bool {
	return b >= 32 && b <= 126
}

func identifierByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b == '_':
		return true
	}
	return false
}

// Identifier reports whether s is a valid user id or password: non-empty,
// at most 30 characters, digits, letters and underscore only.
func Identifier(s string) bool {
	if s == "" || len(s) > MaxIdentifierLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !identifierByte(s[i]) {
			return false
		}
	}
	return true
}

// Username reports whether s is a valid account display name: non-empty,
// at most 30 visible-ASCII characters.
func Username(s string) bool {
	if s == "" || len(s) > MaxUsernameLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !visibleASCII(s[i]) {
			return false
		}
	}
	return true
}

// ISBN reports whether s is a valid ISBN: non-empty, at most 20
// visible-ASCII characters.
func ISBN(s string) bool {
	if s == "" || len(s) > MaxISBNLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !visibleASCII(s[i]) {
			return false
		}
	}
	return true
}

// BookText reports whether s is a valid book name or author: at most 60
// visible-ASCII characters with no double quote.
func BookText(s string) bool {
	if len(s) > MaxBookTextLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !visibleASCII(s[i]) || s[i] == '"' {
			return false
		}
	}
	return true
}

// Keyword reports whether s is a valid serialized keyword list: at most 60
// visible-ASCII characters with no double quote. Tag-level rules (non-empty,
// pairwise distinct, no "|" inside a tag) are enforced where the list is
// split.
func Keyword(s string) bool {
	return BookText(s)
}
