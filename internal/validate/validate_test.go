package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "root", true},
		{"digits and underscore", "user_01", true},
		{"max length", strings.Repeat("a", 30), true},
		{"too long", strings.Repeat("a", 31), false},
		{"empty", "", false},
		{"space", "user id", false},
		{"punctuation", "user-id", false},
		{"non ascii", "usér", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identifier(tt.input))
		})
	}
}

func TestUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "Alice", true},
		{"with space", "Alice Smith", true},
		{"punctuation allowed", "O'Brien-Jones!", true},
		{"max length", strings.Repeat("x", 30), true},
		{"too long", strings.Repeat("x", 31), false},
		{"empty", "", false},
		{"control char", "a\tb", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Username(tt.input))
		})
	}
}

func TestISBN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"digits", "9780134190440", true},
		{"dashes", "978-0-13-419044-0", true},
		{"max length", strings.Repeat("9", 20), true},
		{"too long", strings.Repeat("9", 21), false},
		{"empty", "", false},
		{"newline", "978\n0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ISBN(tt.input))
		})
	}
}

func TestBookText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain", "The Go Programming Language", true},
		{"empty allowed", "", true},
		{"max length", strings.Repeat("b", 60), true},
		{"too long", strings.Repeat("b", 61), false},
		{"double quote", `say "hi"`, false},
		{"tab", "a\tb", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BookText(tt.input))
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
		ok    bool
	}{
		{"zero", "0", 0, true},
		{"positive", "42", 42, true},
		{"negative", "-7", -7, true},
		{"leading zeros", "007", 7, true},
		{"leading plus", "+3", 0, false},
		{"empty", "", 0, false},
		{"bare minus", "-", 0, false},
		{"trailing junk", "12x", 0, false},
		{"decimal", "1.5", 0, false},
		{"whitespace", " 1", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInt(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
