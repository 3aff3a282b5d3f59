package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasKeyword(t *testing.T) {
	b := Book{Keywords: []string{"go", "programming"}}

	assert.True(t, b.HasKeyword("go"))
	assert.True(t, b.HasKeyword("programming"))
	assert.False(t, b.HasKeyword("gopher"))
	assert.False(t, b.HasKeyword(""))

	empty := Book{}
	assert.False(t, empty.HasKeyword("go"))
}

func TestKeywordString(t *testing.T) {
	assert.Equal(t, "go|programming", (&Book{Keywords: []string{"go", "programming"}}).KeywordString())
	assert.Equal(t, "solo", (&Book{Keywords: []string{"solo"}}).KeywordString())
	assert.Equal(t, "", (&Book{}).KeywordString())
}

func TestSplitKeywords(t *testing.T) {
	assert.Equal(t, []string{"go", "programming"}, SplitKeywords("go|programming"))
	assert.Equal(t, []string{"solo"}, SplitKeywords("solo"))
	assert.Nil(t, SplitKeywords(""))
	assert.Equal(t, []string{"a", "", "b"}, SplitKeywords("a||b"), "empty tags are preserved for the caller to reject")
}
