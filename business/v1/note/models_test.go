package note

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayTitle(t *testing.T) {
	short := Note{Title: "Groceries"}
	assert.Equal(t, "Groceries", short.DisplayTitle())

	exact := Note{Title: strings.Repeat("a", 32)}
	assert.Equal(t, exact.Title, exact.DisplayTitle())

	long := Note{Title: strings.Repeat("ab", 32)}
	assert.Equal(t, strings.Repeat("ab", 16), long.DisplayTitle())
	assert.Len(t, long.DisplayTitle(), 32)

	// Truncation counts characters, not bytes.
	unicode := Note{Title: strings.Repeat("ü", 40)}
	assert.Equal(t, strings.Repeat("ü", 32), unicode.DisplayTitle())
}

func TestNoteEquality(t *testing.T) {
	a := Note{ID: "n1", Title: "t", Text: "x", UserID: "u1"}
	b := Note{ID: "n1", Title: "t", Text: "x", UserID: "u1"}
	assert.True(t, a == b)

	b.Text = "y"
	assert.False(t, a == b)
}
