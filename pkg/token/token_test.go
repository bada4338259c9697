package token

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{Code, "code"},
		{Whitespace, "whitespace"},
		{Newline, "newline"},
		{Comment, "comment"},
		{SingleQuote, "single_quote"},
		{DoubleQuote, "double_quote"},
		{NumericLiteral, "numeric_literal"},
		{Category(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cat.String())
		})
	}
}

func TestCategoryIsCode(t *testing.T) {
	assert.True(t, Code.IsCode())
	assert.True(t, SingleQuote.IsCode())
	assert.True(t, NumericLiteral.IsCode())
	assert.False(t, Whitespace.IsCode())
	assert.False(t, Newline.IsCode())
	assert.False(t, Comment.IsCode())
}

func TestLookupCategory(t *testing.T) {
	c, ok := LookupCategory("double_quote")
	require.True(t, ok)
	assert.Equal(t, DoubleQuote, c)

	_, ok = LookupCategory("no_such_category")
	assert.False(t, ok)
}

func TestRegisterIdempotent(t *testing.T) {
	c1 := Register("test_idempotent")
	c2 := Register("test_idempotent")

	assert.Equal(t, c1, c2, "same name should return same category")
	assert.Greater(t, c1, maxBuiltin)
	assert.Equal(t, "test_idempotent", c1.String())
}

func TestRegisterBuiltinName(t *testing.T) {
	assert.Equal(t, Comment, Register("comment"))
}

func TestRegisterDifferentNames(t *testing.T) {
	c1 := Register("test_name_a")
	c2 := Register("test_name_b")

	assert.NotEqual(t, c1, c2, "different names should return different categories")
}

func TestRegisterConcurrent(t *testing.T) {
	const numGoroutines = 100
	var wg sync.WaitGroup
	cats := make([]Category, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			cats[idx] = Register("test_concurrent")
		}(i)
	}
	wg.Wait()

	for i := 1; i < numGoroutines; i++ {
		require.Equal(t, cats[0], cats[i], "concurrent registration should return same category")
	}

	got, ok := LookupCategory("test_concurrent")
	require.True(t, ok)
	assert.Equal(t, cats[0], got)
	assert.Equal(t, "test_concurrent", cats[0].String())
}

func TestNewLeafCodeFlag(t *testing.T) {
	start := Position{Line: 1, Column: 1, Offset: 0}
	end := Position{Line: 1, Column: 3, Offset: 2}

	ws := NewLeaf("  ", Whitespace, start, end)
	assert.False(t, ws.IsCode())
	assert.Equal(t, 2, ws.Span.Len())

	id := NewLeaf("ab", Code, start, end)
	assert.True(t, id.IsCode())
	assert.Equal(t, "ab", id.Raw())
	assert.Equal(t, start, id.Start())
	assert.Equal(t, end, id.End())
}

func TestSpanContains(t *testing.T) {
	s := Span{Start: Position{Line: 1, Column: 1, Offset: 4}, End: Position{Line: 1, Column: 4, Offset: 7}}
	assert.True(t, s.IsValid())
	assert.True(t, s.Contains(4))
	assert.True(t, s.Contains(6))
	assert.False(t, s.Contains(7))
	assert.False(t, Span{}.IsValid())
}
