package hoconparser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, text string) *ConfigTree {
	t.Helper()
	tree, err := ParseDocument(text, FileRef("test.conf"), Options{})
	require.NoError(t, err)
	return tree
}

// soleLiteral asserts v is a single-token Deferred run holding a literal and
// returns that literal, mirroring how every concat_run is represented before
// the hocon package's resolver runs.
func soleLiteral(t *testing.T, v Value) Value {
	t.Helper()
	require.True(t, v.IsDeferred())
	require.Len(t, v.Deferred.Tokens, 1)
	tok := v.Deferred.Tokens[0]
	require.False(t, tok.IsSubstitution())
	return tok.Literal
}

func TestParseSimpleAssignment(t *testing.T) {
	tree := parse(t, `a = 1`)
	v, ok := tree.Get("a")
	require.True(t, ok)
	lit := soleLiteral(t, v)
	require.Equal(t, KindInt, lit.Kind)
	require.Equal(t, int64(1), lit.Int)
}

func TestParseDottedKeyExpandsToNestedObject(t *testing.T) {
	tree := parse(t, `a.b.c = 1`)
	a, ok := tree.Get("a")
	require.True(t, ok)
	require.Equal(t, KindTree, a.Kind)
	b, ok := a.Tree.Get("b")
	require.True(t, ok)
	c, ok := b.Tree.Get("c")
	require.True(t, ok)
	require.Equal(t, int64(1), soleLiteral(t, c).Int)
}

func TestParseObjectMergeAcrossDuplicateKeys(t *testing.T) {
	tree := parse(t, `
		a { x = 1 }
		a { y = 2 }
	`)
	a, ok := tree.Get("a")
	require.True(t, ok)
	x, ok := a.Tree.Get("x")
	require.True(t, ok)
	require.Equal(t, int64(1), soleLiteral(t, x).Int)
	y, ok := a.Tree.Get("y")
	require.True(t, ok)
	require.Equal(t, int64(2), soleLiteral(t, y).Int)
}

func TestParseLaterScalarOverridesEarlierObject(t *testing.T) {
	tree := parse(t, `
		a { x = 1 }
		a = 2
	`)
	a, ok := tree.Get("a")
	require.True(t, ok)
	require.Equal(t, int64(2), soleLiteral(t, a).Int)
}

func TestParseNoBraceRootObject(t *testing.T) {
	tree := parse(t, "a = 1\nb = 2\n")
	_, ok := tree.Get("a")
	require.True(t, ok)
	_, ok = tree.Get("b")
	require.True(t, ok)
}

func TestParseListLiteral(t *testing.T) {
	tree := parse(t, `a = [1, 2, 3]`)
	a, ok := tree.Get("a")
	require.True(t, ok)
	lit := soleLiteral(t, a)
	require.Equal(t, KindList, lit.Kind)
	require.Len(t, lit.List, 3)
}

func TestParsePlusEqualsDesugarsToSelfReferencingConcat(t *testing.T) {
	tree := parse(t, `
		a = [1]
		a += 2
	`)
	a, ok := tree.Get("a")
	require.True(t, ok)
	require.True(t, a.IsDeferred())
	require.True(t, a.Deferred.Tokens[0].IsSubstitution())
	require.Equal(t, []string{"a"}, a.Deferred.Tokens[0].Substitution.Path)
	require.True(t, a.Deferred.Tokens[0].Substitution.Optional)
}

func TestParseQuotedKeyWithDots(t *testing.T) {
	tree := parse(t, `"a.b" = 1`)
	v, ok := tree.Get("a.b")
	require.True(t, ok)
	require.Equal(t, int64(1), soleLiteral(t, v).Int)
}

func TestParseSubstitutionProducesDeferredValue(t *testing.T) {
	tree := parse(t, `
		a = 1
		b = ${a}
	`)
	b, ok := tree.Get("b")
	require.True(t, ok)
	require.True(t, b.IsDeferred())
	require.True(t, b.Deferred.Tokens[0].IsSubstitution())
}

func TestParseTripleQuotedStringIsLiteral(t *testing.T) {
	tree := parse(t, "a = \"\"\"line with \" quote\"\"\"")
	a, ok := tree.Get("a")
	require.True(t, ok)
	lit := soleLiteral(t, a)
	require.Equal(t, `line with " quote`, lit.Str)
}

func TestParseSyntaxErrorIsReported(t *testing.T) {
	_, err := ParseDocument(`a = {`, FileRef("bad.conf"), Options{})
	require.Error(t, err)
}
