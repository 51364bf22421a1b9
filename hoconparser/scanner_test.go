package hoconparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, input string) []TokenType {
	t.Helper()
	s := NewScanner("test", input)
	var out []TokenType
	for {
		tt := s.NextToken()
		if tt == EOFToken {
			return out
		}
		out = append(out, tt)
	}
}

func TestScannerPunctuation(t *testing.T) {
	got := scanAll(t, "{}[]():=,+=.")
	want := []TokenType{
		LeftCurlyToken, RightCurlyToken,
		LeftSquareToken, RightSquareToken,
		LeftParenToken, RightParenToken,
		ColonToken, EqualsToken, CommaToken, PlusEqualsToken, DotToken,
	}
	assert.Equal(t, want, got)
}

func TestScannerKeywords(t *testing.T) {
	got := scanAll(t, "true false null include required url file package")
	want := []TokenType{
		BoolToken, WhitespaceToken, BoolToken, WhitespaceToken, NullToken, WhitespaceToken,
		IncludeToken, WhitespaceToken, RequiredToken, WhitespaceToken, UrlToken, WhitespaceToken,
		FileToken, WhitespaceToken, PackageToken,
	}
	assert.Equal(t, want, got)
}

func TestScannerQuotedString(t *testing.T) {
	s := NewScanner("test", `"hello \"world\""`)
	tt := s.NextToken()
	require.Equal(t, QuotedStringToken, tt)
	assert.Equal(t, `hello "world"`, unquoteBody(s.Token()))
}

func TestScannerTripleQuotedStringKeepsEmbeddedQuotes(t *testing.T) {
	s := NewScanner("test", `"""say "hi" now"""`)
	tt := s.NextToken()
	require.Equal(t, TripleQuotedStringToken, tt)
	assert.Equal(t, `say "hi" now`, tripleBody(s.Token()))
}

func TestScannerSubstitution(t *testing.T) {
	s := NewScanner("test", "${a.b.c}")
	require.Equal(t, SubstitutionToken, s.NextToken())

	s = NewScanner("test", "${?a.b}")
	require.Equal(t, OptionalSubstitutionToken, s.NextToken())
}

func TestScannerNumberVsDuration(t *testing.T) {
	s := NewScanner("test", "128")
	require.Equal(t, NumberToken, s.NextToken())

	s = NewScanner("test", "128ms")
	require.Equal(t, DurationToken, s.NextToken())

	s = NewScanner("test", "10 seconds")
	require.Equal(t, DurationToken, s.NextToken())
}

func TestScannerUnquotedStringStopsAtForbiddenChar(t *testing.T) {
	s := NewScanner("test", "foo:bar")
	require.Equal(t, UnquotedStringToken, s.NextToken())
	assert.Equal(t, "foo", s.Token())
	require.Equal(t, ColonToken, s.NextToken())
	require.Equal(t, UnquotedStringToken, s.NextToken())
	assert.Equal(t, "bar", s.Token())
}

func TestScannerLineComments(t *testing.T) {
	got := scanAll(t, "# a comment\n// another\nfoo")
	require.Len(t, got, 5)
	assert.Equal(t, CommentToken, got[0])
	assert.Equal(t, NewLineToken, got[1])
	assert.Equal(t, CommentToken, got[2])
	assert.Equal(t, NewLineToken, got[3])
}
