package lang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corelang/core/internal/diag"
)

func allTokens(t *testing.T, src string) ([]Token, error) {
	lex, err := New(strings.NewReader(src))
	assert.NoError(t, err)
	var toks []Token
	for !lex.AtEof() {
		tok, err := lex.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexer_ScenarioOne_TokenNumbers(t *testing.T) {
	src := "program\n\n  int X, Y, Z;\nbegin\n read X, Y, Z;\n write X, Y, Z;\nend"
	toks, err := allTokens(t, src)
	assert.NoError(t, err)
	want := []Kind{
		RwProgram, RwInt, Identifier, Comma, Identifier, Comma, Identifier, Semicolon,
		RwBegin, RwRead, Identifier, Comma, Identifier, Comma, Identifier, Semicolon,
		RwWrite, Identifier, Comma, Identifier, Comma, Identifier, Semicolon,
		RwEnd, Eof,
	}
	assert.Equal(t, want, kinds(toks))

	wantNumbers := []int{1, 4, 32, 15, 32, 15, 32, 14, 2, 10, 32, 15, 32, 15, 32, 14, 11, 32, 15, 32, 15, 32, 14, 3, 33}
	gotNumbers := make([]int, len(toks))
	for i, tok := range toks {
		gotNumbers[i] = int(tok.Kind)
	}
	assert.Equal(t, wantNumbers, gotNumbers)
}

func TestLexer_TripleEquals_SplitsGreedily(t *testing.T) {
	toks, err := allTokens(t, "===")
	assert.NoError(t, err)
	assert.Equal(t, []Kind{CompEqual, Equal, Eof}, kinds(toks))
}

func TestLexer_TwoCharOperators(t *testing.T) {
	toks, err := allTokens(t, "!= <= >= < > = !")
	assert.NoError(t, err)
	assert.Equal(t, []Kind{
		CompNotEqual, CompLessThanEqual, CompGreaterThanEqual,
		CompLessThan, CompGreaterThan, Equal, ExclamationMark, Eof,
	}, kinds(toks))
}

func TestLexer_Identifier_LengthBoundary(t *testing.T) {
	_, err := allTokens(t, "ABCDEFGH") // length 8, accepted
	assert.NoError(t, err)

	_, err = allTokens(t, "ABCDEFGHI") // length 9, rejected
	assert.Error(t, err)
	derr, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.IllegalIdentifier, derr.Kind)
}

func TestLexer_Identifier_RejectsLowercase(t *testing.T) {
	_, err := allTokens(t, "Ax")
	assert.Error(t, err)
	derr, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.IllegalIdentifier, derr.Kind)
}

func TestLexer_Identifier_RejectsLetterAfterDigit(t *testing.T) {
	_, err := allTokens(t, "A1B")
	assert.Error(t, err)
	derr, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.IllegalIdentifier, derr.Kind)
}

func TestLexer_Integer_LengthBoundary(t *testing.T) {
	_, err := allTokens(t, "99999999") // length 8, accepted
	assert.NoError(t, err)

	_, err = allTokens(t, "999999999") // length 9, rejected
	assert.Error(t, err)
	derr, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.IllegalInteger, derr.Kind)
}

func TestLexer_Integer_RejectsLeadingZero(t *testing.T) {
	_, err := allTokens(t, "0")
	assert.NoError(t, err)

	_, err = allTokens(t, "01")
	assert.Error(t, err)
	derr, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.IllegalInteger, derr.Kind)
}

func TestLexer_ReservedWord_RejectsUnknownLowercaseWord(t *testing.T) {
	_, err := allTokens(t, "foo")
	assert.Error(t, err)
	derr, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.IllegalToken, derr.Kind)
}

func TestLexer_UnknownByte(t *testing.T) {
	_, err := allTokens(t, "@")
	assert.Error(t, err)
	derr, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.UnknownToken, derr.Kind)
}

func TestLexer_LineAndColumnTracking(t *testing.T) {
	lex, err := New(strings.NewReader("int\nX"))
	assert.NoError(t, err)
	tok, err := lex.Next()
	assert.NoError(t, err)
	assert.Equal(t, Location{Line: 1, Column: 1}, tok.Location)

	tok, err = lex.Next()
	assert.NoError(t, err)
	assert.Equal(t, Location{Line: 2, Column: 1}, tok.Location)
}

func TestLexer_NextAfterEof_Panics(t *testing.T) {
	lex, err := New(strings.NewReader(""))
	assert.NoError(t, err)
	_, err = lex.Next()
	assert.NoError(t, err)
	assert.True(t, lex.AtEof())
	assert.Panics(t, func() {
		_, _ = lex.Next()
	})
}
