package lang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Prog {
	lex, err := New(strings.NewReader(src))
	require.NoError(t, err)
	prog, err := NewParser(lex, NewContext()).Parse()
	require.NoError(t, err)
	return prog
}

func TestPrint_RoundTripScenario(t *testing.T) {
	src := "program int X, Y; begin X = 13; while (X > 10) loop write X; read X; end; end"
	want := "program \n  int X, Y;\n  begin\n    X = 13;\n    while ( X > 10 ) loop\n      write X;\n      read X;\n    end;\n  end\n"

	prog := mustParse(t, src)
	got := Print(prog)
	assert.Equal(t, want, got)
}

func TestPrint_RoundTrip_ReparsesToEquivalentAST(t *testing.T) {
	src := `program
		int A, B;
		begin
		read A;
		if (A == 1) then
			B = A + 2;
		else
			B = A - 2;
		end;
		write B;
		end`

	first := mustParse(t, src)
	printed := Print(first)
	second := mustParse(t, printed)

	assert.Equal(t, Print(first), Print(second))
}

func TestPrint_IdList_CommaSeparatedOnOneLine(t *testing.T) {
	prog := mustParse(t, "program int A, B, C; begin A = 1; B = 2; C = 3; write A, B, C; end")
	out := Print(prog)
	assert.Contains(t, out, "int A, B, C;")
	assert.Contains(t, out, "write A, B, C;")
}

func TestPrint_NegatedAndCompoundConditions(t *testing.T) {
	prog := mustParse(t, `program
		int X;
		begin
		read X;
		if [(X == 1) and !(X == 2)] then
			X = 1;
		end;
		write X;
		end`)
	out := Print(prog)
	assert.Contains(t, out, "[ ( X == 1 ) and !( X == 2 ) ]")
}
