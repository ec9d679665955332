package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	testData := []struct {
		err      *Error
		expected string
	}{
		{
			err:      New(IdentifierRedeclaration, "X"),
			expected: "Redeclaration of identifier: 'X'.",
		},
		{
			err:      New(UndeclaredIdentifier, "Y"),
			expected: "Missing decleration for identifier: 'Y'.",
		},
		{
			err:      New(UninitializedFlow, "Y"),
			expected: "Not all paths of the program initialize 'Y' before it is used here. This may be a false-positive but can be indicative of a design flaw in your program.",
		},
		{
			err:      New(ArithmeticOverflow, "addition"),
			expected: "Performing addition here will cause overflow and unexpected behavior.",
		},
		{
			err:      New(ArithmeticUnderflow, "subtraction"),
			expected: "Performing subtraction here will cause underflow and unexpected behavior.",
		},
		{
			err:      New(ExpectedEof, "X"),
			expected: "Token found after end of program: 'X'. Expected to reach end-of-file after parsing a program.",
		},
	}
	for _, data := range testData {
		assert.Equal(t, data.expected, data.err.Error())
	}
}

func TestNewAt_carriesLocation(t *testing.T) {
	err := NewAt(3, 7, "Y", UndeclaredIdentifier, "Y")
	assert.True(t, err.HasLoc)
	assert.Equal(t, 3, err.Loc.Line)
	assert.Equal(t, 7, err.Loc.Column)
	assert.Equal(t, "Y", err.Lexeme)
}
