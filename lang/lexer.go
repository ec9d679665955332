package lang

import (
	"fmt"
	"io"

	"github.com/corelang/core/internal/diag"
	"github.com/corelang/core/internal/util"
)

// maxIdentifierLength and maxIntegerLength bound the CORE lexical rules: "may
// not exceed 8" is treated as an inclusive upper bound (Open Question in the
// spec, resolved here).
const (
	maxIdentifierLength = 8
	maxIntegerLength    = 8
)

// Lexer scans a CORE source byte stream into tokens on demand. The zero
// value is not usable; construct one with New.
type Lexer struct {
	src    []byte
	pos    int
	line   int
	column int
	eof    bool
	cur    Token
}

// New constructs a Lexer over the full contents of r. Reading the source
// eagerly keeps column/line bookkeeping as simple single-pass arithmetic,
// matching the byte-at-a-time scan the original tokenizer performs.
func New(r io.Reader) (*Lexer, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Lexer{
		src:    src,
		line:   1,
		column: 1,
		cur:    Token{Kind: Undefined, Location: Location{Line: 1, Column: 1}},
	}, nil
}

// Current returns the most recently produced token. Before the first call to
// Next, this is the undefined sentinel.
func (l *Lexer) Current() Token {
	return l.cur
}

// AtEof reports whether the lexer has already produced the eof token.
func (l *Lexer) AtEof() bool {
	return l.eof
}

// Next scans and returns the next token, advancing the lexer. Calling Next
// again after it has already produced eof is a precondition violation.
func (l *Lexer) Next() (Token, error) {
	if l.eof {
		panic("core: Next called after eof")
	}
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		l.eof = true
		l.cur = Token{Kind: Eof, Location: Location{Line: l.line, Column: l.column}}
		return l.cur, nil
	}

	startLine, startColumn := l.line, l.column
	b := l.src[l.pos]

	var tok Token
	var err error
	switch {
	case util.IsUpper(b):
		tok, err = l.scanIdentifier()
	case util.IsLower(b):
		tok, err = l.scanReservedWord()
	case util.IsDigit(b):
		tok, err = l.scanInteger()
	default:
		if kind, ok := simpleSymbols[b]; ok {
			tok = Token{Kind: kind, Lexeme: string(b)}
			l.advance(1)
		} else if kind, twoChar, ok := l.scanTwoCharOperator(b); ok {
			lexeme := string(b)
			if twoChar {
				lexeme += "="
				l.advance(2)
			} else {
				l.advance(1)
			}
			tok = Token{Kind: kind, Lexeme: lexeme}
		} else {
			err = diag.NewAt(l.line, l.column, string(b), diag.UnknownToken, string(b))
		}
	}
	if err != nil {
		return Token{}, err
	}
	tok.Location = Location{Line: startLine, Column: startColumn}
	l.cur = tok
	return tok, nil
}

// scanTwoCharOperator handles the four operators that are greedily extended
// to a two-character comparator when followed by '='.
func (l *Lexer) scanTwoCharOperator(b byte) (Kind, bool, bool) {
	var single, double Kind
	switch b {
	case '=':
		single, double = Equal, CompEqual
	case '!':
		single, double = ExclamationMark, CompNotEqual
	case '>':
		single, double = CompGreaterThan, CompGreaterThanEqual
	case '<':
		single, double = CompLessThan, CompLessThanEqual
	default:
		return 0, false, false
	}
	if l.peek(1) == '=' {
		return double, true, true
	}
	return single, false, true
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

// advance steps the lexer n bytes forward, adjusting the column. Callers
// must not call advance across a newline; whitespace handling owns that.
func (l *Lexer) advance(n int) {
	l.pos += n
	l.column += n
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && util.IsSpace(l.src[l.pos]) {
		if l.src[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos++
	}
}

// scanIdentifier consumes [A-Z]+[0-9]*, then continues over any further
// alphanumeric bytes solely to capture the full offending lexeme for the
// error message, mirroring the original tokenizer's NextIdentifier.
func (l *Lexer) scanIdentifier() (Token, error) {
	start := l.pos
	l.pos++
	sawLower := false
	sawNonDigitAfterDigit := false
	sawDigit := false
	for l.pos < len(l.src) && util.IsAlphaNumeric(l.src[l.pos]) {
		c := l.src[l.pos]
		if util.IsDigit(c) {
			sawDigit = true
		} else {
			if util.IsLower(c) {
				sawLower = true
			}
			if sawDigit {
				sawNonDigitAfterDigit = true
			}
		}
		l.pos++
	}
	lexeme := string(l.src[start:l.pos])
	length := l.pos - start

	if sawLower || sawNonDigitAfterDigit {
		var reason string
		switch {
		case sawLower && sawNonDigitAfterDigit:
			reason = "May not contain lowercase characters. May not contain non-digit characters once a digit sequence has started."
		case sawLower:
			reason = "May not contain lowercase characters."
		default:
			reason = "May not contain non-digit characters once a digit sequence has started."
		}
		err := diag.NewAt(l.line, l.column, lexeme, diag.IllegalIdentifier, lexeme, reason)
		l.column += length
		return Token{}, err
	}
	if length > maxIdentifierLength {
		reason := fmt.Sprintf("Has a length of %d. The length of an identifier may not exceed %d.", length, maxIdentifierLength)
		err := diag.NewAt(l.line, l.column, lexeme, diag.IllegalIdentifier, lexeme, reason)
		l.column += length
		return Token{}, err
	}
	l.column += length
	return Token{Kind: Identifier, Lexeme: lexeme}, nil
}

// scanReservedWord consumes the maximal alphanumeric run and requires it be
// an exact, all-lowercase match for one of the thirteen reserved words.
func (l *Lexer) scanReservedWord() (Token, error) {
	start := l.pos
	l.pos++
	invalid := false
	for l.pos < len(l.src) && util.IsAlphaNumeric(l.src[l.pos]) {
		if !util.IsLower(l.src[l.pos]) {
			invalid = true
		}
		l.pos++
	}
	lexeme := string(l.src[start:l.pos])
	length := l.pos - start
	kind, ok := reservedWords[lexeme]
	if invalid || !ok {
		err := diag.NewAt(l.line, l.column, lexeme, diag.IllegalToken, lexeme)
		l.column += length
		return Token{}, err
	}
	l.column += length
	return Token{Kind: kind, Lexeme: lexeme}, nil
}

// scanInteger consumes 0 | [1-9][0-9]*, again scanning the maximal
// alphanumeric run first to report the complete offending lexeme.
func (l *Lexer) scanInteger() (Token, error) {
	start := l.pos
	l.pos++
	invalid := false
	for l.pos < len(l.src) && util.IsAlphaNumeric(l.src[l.pos]) {
		if !util.IsDigit(l.src[l.pos]) {
			invalid = true
		}
		l.pos++
	}
	lexeme := string(l.src[start:l.pos])
	length := l.pos - start

	if invalid {
		err := diag.NewAt(l.line, l.column, lexeme, diag.IllegalInteger, lexeme, "May not contain non-digit characters.")
		l.column += length
		return Token{}, err
	}
	if length > 1 && lexeme[0] == '0' {
		err := diag.NewAt(l.line, l.column, lexeme, diag.IllegalInteger, lexeme, "May not contain leading zeros.")
		l.column += length
		return Token{}, err
	}
	if length > maxIntegerLength {
		reason := fmt.Sprintf("Has a length of %d. The length of an integer may not exceed %d.", length, maxIntegerLength)
		err := diag.NewAt(l.line, l.column, lexeme, diag.IllegalInteger, lexeme, reason)
		l.column += length
		return Token{}, err
	}
	l.column += length
	return Token{Kind: Integer, Lexeme: lexeme}, nil
}
