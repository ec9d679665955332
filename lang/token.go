package lang

// Kind enumerates every token CORE's lexer can produce. The numbering is
// part of the observable contract: the `tok` driver prints these numbers
// verbatim, so the ordering below must not change.
type Kind int

const (
	Undefined Kind = iota
	RwProgram
	RwBegin
	RwEnd
	RwInt
	RwIf
	RwThen
	RwElse
	RwWhile
	RwLoop
	RwRead
	RwWrite
	RwAnd
	RwOr
	Semicolon
	Comma
	Equal
	ExclamationMark
	LSquareBracket
	RSquareBracket
	LRoundBracket
	RRoundBracket
	Plus
	Minus
	Star
	CompNotEqual
	CompEqual
	CompGreaterThanEqual
	CompLessThanEqual
	CompGreaterThan
	CompLessThan
	Integer
	Identifier
	Eof
)

var names = map[Kind]string{
	Undefined:            "undefined",
	RwProgram:            "program",
	RwBegin:              "begin",
	RwEnd:                "end",
	RwInt:                "int",
	RwIf:                 "if",
	RwThen:               "then",
	RwElse:               "else",
	RwWhile:              "while",
	RwLoop:               "loop",
	RwRead:               "read",
	RwWrite:              "write",
	RwAnd:                "and",
	RwOr:                 "or",
	Semicolon:            ";",
	Comma:                ",",
	Equal:                "=",
	ExclamationMark:      "!",
	LSquareBracket:       "[",
	RSquareBracket:       "]",
	LRoundBracket:        "(",
	RRoundBracket:        ")",
	Plus:                 "+",
	Minus:                "-",
	Star:                 "*",
	CompNotEqual:         "!=",
	CompEqual:            "==",
	CompGreaterThanEqual: ">=",
	CompLessThanEqual:    "<=",
	CompGreaterThan:      ">",
	CompLessThan:         "<",
	Integer:              "integer",
	Identifier:           "identifier",
	Eof:                  "eof",
}

// String renders the kind's canonical lexeme (or name, for non-literal
// kinds), used by diagnostics that need to name an expected kind.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return "unknown"
}

// IsComparator reports whether k is one of the six comparison operators.
func (k Kind) IsComparator() bool {
	return k >= CompNotEqual && k <= CompLessThan
}

// Location is a 1-based line/column position in the source.
type Location struct {
	Line   int
	Column int
}

// Token is a lexical unit: its kind, the exact source text it spans, and
// where it starts. Every kind except Eof and Undefined carries a non-empty
// lexeme matching that kind's lexical rule.
type Token struct {
	Kind     Kind
	Lexeme   string
	Location Location
}

// reservedWords maps a lowercase reserved-word spelling to its Kind.
var reservedWords = map[string]Kind{
	"program": RwProgram,
	"begin":   RwBegin,
	"end":     RwEnd,
	"int":     RwInt,
	"if":      RwIf,
	"then":    RwThen,
	"else":    RwElse,
	"while":   RwWhile,
	"loop":    RwLoop,
	"read":    RwRead,
	"write":   RwWrite,
	"and":     RwAnd,
	"or":      RwOr,
}

// simpleSymbols maps the single-character punctuation bytes to their Kind.
var simpleSymbols = map[byte]Kind{
	';': Semicolon,
	',': Comma,
	'[': LSquareBracket,
	']': RSquareBracket,
	'(': LRoundBracket,
	')': RRoundBracket,
	'+': Plus,
	'-': Minus,
	'*': Star,
}
