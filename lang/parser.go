package lang

import (
	"strconv"

	"github.com/corelang/core/internal/diag"
)

// Parser is a recursive-descent, single-token-lookahead parser over a
// Lexer's token stream. It builds the AST and, at the same time, threads a
// Context (the global declared/initialized symbol table) and a flow (the
// per-statement-sequence definitely-initialized set) through every
// production that declares, assigns or references an identifier.
//
// Every production below has a parseX method; the ones whose presence or
// alternative is chosen by lookahead (decl, stmt, cond, comp, id, fac) also
// have a canParseX predicate that looks only at the current token, matching
// the grammar's LL(1) shape.
type Parser struct {
	lex *Lexer
	ctx *Context
	tok Token
}

// NewParser returns a Parser reading from lex and recording declarations
// into ctx. ctx is normally fresh; callers that want to inspect the symbol
// table after a successful parse can hold onto it.
func NewParser(lex *Lexer, ctx *Context) *Parser {
	return &Parser{lex: lex, ctx: ctx}
}

// Parse consumes the entire token stream and returns the program's root
// node. It fails with ExpectedEof if any token remains after the program.
func (p *Parser) Parse() (*Prog, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	prog, err := p.parseProg()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != Eof {
		return nil, diag.NewAt(p.tok.Location.Line, p.tok.Location.Column, p.tok.Lexeme, diag.ExpectedEof, p.tok.Lexeme)
	}
	return prog, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// must requires the current token to have kind k, raising an error built
// from diagKind/args against the current token if not, then advances past
// it. It is the Go stand-in for the original parser's ConsumeIf.
func (p *Parser) must(k Kind, diagKind diag.Kind, args ...interface{}) (Token, error) {
	if p.tok.Kind != k {
		return Token{}, diag.NewAt(p.tok.Location.Line, p.tok.Location.Column, p.tok.Lexeme, diagKind, args...)
	}
	tok := p.tok
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// tryConsume advances past the current token and returns true if it has
// kind k, otherwise leaves the parser positioned where it was.
func (p *Parser) tryConsume(k Kind) (bool, error) {
	if p.tok.Kind != k {
		return false, nil
	}
	if err := p.advance(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Parser) parseProg() (*Prog, error) {
	tok := p.tok
	if _, err := p.must(RwProgram, diag.MissingReservedWord, "program"); err != nil {
		return nil, err
	}
	decls, err := p.parseDeclSeq()
	if err != nil {
		return nil, err
	}
	if _, err := p.must(RwBegin, diag.MissingReservedWordAfter, "begin", "declaration sequence"); err != nil {
		return nil, err
	}
	stmts, err := p.parseStmtSeq(newFlow())
	if err != nil {
		return nil, err
	}
	if _, err := p.must(RwEnd, diag.MissingReservedWordAfter, "end", "statement sequence"); err != nil {
		return nil, err
	}
	return &Prog{Tok: tok, Decls: decls, Stmts: stmts}, nil
}

func (p *Parser) canParseDecl() bool {
	return p.tok.Kind == RwInt
}

func (p *Parser) parseDeclSeq() (*DeclSeq, error) {
	tok := p.tok
	decl, err := p.parseDecl()
	if err != nil {
		return nil, err
	}
	var next *DeclSeq
	if p.canParseDecl() {
		next, err = p.parseDeclSeq()
		if err != nil {
			return nil, err
		}
	}
	return &DeclSeq{Tok: tok, Decl: decl, Next: next}, nil
}

func (p *Parser) parseDecl() (*Decl, error) {
	tok := p.tok
	if _, err := p.must(RwInt, diag.MissingReservedWordAtStartOf, "int", "declaration"); err != nil {
		return nil, err
	}
	ids, err := p.parseIdList()
	if err != nil {
		return nil, err
	}
	if err := p.ctx.DeclareList(ids); err != nil {
		return nil, err
	}
	if _, err := p.must(Semicolon, diag.MissingTokenAfterIn, ";", "identifier list", "decleration"); err != nil {
		return nil, err
	}
	return &Decl{Tok: tok, Ids: ids}, nil
}

func (p *Parser) parseIdList() (*IdList, error) {
	tok := p.tok
	id, err := p.parseId()
	if err != nil {
		return nil, err
	}
	var next *IdList
	hasComma, err := p.tryConsume(Comma)
	if err != nil {
		return nil, err
	}
	if hasComma {
		next, err = p.parseIdList()
		if err != nil {
			return nil, err
		}
	}
	return &IdList{Tok: tok, Id: id, Next: next}, nil
}

func (p *Parser) parseId() (*Id, error) {
	tok := p.tok
	name := tok.Lexeme
	if _, err := p.must(Identifier, diag.MissingFound, "identifier", name); err != nil {
		return nil, err
	}
	return &Id{Tok: tok, Name: name}, nil
}

func (p *Parser) canParseStmt() bool {
	switch p.tok.Kind {
	case Identifier, RwIf, RwWhile, RwRead, RwWrite:
		return true
	default:
		return false
	}
}

func (p *Parser) parseStmtSeq(f *flow) (*StmtSeq, error) {
	tok := p.tok
	stmt, err := p.parseStmt(f)
	if err != nil {
		return nil, err
	}
	var next *StmtSeq
	if p.canParseStmt() {
		next, err = p.parseStmtSeq(f)
		if err != nil {
			return nil, err
		}
	}
	return &StmtSeq{Tok: tok, Stmt: stmt, Next: next}, nil
}

func (p *Parser) parseStmt(f *flow) (*Stmt, error) {
	tok := p.tok
	switch {
	case p.tok.Kind == Identifier:
		assign, err := p.parseAssign(f)
		if err != nil {
			return nil, err
		}
		return &Stmt{Tok: tok, Kind: StmtAssign, Assign: assign}, nil
	case p.tok.Kind == RwIf:
		ifNode, err := p.parseIf(f)
		if err != nil {
			return nil, err
		}
		return &Stmt{Tok: tok, Kind: StmtIf, If: ifNode}, nil
	case p.tok.Kind == RwWhile:
		loop, err := p.parseLoop(f)
		if err != nil {
			return nil, err
		}
		return &Stmt{Tok: tok, Kind: StmtLoop, Loop: loop}, nil
	case p.tok.Kind == RwRead:
		in, err := p.parseIn(f)
		if err != nil {
			return nil, err
		}
		return &Stmt{Tok: tok, Kind: StmtIn, In: in}, nil
	case p.tok.Kind == RwWrite:
		out, err := p.parseOut(f)
		if err != nil {
			return nil, err
		}
		return &Stmt{Tok: tok, Kind: StmtOut, Out: out}, nil
	default:
		return nil, diag.NewAt(tok.Location.Line, tok.Location.Column, tok.Lexeme, diag.MissingFound, "statement", tok.Lexeme)
	}
}

func (p *Parser) parseAssign(f *flow) (*Assign, error) {
	tok := p.tok
	id, err := p.parseId()
	if err != nil {
		return nil, err
	}
	if _, err := p.must(Equal, diag.MissingTokenAfterIn, "=", "identifier", "assign-statement"); err != nil {
		return nil, err
	}
	exp, err := p.parseExp(f)
	if err != nil {
		return nil, err
	}
	if _, err := p.must(Semicolon, diag.MissingTokenAfterIn, ";", "expression", "assign-statement"); err != nil {
		return nil, err
	}
	if err := p.ctx.Initialize(id); err != nil {
		return nil, err
	}
	f.addId(id)
	return &Assign{Tok: tok, Id: id, Exp: exp}, nil
}

func (p *Parser) parseIf(f *flow) (*If, error) {
	tok := p.tok
	if _, err := p.must(RwIf, diag.MissingReservedWordAtStartOf, "if", "if-statement"); err != nil {
		return nil, err
	}
	cond, err := p.parseCond(f)
	if err != nil {
		return nil, err
	}
	if _, err := p.must(RwThen, diag.MissingReservedWordAfterIn, "then", "conditional", "if-statement"); err != nil {
		return nil, err
	}
	thenFlow := f.fork()
	thenSeq, err := p.parseStmtSeq(thenFlow)
	if err != nil {
		return nil, err
	}

	ctxWord := "if-statement"
	var elseSeq *StmtSeq
	hasElse, err := p.tryConsume(RwElse)
	if err != nil {
		return nil, err
	}
	if hasElse {
		ctxWord = "if-else-statement"
		elseFlow := f.fork()
		elseSeq, err = p.parseStmtSeq(elseFlow)
		if err != nil {
			return nil, err
		}
		f.addSet(thenFlow.intersect(elseFlow))
	}

	if _, err := p.must(RwEnd, diag.MissingTokenAfterIn, "end", "statement sequence", ctxWord); err != nil {
		return nil, err
	}
	if _, err := p.must(Semicolon, diag.MissingTokenAfterIn, ";", "end", ctxWord); err != nil {
		return nil, err
	}
	return &If{Tok: tok, Cond: cond, Then: thenSeq, Else: elseSeq}, nil
}

func (p *Parser) parseLoop(f *flow) (*Loop, error) {
	tok := p.tok
	if _, err := p.must(RwWhile, diag.MissingReservedWordAtStartOf, "while", "while-statement"); err != nil {
		return nil, err
	}
	cond, err := p.parseCond(f)
	if err != nil {
		return nil, err
	}
	if _, err := p.must(RwLoop, diag.MissingReservedWordAfterIn, "loop", "conditional", "while-statement"); err != nil {
		return nil, err
	}
	// The body's flow is forked, not shared: nothing a while-loop body
	// initializes can be relied on after the loop, since the body may run
	// zero times.
	bodyFlow := f.fork()
	body, err := p.parseStmtSeq(bodyFlow)
	if err != nil {
		return nil, err
	}
	if _, err := p.must(RwEnd, diag.MissingTokenAfterIn, "end", "statement sequence", "while-statement"); err != nil {
		return nil, err
	}
	if _, err := p.must(Semicolon, diag.MissingTokenAfterIn, ";", "end", "while-statement"); err != nil {
		return nil, err
	}
	return &Loop{Tok: tok, Cond: cond, Body: body}, nil
}

func (p *Parser) parseIn(f *flow) (*In, error) {
	tok := p.tok
	if _, err := p.must(RwRead, diag.MissingReservedWordAtStartOf, "read", "read-statement"); err != nil {
		return nil, err
	}
	ids, err := p.parseIdList()
	if err != nil {
		return nil, err
	}
	if err := p.ctx.InitializeList(ids); err != nil {
		return nil, err
	}
	f.addList(ids)
	if _, err := p.must(Semicolon, diag.MissingTokenAfterIn, ";", "identifier", "read-statement"); err != nil {
		return nil, err
	}
	return &In{Tok: tok, Ids: ids}, nil
}

func (p *Parser) parseOut(f *flow) (*Out, error) {
	tok := p.tok
	if _, err := p.must(RwWrite, diag.MissingReservedWordAtStartOf, "write", "out-statement"); err != nil {
		return nil, err
	}
	ids, err := p.parseIdList()
	if err != nil {
		return nil, err
	}
	if err := p.ctx.ReferenceList(ids); err != nil {
		return nil, err
	}
	if err := f.assertInitializedList(ids); err != nil {
		return nil, err
	}
	if _, err := p.must(Semicolon, diag.MissingTokenAfterIn, ";", "identifier", "write-statement"); err != nil {
		return nil, err
	}
	return &Out{Tok: tok, Ids: ids}, nil
}

func (p *Parser) canParseComp() bool {
	return p.tok.Kind == LRoundBracket
}

func (p *Parser) canParseCond() bool {
	return p.canParseComp() || p.tok.Kind == ExclamationMark || p.tok.Kind == LSquareBracket
}

func (p *Parser) parseCond(f *flow) (*Cond, error) {
	tok := p.tok
	switch {
	case p.canParseComp():
		comp, err := p.parseComp(f)
		if err != nil {
			return nil, err
		}
		return &Cond{Tok: tok, Kind: CondComparison, Comp: comp}, nil
	case p.tok.Kind == ExclamationMark:
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		rhs, err := p.parseCond(f)
		if err != nil {
			return nil, err
		}
		return &Cond{Tok: tok, Kind: CondNot, RHS: rhs}, nil
	case p.tok.Kind == LSquareBracket:
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		lhs, err := p.parseCond(f)
		if err != nil {
			return nil, err
		}
		var kind CondKind
		hasAnd, err := p.tryConsume(RwAnd)
		if err != nil {
			return nil, err
		}
		if hasAnd {
			kind = CondAnd
		} else {
			if _, err := p.must(RwOr, diag.UnexpectedConditionalType, p.tok.Lexeme); err != nil {
				return nil, err
			}
			kind = CondOr
		}
		rhs, err := p.parseCond(f)
		if err != nil {
			return nil, err
		}
		if _, err := p.must(RSquareBracket, diag.MissingTokenAfterIn, "]", "conditional", "if-statement"); err != nil {
			return nil, err
		}
		return &Cond{Tok: tok, Kind: kind, LHS: lhs, RHS: rhs}, nil
	default:
		return nil, diag.NewAt(tok.Location.Line, tok.Location.Column, tok.Lexeme, diag.MissingFound, "condition", tok.Lexeme)
	}
}

// advanceTok consumes the current token unconditionally, returning it. Used
// where the grammar has already committed to a branch by peeking the token.
func (p *Parser) advanceTok() (Token, error) {
	tok := p.tok
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

func (p *Parser) parseComp(f *flow) (*Comp, error) {
	tok := p.tok
	if _, err := p.must(LRoundBracket, diag.MissingTokenAtStartOf, "(", "comparison"); err != nil {
		return nil, err
	}
	lhs, err := p.parseFac(f)
	if err != nil {
		return nil, err
	}
	var op Kind
	if p.tok.Kind.IsComparator() {
		op = p.tok.Kind
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
	} else {
		return nil, diag.NewAt(p.tok.Location.Line, p.tok.Location.Column, p.tok.Lexeme, diag.UnexpectedComparisonType, p.tok.Lexeme)
	}
	rhs, err := p.parseFac(f)
	if err != nil {
		return nil, err
	}
	if _, err := p.must(RRoundBracket, diag.MissingTokenAtEndOf, ")", "comparison"); err != nil {
		return nil, err
	}
	return &Comp{Tok: tok, LHS: lhs, Op: op, RHS: rhs}, nil
}

func (p *Parser) canParseId() bool {
	return p.tok.Kind == Identifier
}

func (p *Parser) canParseFac() bool {
	return p.tok.Kind == Integer || p.canParseId() || p.tok.Kind == LRoundBracket
}

func (p *Parser) parseFac(f *flow) (*Fac, error) {
	tok := p.tok
	switch {
	case p.canParseId():
		id, err := p.parseId()
		if err != nil {
			return nil, err
		}
		if err := p.ctx.Reference(id); err != nil {
			return nil, err
		}
		if err := f.assertInitialized(id); err != nil {
			return nil, err
		}
		return &Fac{Tok: tok, Kind: FacIdentifier, Id: id}, nil
	case p.tok.Kind == LRoundBracket:
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		exp, err := p.parseExp(f)
		if err != nil {
			return nil, err
		}
		if _, err := p.must(RRoundBracket, diag.MissingTokenAtEndOfIn, ")", "expression", "factor"); err != nil {
			return nil, err
		}
		return &Fac{Tok: tok, Kind: FacParenthesized, Paren: exp}, nil
	default:
		text := p.tok.Lexeme
		if _, err := p.must(Integer, diag.UnexpectedFactorType, text); err != nil {
			return nil, err
		}
		val, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, diag.NewAt(tok.Location.Line, tok.Location.Column, text, diag.UnexpectedFactorType, text)
		}
		return &Fac{Tok: tok, Kind: FacInteger, Int: int32(val)}, nil
	}
}

func (p *Parser) parseExp(f *flow) (*Exp, error) {
	tok := p.tok
	term, err := p.parseTerm(f)
	if err != nil {
		return nil, err
	}
	op := ExpNone
	var next *Exp
	hasPlus, err := p.tryConsume(Plus)
	if err != nil {
		return nil, err
	}
	if hasPlus {
		op = ExpAdd
		next, err = p.parseExp(f)
		if err != nil {
			return nil, err
		}
	} else {
		hasMinus, err := p.tryConsume(Minus)
		if err != nil {
			return nil, err
		}
		if hasMinus {
			op = ExpSub
			next, err = p.parseExp(f)
			if err != nil {
				return nil, err
			}
		}
	}
	return &Exp{Tok: tok, Term: term, Op: op, Next: next}, nil
}

func (p *Parser) parseTerm(f *flow) (*Term, error) {
	tok := p.tok
	fac, err := p.parseFac(f)
	if err != nil {
		return nil, err
	}
	var next *Term
	hasStar, err := p.tryConsume(Star)
	if err != nil {
		return nil, err
	}
	if hasStar {
		next, err = p.parseTerm(f)
		if err != nil {
			return nil, err
		}
	}
	return &Term{Tok: tok, Fac: fac, Next: next}, nil
}
