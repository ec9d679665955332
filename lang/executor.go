package lang

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/corelang/core/internal/diag"
)

// Executor walks a parsed program and runs it against a Context that has
// already been through a successful Parse: every identifier referenced here
// is guaranteed declared, so the only runtime failures left are checked
// arithmetic and malformed read input.
type Executor struct {
	ctx *Context
	in  *bufio.Reader
	out io.Writer
}

// NewExecutor returns an Executor that reads "read" input from in and
// writes "write" output and prompts to out.
func NewExecutor(ctx *Context, in io.Reader, out io.Writer) *Executor {
	return &Executor{ctx: ctx, in: bufio.NewReader(in), out: out}
}

// Run executes prog's statement sequence from the top.
func (e *Executor) Run(prog *Prog) error {
	return e.execStmtSeq(prog.Stmts)
}

func (e *Executor) execStmtSeq(seq *StmtSeq) error {
	for ; seq != nil; seq = seq.Next {
		if err := e.execStmt(seq.Stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) execStmt(s *Stmt) error {
	switch s.Kind {
	case StmtAssign:
		return e.execAssign(s.Assign)
	case StmtIf:
		return e.execIf(s.If)
	case StmtLoop:
		return e.execLoop(s.Loop)
	case StmtIn:
		return e.execIn(s.In)
	case StmtOut:
		return e.execOut(s.Out)
	default:
		return nil
	}
}

func (e *Executor) execAssign(a *Assign) error {
	val, err := e.evalExp(a.Exp)
	if err != nil {
		return err
	}
	return e.ctx.Set(a.Id, val)
}

func (e *Executor) execIf(n *If) error {
	cond, err := e.evalCond(n.Cond)
	if err != nil {
		return err
	}
	if cond {
		return e.execStmtSeq(n.Then)
	}
	if n.Else != nil {
		return e.execStmtSeq(n.Else)
	}
	return nil
}

func (e *Executor) execLoop(n *Loop) error {
	for {
		cond, err := e.evalCond(n.Cond)
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
		if err := e.execStmtSeq(n.Body); err != nil {
			return err
		}
	}
}

func (e *Executor) execIn(n *In) error {
	for l := n.Ids; l != nil; l = l.Next {
		id := l.Id
		if _, err := fmt.Fprintf(e.out, "%s =? ", id.Name); err != nil {
			return err
		}
		line, readErr := e.in.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return readErr
		}
		text := strings.TrimSpace(line)
		val, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return diag.NewAt(id.Tok.Location.Line, id.Tok.Location.Column, id.Tok.Lexeme, diag.InvalidIntegerInput)
		}
		if err := e.ctx.Set(id, int32(val)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) execOut(n *Out) error {
	for l := n.Ids; l != nil; l = l.Next {
		val, err := e.ctx.Get(l.Id)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(e.out, "%s = %d\n", l.Id.Name, val); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) evalCond(c *Cond) (bool, error) {
	switch c.Kind {
	case CondComparison:
		return e.evalComp(c.Comp)
	case CondNot:
		v, err := e.evalCond(c.RHS)
		return !v, err
	case CondAnd:
		l, err := e.evalCond(c.LHS)
		if err != nil {
			return false, err
		}
		r, err := e.evalCond(c.RHS)
		if err != nil {
			return false, err
		}
		return l && r, nil
	case CondOr:
		l, err := e.evalCond(c.LHS)
		if err != nil {
			return false, err
		}
		r, err := e.evalCond(c.RHS)
		if err != nil {
			return false, err
		}
		return l || r, nil
	default:
		return false, nil
	}
}

func (e *Executor) evalComp(c *Comp) (bool, error) {
	lhs, err := e.evalFac(c.LHS)
	if err != nil {
		return false, err
	}
	rhs, err := e.evalFac(c.RHS)
	if err != nil {
		return false, err
	}
	switch c.Op {
	case CompEqual:
		return lhs == rhs, nil
	case CompNotEqual:
		return lhs != rhs, nil
	case CompGreaterThan:
		return lhs > rhs, nil
	case CompLessThan:
		return lhs < rhs, nil
	case CompGreaterThanEqual:
		return lhs >= rhs, nil
	case CompLessThanEqual:
		return lhs <= rhs, nil
	default:
		return false, nil
	}
}

func (e *Executor) evalFac(f *Fac) (int32, error) {
	switch f.Kind {
	case FacInteger:
		return f.Int, nil
	case FacIdentifier:
		return e.ctx.Get(f.Id)
	case FacParenthesized:
		return e.evalExp(f.Paren)
	default:
		return 0, nil
	}
}

func (e *Executor) evalExp(exp *Exp) (int32, error) {
	left, err := e.evalTerm(exp.Term)
	if err != nil {
		return 0, err
	}
	if exp.Op == ExpNone {
		return left, nil
	}
	right, err := e.evalExp(exp.Next)
	if err != nil {
		return 0, err
	}
	switch exp.Op {
	case ExpAdd:
		return checkedAdd(exp.Tok, left, right)
	case ExpSub:
		return checkedSub(exp.Tok, left, right)
	default:
		return left, nil
	}
}

func (e *Executor) evalTerm(term *Term) (int32, error) {
	left, err := e.evalFac(term.Fac)
	if err != nil {
		return 0, err
	}
	if term.Next == nil {
		return left, nil
	}
	right, err := e.evalTerm(term.Next)
	if err != nil {
		return 0, err
	}
	// Multiplying by zero can never overflow; short-circuit before the
	// checked multiply so a zero operand never trips a spurious bound.
	if left == 0 || right == 0 {
		return 0, nil
	}
	return checkedMul(term.Tok, left, right)
}

func checkedAdd(tok Token, a, b int32) (int32, error) {
	sum := int64(a) + int64(b)
	if sum > math.MaxInt32 {
		return 0, diag.NewAt(tok.Location.Line, tok.Location.Column, tok.Lexeme, diag.ArithmeticOverflow, "addition")
	}
	if sum < math.MinInt32 {
		return 0, diag.NewAt(tok.Location.Line, tok.Location.Column, tok.Lexeme, diag.ArithmeticUnderflow, "addition")
	}
	return int32(sum), nil
}

func checkedSub(tok Token, a, b int32) (int32, error) {
	diff := int64(a) - int64(b)
	if diff > math.MaxInt32 {
		return 0, diag.NewAt(tok.Location.Line, tok.Location.Column, tok.Lexeme, diag.ArithmeticOverflow, "subtraction")
	}
	if diff < math.MinInt32 {
		return 0, diag.NewAt(tok.Location.Line, tok.Location.Column, tok.Lexeme, diag.ArithmeticUnderflow, "subtraction")
	}
	return int32(diff), nil
}

func checkedMul(tok Token, a, b int32) (int32, error) {
	product := int64(a) * int64(b)
	if product > math.MaxInt32 {
		return 0, diag.NewAt(tok.Location.Line, tok.Location.Column, tok.Lexeme, diag.ArithmeticOverflow, "multiplication")
	}
	if product < math.MinInt32 {
		return 0, diag.NewAt(tok.Location.Line, tok.Location.Column, tok.Lexeme, diag.ArithmeticUnderflow, "multiplication")
	}
	return int32(product), nil
}
