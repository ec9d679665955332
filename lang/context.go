package lang

import "github.com/corelang/core/internal/diag"

// cell is a symbol table entry. Declaring a name creates its cell; the
// parser sets initialized, the executor writes value (and initialized).
type cell struct {
	value       int32
	initialized bool
}

// Context is the global symbol table shared by the parser and the executor.
// The set of declared names is frozen once parsing completes; the executor
// only ever mutates existing cells.
type Context struct {
	cells map[string]*cell
}

// NewContext returns an empty Context, ready for a fresh parse.
func NewContext() *Context {
	return &Context{cells: make(map[string]*cell)}
}

// Has reports whether name has been declared.
func (c *Context) Has(name string) bool {
	_, ok := c.cells[name]
	return ok
}

// Declare introduces id into the symbol table. It fails with
// IdentifierRedeclaration if the name is already declared.
func (c *Context) Declare(id *Id) error {
	if c.Has(id.Name) {
		return diag.NewAt(id.Tok.Location.Line, id.Tok.Location.Column, id.Tok.Lexeme, diag.IdentifierRedeclaration, id.Name)
	}
	c.cells[id.Name] = &cell{}
	return nil
}

// DeclareList declares every Id in an IdList, in order.
func (c *Context) DeclareList(l *IdList) error {
	for ; l != nil; l = l.Next {
		if err := c.Declare(l.Id); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) fetch(id *Id) (*cell, error) {
	cl, ok := c.cells[id.Name]
	if !ok {
		return nil, diag.NewAt(id.Tok.Location.Line, id.Tok.Location.Column, id.Tok.Lexeme, diag.UndeclaredIdentifier, id.Name)
	}
	return cl, nil
}

// Reference requires that id is declared and has been initialized at least
// once anywhere in the program (the global, non-flow-sensitive check).
func (c *Context) Reference(id *Id) error {
	cl, err := c.fetch(id)
	if err != nil {
		return err
	}
	if !cl.initialized {
		return diag.NewAt(id.Tok.Location.Line, id.Tok.Location.Column, id.Tok.Lexeme, diag.Uninitialized, id.Name)
	}
	return nil
}

// ReferenceList calls Reference on every Id in an IdList.
func (c *Context) ReferenceList(l *IdList) error {
	for ; l != nil; l = l.Next {
		if err := c.Reference(l.Id); err != nil {
			return err
		}
	}
	return nil
}

// Initialize marks id as having been initialized at least once.
func (c *Context) Initialize(id *Id) error {
	cl, err := c.fetch(id)
	if err != nil {
		return err
	}
	cl.initialized = true
	return nil
}

// InitializeList calls Initialize on every Id in an IdList.
func (c *Context) InitializeList(l *IdList) error {
	for ; l != nil; l = l.Next {
		if err := c.Initialize(l.Id); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the current value of id. It fails with Uninitialized if the
// cell has never been set; this is a defensive runtime check complementing
// the parser's static proof.
func (c *Context) Get(id *Id) (int32, error) {
	cl, err := c.fetch(id)
	if err != nil {
		return 0, err
	}
	if !cl.initialized {
		return 0, diag.NewAt(id.Tok.Location.Line, id.Tok.Location.Column, id.Tok.Lexeme, diag.Uninitialized, id.Name)
	}
	return cl.value, nil
}

// Set writes value into id's cell and marks it initialized.
func (c *Context) Set(id *Id, value int32) error {
	cl, err := c.fetch(id)
	if err != nil {
		return err
	}
	cl.value = value
	cl.initialized = true
	return nil
}
