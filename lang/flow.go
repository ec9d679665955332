package lang

import "github.com/corelang/core/internal/diag"

// flow tracks the set of identifiers definitely initialized along every
// path that reaches the current point of a statement sequence. A fresh flow
// is created for the program body and for each branch body of if/else/while;
// nested bodies are seeded by copying the parent's set, per spec: passing
// the flow context down as an explicit parameter rather than stashing it on
// AST nodes.
type flow struct {
	names map[string]bool
}

// newFlow returns an empty flow, used for the program's root statement
// sequence.
func newFlow() *flow {
	return &flow{names: make(map[string]bool)}
}

// fork returns a new flow seeded with a copy of f's current names, used when
// entering an if/else/while branch body.
func (f *flow) fork() *flow {
	copied := make(map[string]bool, len(f.names))
	for name := range f.names {
		copied[name] = true
	}
	return &flow{names: copied}
}

// add marks name as definitely initialized in this flow.
func (f *flow) add(name string) {
	f.names[name] = true
}

// addId is a convenience wrapper for add(id.Name).
func (f *flow) addId(id *Id) {
	f.add(id.Name)
}

// addList marks every Id in an IdList as definitely initialized.
func (f *flow) addList(l *IdList) {
	for ; l != nil; l = l.Next {
		f.addId(l.Id)
	}
}

// addSet merges every name in names into f, used to transfer the
// then/else intersection back into the parent flow.
func (f *flow) addSet(names map[string]bool) {
	for name := range names {
		f.names[name] = true
	}
}

// assertInitialized requires that id is definitely initialized in this
// flow. It fails with UninitializedFlow (distinct from Context.Reference's
// Uninitialized) when not every path has initialized it.
func (f *flow) assertInitialized(id *Id) error {
	if !f.names[id.Name] {
		return diag.NewAt(id.Tok.Location.Line, id.Tok.Location.Column, id.Tok.Lexeme, diag.UninitializedFlow, id.Name)
	}
	return nil
}

// assertInitializedList calls assertInitialized on every Id in an IdList.
func (f *flow) assertInitializedList(l *IdList) error {
	for ; l != nil; l = l.Next {
		if err := f.assertInitialized(l.Id); err != nil {
			return err
		}
	}
	return nil
}

// intersect returns the set of names present in both f and other, used to
// compute what an if/else merge contributes to the parent flow: a name is
// only carried forward if every branch initializes it.
func (f *flow) intersect(other *flow) map[string]bool {
	result := make(map[string]bool)
	for name := range f.names {
		if other.names[name] {
			result[name] = true
		}
	}
	return result
}
