// Package driver formats a diag.Error for terminal output. Every CLI entry
// point shares this so the tok, print and run commands report errors
// in the same shape the original tools did: a stage-specific prefix plus the
// diagnostic's own message, nothing more.
package driver

import (
	"errors"
	"fmt"

	"github.com/corelang/core/internal/diag"
)

// Decorate renders err the way the CLI drivers print it to stderr. A
// *diag.Error is prefixed per its Source (Tokenizer/Parser/Runtime Error,
// with a location and offending token where one was recorded); any other
// error (e.g. a file I/O failure) is printed as-is.
func Decorate(err error) string {
	var d *diag.Error
	if !errors.As(err, &d) {
		return err.Error()
	}
	switch d.Source() {
	case diag.Lexical:
		if d.HasLoc {
			return fmt.Sprintf("Tokenizer Error [Line %d:%d]. %s", d.Loc.Line, d.Loc.Column, d.Error())
		}
		return fmt.Sprintf("Tokenizer Error. %s", d.Error())
	case diag.Syntax:
		if d.HasLoc {
			return fmt.Sprintf("Parser Error [Line %d:%d] at token: \"%s\". %s", d.Loc.Line, d.Loc.Column, d.Lexeme, d.Error())
		}
		return fmt.Sprintf("Parser Error. %s", d.Error())
	case diag.Runtime:
		if d.HasLoc {
			return fmt.Sprintf("Runtime Error [Line %d:%d] at token: \"%s\". %s", d.Loc.Line, d.Loc.Column, d.Lexeme, d.Error())
		}
		return fmt.Sprintf("Runtime Error: %s", d.Error())
	default:
		return d.Error()
	}
}
