// Command tok dumps the numeric kind of every token in a CORE source file,
// one per line, ending with the eof kind.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/corelang/core/internal/driver"
	"github.com/corelang/core/lang"
)

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Please specify a file name.")
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, driver.Decorate(err))
		os.Exit(1)
	}
}

func run(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	lex, err := lang.New(f)
	if err != nil {
		return err
	}

	// Numbers are buffered and only written out once the whole file has
	// tokenized cleanly, so a lexical error never leaves a partial dump on
	// stdout.
	var out strings.Builder
	for !lex.AtEof() {
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		fmt.Fprintln(&out, int(tok.Kind))
	}
	_, err = fmt.Fprint(os.Stdout, out.String())
	return err
}
