// Command run parses a CORE source file and executes it, reading "read"
// statements from stdin and writing "write" statements and prompts to
// stdout.
package main

import (
	"flag"
	"fmt"
	"os"

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
	ctx := lang.NewContext()
	prog, err := lang.NewParser(lex, ctx).Parse()
	if err != nil {
		return err
	}
	return lang.NewExecutor(ctx, os.Stdin, os.Stdout).Run(prog)
}
