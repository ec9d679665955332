// Command print parses a CORE source file and pretty-prints it back out.
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
	prog, err := lang.NewParser(lex, lang.NewContext()).Parse()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, lang.Print(prog))
	return err
}
