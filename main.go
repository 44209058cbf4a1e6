// Command musil is the interactive scripting-language front-end
// described in §6 of the core's interface contract: a thin REPL/loader
// shell around the lisp package. Prompt styling and argument-parsing
// niceties are deliberately out of scope (spec §1) — this is the
// minimal contract, not the editor's front-end.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/CarmineCella/musil/lisp"
)

func main() {
	interactive := flag.Bool("i", false, "keep the REPL alive after evaluating files")
	flag.Parse()

	interp := lisp.New()
	files := flag.Args()

	exitCode := 0
	for _, f := range files {
		if _, err := interp.EvalFile(f); err != nil {
			fmt.Fprintln(os.Stderr, lisp.FormatError(err))
			exitCode = 1
		}
	}

	if len(files) == 0 || *interactive {
		repl(interp)
	}

	os.Exit(exitCode)
}

func repl(interp *lisp.Interp) {
	in := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(">> ")
		line, err := in.ReadString('\n')
		if err == io.EOF {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, lisp.FormatError(err))
			return
		}
		result, err := interp.EvalString(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, lisp.FormatError(err))
			continue
		}
		fmt.Println(lisp.Save(result))
	}
}
