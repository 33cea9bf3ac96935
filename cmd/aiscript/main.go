// Command aiscript is a CLI front end for the AiScript interpreter: run a
// script file or inline expression, or drop into a REPL.
package main

import (
	"fmt"
	"os"

	"github.com/aiscript-dev/aiscript-go/cmd/aiscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
