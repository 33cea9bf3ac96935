package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	aierrors "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/interpreter"
	"github.com/aiscript-dev/aiscript-go/internal/value"
	"github.com/aiscript-dev/aiscript-go/internal/vm"
)

var (
	evalExpr string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an AiScript file or expression",
	Long: `Execute an AiScript program from a file or inline expression.

Examples:
  # Run a script file
  aiscript run script.is

  # Evaluate an inline expression
  aiscript run -e "print(1 + 1)"

  # Run with an AST dump (for debugging)
  aiscript run --dump-ast script.is`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case evalExpr != "":
		input = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	program, err := interpreter.Parse(input)
	if err != nil {
		printAiScriptError(err, input, filename)
		return fmt.Errorf("parsing failed")
	}

	if dumpAST {
		dump, err := dumpASTJSON(program, filename)
		if err != nil {
			return fmt.Errorf("failed to dump AST: %w", err)
		}
		fmt.Println(dump)
	}

	host := interpreter.Host{
		Out: func(v value.Value) {
			fmt.Println(vm.Display(v))
		},
	}

	if _, err := interpreter.Run(program, host); err != nil {
		printAiScriptError(err, input, filename)
		return fmt.Errorf("execution failed")
	}

	return nil
}

// printAiScriptError renders an AiScriptError with the offending source
// line and a caret, falling back to a plain message for any other error.
func printAiScriptError(err error, source, filename string) {
	if ase, ok := err.(aierrors.AiScriptError); ok {
		withSource := aierrors.WithSource(ase, source, filename)
		if f, ok := withSource.(interface{ Format(bool) string }); ok {
			fmt.Fprintln(os.Stderr, f.Format(true))
			return
		}
		fmt.Fprintln(os.Stderr, withSource.Error())
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}

// dumpASTJSON wraps program's marshaled AST under a {"file", "program"}
// envelope via sjson, reports the top-level item count via gjson, and
// pretty-prints the result.
func dumpASTJSON(program any, filename string) (string, error) {
	astJSON, err := json.Marshal(program)
	if err != nil {
		return "", err
	}
	envelope, err := sjson.SetRawBytes([]byte(`{}`), "program", astJSON)
	if err != nil {
		return "", err
	}
	envelope, err = sjson.SetBytes(envelope, "file", filename)
	if err != nil {
		return "", err
	}
	count := gjson.GetBytes(envelope, "program.Items.#")
	header := fmt.Sprintf("AST (%s top-level items):\n", count.Raw)
	return header + string(pretty.Pretty(envelope)), nil
}
