package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/aiscript-dev/aiscript-go/internal/interpreter"
	"github.com/aiscript-dev/aiscript-go/internal/value"
	"github.com/aiscript-dev/aiscript-go/internal/vm"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive AiScript session",
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	rl, err := readline.New("aiscript> ")
	if err != nil {
		return fmt.Errorf("failed to start REPL: %w", err)
	}
	defer rl.Close()

	host := interpreter.Host{
		Out: func(v value.Value) {
			fmt.Println(vm.Display(v))
		},
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		result, err := interpreter.RunSource(line, host)
		if err != nil {
			printAiScriptError(err, line, "<repl>")
			continue
		}
		if result.Kind() != value.KindNull {
			fmt.Println(vm.Display(result))
		}
	}
}
