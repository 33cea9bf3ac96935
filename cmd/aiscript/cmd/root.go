package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "aiscript",
	Short: "AiScript interpreter",
	Long: `aiscript is an interpreter for AiScript, the small
expression-oriented scripting language used by Misskey. Scripts are
translated to a register-based IR and run on a virtual machine.

Run a script file, evaluate an inline expression, or start a REPL.`,
	Version: Version,
}

// Execute runs the root command, returning any error a subcommand produced.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("aiscript version {{.Version}}\ncommit: %s\nbuilt: %s\n", GitCommit, BuildDate))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
