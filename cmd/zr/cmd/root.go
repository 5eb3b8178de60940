package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "zr",
	Short: "Zirconium front-end tooling",
	Long: `zr parses, renders, and reformats Zirconium (.zr) scripts.

Subcommands:
  parse   parse a script and dump its tree or diagnostics
  render  parse then render a script back to near-source text
  fmt     reformat a script in place or to stdout
  repl    interactively read and parse input`,
}

// Execute runs the root command and returns any error it produced.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "verify span invariants after parsing (parse and repl)")
}
