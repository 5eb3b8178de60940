package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	zr "github.com/zircon-lang/zr"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a script and print its tree, or its diagnostics on failure",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := sourceArg(args)
	src, err := readSource(path)
	if err != nil {
		return err
	}

	root, errs := zr.Parse(src, zr.ParserOptions{})

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		if verr := zr.VerifyTree(root); verr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "zr: span invariant violated: %v\n", verr)
		}
	}

	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(cmd.ErrOrStderr(), zr.WrapErrorWithName(e, path, src))
		}
		return fmt.Errorf("%d diagnostic(s)", len(errs))
	}

	fmt.Fprint(cmd.OutOrStdout(), zr.PrettyPrint([]zr.Node{root}, ""))
	return nil
}
