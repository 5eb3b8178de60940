package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	zr "github.com/zircon-lang/zr"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Parse a script and render it back to near-source text",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	path := sourceArg(args)
	src, err := readSource(path)
	if err != nil {
		return err
	}

	root, errs := zr.Parse(src, zr.ParserOptions{})
	for _, e := range errs {
		fmt.Fprintln(cmd.ErrOrStderr(), zr.WrapErrorWithName(e, path, src))
	}

	fmt.Fprintln(cmd.OutOrStdout(), zr.Render(root))
	if len(errs) > 0 {
		return fmt.Errorf("%d diagnostic(s)", len(errs))
	}
	return nil
}
