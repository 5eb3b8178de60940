package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	zr "github.com/zircon-lang/zr"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Reformat a script, in place with -w or to stdout otherwise",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "overwrite the file instead of printing to stdout")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := sourceArg(args)
	src, err := readSource(path)
	if err != nil {
		return err
	}

	root, errs := zr.Parse(src, zr.ParserOptions{})
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(cmd.ErrOrStderr(), zr.WrapErrorWithName(e, path, src))
		}
		return fmt.Errorf("refusing to format %s: %d diagnostic(s)", path, len(errs))
	}

	out := zr.Render(root)
	if fmtWrite {
		if path == "" || path == "-" {
			return fmt.Errorf("-w requires a file argument")
		}
		return os.WriteFile(path, []byte(out+"\n"), 0644)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
