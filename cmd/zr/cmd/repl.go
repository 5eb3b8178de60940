package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	zr "github.com/zircon-lang/zr"
)

const (
	replHistoryFile = ".zr_history"
	replPromptMain  = "zr> "
	replPromptCont  = "... "
	replBanner      = "zr REPL — Ctrl+C cancels the current input, Ctrl+D exits."
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read and parse input interactively",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), replBanner)
	debug, _ := cmd.Flags().GetBool("debug")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, replHistoryFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		src, ok := readByParseProbe(ln)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout())
			break
		}
		if strings.TrimSpace(src) == "" {
			continue
		}

		root, errs := zr.Parse(src, zr.ParserOptions{})
		if debug {
			if verr := zr.VerifyTree(root); verr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "zr: span invariant violated: %v\n", verr)
			}
		}
		for _, e := range errs {
			fmt.Fprintln(cmd.OutOrStdout(), zr.WrapErrorWithSource(e, src))
		}
		if len(errs) == 0 {
			fmt.Fprint(cmd.OutOrStdout(), zr.PrettyPrint([]zr.Node{root}, ""))
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

// readByParseProbe accumulates lines until ParseInteractive reports the
// buffer is no longer an incomplete prefix, returning the accumulated
// source. The second result is false only on Ctrl+D/EOF with an empty
// buffer.
func readByParseProbe(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := replPromptMain
		if b.Len() > 0 {
			prompt = replPromptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			if b.Len() == 0 {
				return "", false
			}
			return b.String(), true
		}
		if err != nil {
			// Ctrl+C: discard the buffer and let the caller start fresh.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, errs, incomplete := zr.ParseInteractive(src, zr.ParserOptions{})
		if incomplete && len(errs) > 0 {
			continue
		}
		return src, true
	}
}
