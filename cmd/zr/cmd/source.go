package cmd

import (
	"io"
	"os"
)

// readSource reads path's contents, or stdin when path is "" or "-".
func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func sourceArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
