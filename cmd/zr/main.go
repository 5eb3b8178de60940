// Command zr parses, renders, and reformats Zirconium scripts.
package main

import (
	"fmt"
	"os"

	"github.com/zircon-lang/zr/cmd/zr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
