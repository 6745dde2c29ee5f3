// textscan scans files for literal keywords using an Aho-Corasick
// automaton built from configured keyword dictionaries.
package main

import (
	"fmt"
	"os"

	"github.com/corey/textscan/cmd/textscan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := cmd.ScanExitCode(err); code >= 0 {
			os.Exit(code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
