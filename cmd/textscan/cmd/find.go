package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/textscan/kmp"
)

var findCmd = &cobra.Command{
	Use:   "find <pattern> [paths...]",
	Short: "Find a single literal pattern",
	Long: "Single-pattern search using a prefix-function (KMP) matcher.\n" +
		"Reports path:line:column for every occurrence, overlapping included.",
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func runFind(cmd *cobra.Command, args []string) error {
	pattern := args[0]
	if pattern == "" {
		return fmt.Errorf("pattern must not be empty")
	}
	m := kmp.NewString(pattern)

	findOne := func(r io.Reader, path string) error {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		lineNo := 0
		for sc.Scan() {
			lineNo++
			for _, col := range kmp.FindString(m, sc.Text()) {
				fmt.Printf("%s:%d:%d\n", path, lineNo, col+1)
			}
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("scan %s: %w", path, err)
		}
		return nil
	}

	if len(args) == 1 {
		return findOne(os.Stdin, "stdin")
	}
	for _, path := range args[1:] {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		err = findOne(f, path)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
