package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/textscan/internal/app"
)

var (
	flagScanCount bool
	flagScanQuiet bool
	flagScanLimit int
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Scan files or stdin for configured keywords",
	Long: "Scans each input once, reporting every keyword occurrence as\n" +
		"path:line:column:dictionary:keyword. With no paths, reads stdin.",
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagScanLimit > 0 {
		cfg.Scan.MaxMatches = flagScanLimit
	}

	s, closeStore, err := newScanner(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	total := 0
	scanOne := func(matches []app.FileMatch) {
		total += len(matches)
		if flagScanCount || flagScanQuiet {
			return
		}
		for _, m := range matches {
			fmt.Printf("%s:%d:%d:%s:%s\n", m.Path, m.Line, m.Column, m.Dictionary, m.Keyword)
		}
	}

	if len(args) == 0 {
		matches, err := s.ScanReader(os.Stdin, "stdin")
		if err != nil {
			return err
		}
		scanOne(matches)
	}
	for _, path := range args {
		matches, err := s.ScanFile(path)
		if err != nil {
			return err
		}
		scanOne(matches)
	}

	if flagScanCount {
		fmt.Println(total)
	}
	if flagScanQuiet {
		if total == 0 {
			return scanExit{code: 1}
		}
		return scanExit{code: 0}
	}
	return nil
}

func init() {
	scanCmd.Flags().BoolVarP(&flagScanCount, "count", "C", false, "print only the total match count")
	scanCmd.Flags().BoolVarP(&flagScanQuiet, "quiet", "q", false, "no output; exit 0 if any match, 1 otherwise")
	scanCmd.Flags().IntVarP(&flagScanLimit, "limit", "m", 0, "stop after this many matches (0 = unlimited)")
}
