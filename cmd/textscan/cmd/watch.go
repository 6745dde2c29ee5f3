package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	fsw "github.com/corey/textscan/internal/adapters/fsnotify"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload dictionaries when their keyword files change",
	Long: "Runs until interrupted, rebuilding the automaton whenever a\n" +
		"configured keyword file is modified. Useful alongside a long-lived\n" +
		"embedding of the scanner.",
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, closeStore, err := newScanner(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	w, err := fsw.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := s.WatchAndReload(w); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
