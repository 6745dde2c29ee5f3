package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/textscan/internal/adapters/bbolt"
	"github.com/corey/textscan/internal/ports"
)

var errNoStore = errors.New("no store_path configured (set store_path in the config file)")

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Manage stored keyword dictionaries",
}

var keywordsAddCmd = &cobra.Command{
	Use:   "add <dictionary> <keyword>...",
	Short: "Add keywords to a stored dictionary (created if missing)",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runKeywordsAdd,
}

var keywordsListCmd = &cobra.Command{
	Use:   "list [dictionary]",
	Short: "List stored dictionaries, or the keywords of one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runKeywordsList,
}

var keywordsRemoveCmd = &cobra.Command{
	Use:   "remove <dictionary>",
	Short: "Delete a stored dictionary",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeywordsRemove,
}

func runKeywordsAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := mustStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	name := args[0]
	d, err := store.LoadDictionary(name)
	if errors.Is(err, bbolt.ErrNotFound) {
		d = &ports.Dictionary{Name: name}
	} else if err != nil {
		return err
	}

	existing := make(map[string]bool, len(d.Keywords))
	for _, kw := range d.Keywords {
		existing[kw] = true
	}
	added := 0
	for _, kw := range args[1:] {
		if kw == "" {
			return fmt.Errorf("empty keyword")
		}
		if !existing[kw] {
			existing[kw] = true
			d.Keywords = append(d.Keywords, kw)
			added++
		}
	}

	if err := store.SaveDictionary(d); err != nil {
		return err
	}
	fmt.Printf("%s: %d added, %d total\n", name, added, len(d.Keywords))
	return nil
}

func runKeywordsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := mustStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if len(args) == 1 {
		d, err := store.LoadDictionary(args[0])
		if err != nil {
			return err
		}
		for _, kw := range d.Keywords {
			fmt.Println(kw)
		}
		return nil
	}

	names, err := store.ListDictionaries()
	if err != nil {
		return err
	}
	for _, name := range names {
		d, err := store.LoadDictionary(name)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%d keywords\n", name, len(d.Keywords))
	}
	return nil
}

func runKeywordsRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := mustStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	return store.DeleteDictionary(args[0])
}

func init() {
	keywordsCmd.AddCommand(keywordsAddCmd)
	keywordsCmd.AddCommand(keywordsListCmd)
	keywordsCmd.AddCommand(keywordsRemoveCmd)
}
