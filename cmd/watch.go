package cmd

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/gitmesam/godbg/internal/cliformat"
)

var watchCmd = &cobra.Command{
	Use:   "watch <object-file>",
	Short: "Re-parse an object's DWARF sections whenever the file changes on disk",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := args[0]

		reparse := func() {
			mod, err := parseObject(path, 0)
			if err != nil {
				fmt.Println(cliformat.Error("reparse failed: %s", err))
				return
			}
			fmt.Println(cliformat.Success("reparsed %s: %d compiland(s)", path, len(mod.DB.Compilands)))
		}
		reparse()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("watch: creating watcher: %w", err)
		}
		defer watcher.Close()

		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch: watching %q: %w", path, err)
		}

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					reparse()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Warn("watch error", "error", err)
			}
		}
	},
}
