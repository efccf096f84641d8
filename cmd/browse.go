package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitmesam/godbg/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse <object-file>",
	Short: "Open an interactive browser over an object's debug information",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		mod, err := parseObject(args[0], 0)
		if err != nil {
			return err
		}
		app := tui.NewApp(mod.DB, logRing, log)
		return app.Run()
	},
}
