package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitmesam/godbg/internal/cliformat"
)

var linesCmd = &cobra.Command{
	Use:   "lines <object-file> <function>",
	Short: "Print the resolved line table for one function",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		mod, err := parseObject(args[0], 0)
		if err != nil {
			return err
		}

		name := args[1]
		for _, c := range mod.DB.Compilands {
			for _, f := range c.Functions {
				if f.Name != name {
					continue
				}
				fmt.Println(cliformat.FunctionSummary(f))
				for _, rec := range f.Lines {
					addr := f.Low + rec.Offset
					file := mod.DB.SourcePath(rec.File)
					fmt.Printf("  %s  %s  line %d\n", cliformat.Address(addr), file, rec.Line)
				}
				return nil
			}
		}
		return fmt.Errorf("no function named %q", name)
	},
}
