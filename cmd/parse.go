package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitmesam/godbg/internal/cliformat"
	"github.com/gitmesam/godbg/pkg/dwarfbin"
)

var parseLoadOffset uint64

var parseCmd = &cobra.Command{
	Use:   "parse <object-file>",
	Short: "Parse an object file's DWARF 2 debug information and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		mod, err := parseObject(args[0], parseLoadOffset)
		if err != nil {
			return err
		}

		fmt.Println(cliformat.Header(fmt.Sprintf("%s (%s)", mod.Name, mod.SymbolType)))
		fmt.Printf("signature: %s  base: %s\n", string(mod.Signature[:]), cliformat.Address(mod.Base))
		fmt.Printf("line numbers: %v  global symbols: %v  type info: %v  source index: %v\n",
			mod.HasLineNumbers, mod.HasGlobalSymbols, mod.HasTypeInfo, mod.HasSourceIndex)

		for _, c := range mod.DB.Compilands {
			fmt.Printf("\n%s  (%d functions, %d globals)\n", c.Name, len(c.Functions), len(c.Globals))
			for _, f := range c.Functions {
				fmt.Println("  " + cliformat.FunctionSummary(f))
			}
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().Uint64Var(&parseLoadOffset, "load-offset", 0, "address this module is loaded at, added to every DWARF address")
}

// parseObject loads path's DWARF sections and runs dwarfbin.Parse with the
// configured register map and shared logger.
func parseObject(path string, loadOffset uint64) (*dwarfbin.Module, error) {
	sections, err := loadSections(path)
	if err != nil {
		return nil, err
	}
	regs, err := loadRegMap()
	if err != nil {
		return nil, err
	}
	in := parseInputFor(path, loadOffset, sections, nil)
	return dwarfbin.Parse(in, regs, log)
}
