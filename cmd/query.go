package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/gitmesam/godbg/internal/cliformat"
	"github.com/gitmesam/godbg/pkg/queryeval"
)

var queryCmd = &cobra.Command{
	Use:   "query <object-file>",
	Short: "Interactively evaluate symbol/address expressions against an object",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		mod, err := parseObject(args[0], 0)
		if err != nil {
			return err
		}
		eval := queryeval.NewEvaluator(mod.DB)

		rl, err := readline.New("query> ")
		if err != nil {
			return fmt.Errorf("query: starting readline: %w", err)
		}
		defer rl.Close()

		for {
			line, err := rl.Readline()
			if err == io.EOF || err == readline.ErrInterrupt {
				return nil
			}
			if err != nil {
				return err
			}
			expr := strings.TrimSpace(line)
			if expr == "" {
				continue
			}
			value, err := eval.Eval(expr)
			if err != nil {
				fmt.Println(cliformat.Error("%s", err))
				continue
			}
			fmt.Printf("%s = %s\n", cliformat.ColorizeExpression(expr), cliformat.Address(value))
		}
	},
}
