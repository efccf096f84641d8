// Package cmd is godbg's cobra command tree: one DWARF version 2 debug
// information reader exposed as parse/lines/browse/watch/serve/query
// subcommands, all sharing the root's config and logger.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitmesam/godbg/internal/logging"
	"github.com/gitmesam/godbg/pkg/regmap"
)

var cfgFile string
var logRing = logging.NewRing(256)
var log *slog.Logger

// RootCmd is godbg's base command.
var RootCmd = &cobra.Command{
	Use:   "godbg",
	Short: "A DWARF version 2 debug-information reader",
	Long: `godbg parses the DWARF version 2 debug information emitted alongside an
object file's machine code: compilation units, types, functions, variables
and the line-number table, and makes it available for inspection, browsing
and remote querying.`,
}

// Execute adds all child commands to RootCmd and runs it.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(parseCmd, linesCmd, browseCmd, watchCmd, serveCmd, queryCmd)
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.godbg.yaml)")
	RootCmd.PersistentFlags().String("regmap", "", "YAML DWARF-register-to-target-register map (default: built-in Cucaracha map)")
	RootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	viper.BindPFlag("regmap", RootCmd.PersistentFlags().Lookup("regmap"))
	viper.BindPFlag("log-level", RootCmd.PersistentFlags().Lookup("log-level"))
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set, the way the
// teacher's cmd/root.go does for .cucaracha.yaml, renamed to .godbg.yaml.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".godbg")
	}

	viper.SetEnvPrefix("GODBG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	log = logging.New(os.Stderr, parseLevel(viper.GetString("log-level")), logRing)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadRegMap returns the --regmap file's Map, or the built-in Cucaracha
// register map if none was given.
func loadRegMap() (regmap.Map, error) {
	path := viper.GetString("regmap")
	if path == "" {
		return regmap.CucarachaRegisters(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading regmap %q: %w", path, err)
	}
	return regmap.LoadYAML(data)
}
