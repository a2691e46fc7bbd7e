package main

import (
	"fmt"
	"os"

	"github.com/nethermindeth/fredkin/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "fredkin",
	Short: "Inspect a bitwise Fredkin trie index from the command line",
	Long: `fredkin is a small inspection harness around core/trie: it builds
one Index per invocation, optionally seeded from a file of keys, and
runs a single insert/find/dump/stress operation against it. It is not
the benchmark harness spec.md §1 places out of scope.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initViper)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default none)")
	rootCmd.PersistentFlags().Uint("key-width", 64, "number of root slots (key bit width)")
	rootCmd.PersistentFlags().String("nobble", "zeros", "removal nobble direction: zeros, ones, or equal")
	rootCmd.PersistentFlags().Uint64("max-size", ^uint64(0), "capacity ceiling")
	rootCmd.PersistentFlags().String("seed-file", "", "newline-delimited file of keys to load at startup")
	rootCmd.PersistentFlags().Bool("debug", false, "validate invariants after every mutation and log via zap")

	_ = v.BindPFlag("key-width", rootCmd.PersistentFlags().Lookup("key-width"))
	_ = v.BindPFlag("nobble", rootCmd.PersistentFlags().Lookup("nobble"))
	_ = v.BindPFlag("max-size", rootCmd.PersistentFlags().Lookup("max-size"))
	_ = v.BindPFlag("seed-file", rootCmd.PersistentFlags().Lookup("seed-file"))
	_ = v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(insertCmd, findCmd, dumpCmd, stressCmd)
}

func initViper() {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}
}

func loadConfig() (config.Config, error) {
	return config.Load(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
