package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/XJIeI5/computor/internal/computor"
	"github.com/XJIeI5/computor/internal/config"
	"github.com/XJIeI5/computor/internal/logger"
	"github.com/XJIeI5/computor/internal/visualizer"
)

var (
	cfgFile string
	debug   bool
	dotFile string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "computor <equation>",
	Short: "Reduce and solve a polynomial equation of degree 2 or lower",
	Example: `  computor "5 * X^0 + 4 * X^1 - 9.3 * X^2 = 1 * X^0"
  computor --dot tree.dot "5*X^0+4*X^1=4*X^0"`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		logCfg := cfg.Log.Logger()
		if debug {
			logCfg.Level = "debug"
		}
		logger.Init(logCfg)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		report, err := computor.Solve(args[0], cfg.Parser.Options()...)
		if err != nil {
			return err
		}
		if dotFile != "" {
			if err := writeDOT(dotFile, report); err != nil {
				return err
			}
		}
		return report.Render(cmd.OutOrStdout())
	},
}

func writeDOT(path string, report *computor.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := visualizer.WriteDOT(f, report.Tree); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every pipeline stage to stderr")
	rootCmd.Flags().StringVar(&dotFile, "dot", "", "write the parsed tree as a Graphviz file")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
