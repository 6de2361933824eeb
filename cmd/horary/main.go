package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/horary/go-engine/internal/config"
	"github.com/danielpatrickdp/horary/go-engine/internal/judge"
	"github.com/danielpatrickdp/horary/go-engine/internal/logging"
	"github.com/danielpatrickdp/horary/go-engine/internal/testimony"
)

var (
	cfgPath string
	verbose bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "horary",
	Short: "Horary judgment engine",
	Long: `horary judges a question from a chart snapshot: it looks for direct
perfection between the two significators, prohibition or abscission of
light, translation and collection of light, then weighs the testimonies
under the question category's contract and returns a verdict.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.NewLogger(level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "horary.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(judgeCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(castCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newEngine builds the engine and category contracts from the loaded config.
func newEngine() (*judge.Engine, testimony.Contracts, error) {
	contracts, err := testimony.LoadContracts(cfg.ContractsPath)
	if err != nil {
		return nil, nil, err
	}
	jc := cfg.ToJudgeConfig()
	if err := jc.Validate(); err != nil {
		return nil, nil, err
	}
	return judge.NewEngine(jc, judge.WithLogger(logger)), contracts, nil
}
