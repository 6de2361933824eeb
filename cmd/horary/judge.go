package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/horary/go-engine/internal/replay"
)

var (
	judgeFixture string
	judgeRecord  bool
	judgeJSON    bool
)

var judgeCmd = &cobra.Command{
	Use:   "judge",
	Short: "Judge the question in a fixture file",
	Long: `Loads a chart and question from a JSON fixture and prints the judgment.
When the fixture names no significators they are taken from the rulers of
house 1 and the category's quesited house.

Example:
  horary judge --fixture question.json --record`,
	RunE: runJudge,
}

func init() {
	judgeCmd.Flags().StringVarP(&judgeFixture, "fixture", "f", "", "Fixture JSON file (required)")
	judgeCmd.Flags().BoolVar(&judgeRecord, "record", false, "Persist the judgment and its provenance")
	judgeCmd.Flags().BoolVar(&judgeJSON, "json", false, "Print the result as JSON")
	if err := judgeCmd.MarkFlagRequired("fixture"); err != nil {
		panic(err)
	}
}

func runJudge(cmd *cobra.Command, args []string) error {
	f, err := replay.LoadFixture(judgeFixture)
	if err != nil {
		return err
	}
	e, contracts, err := newEngine()
	if err != nil {
		return err
	}

	r := replay.Run(e, contracts, f)
	if r.Err != nil {
		return fmt.Errorf("judge %s: %w", f.Name, r.Err)
	}
	if err := printResult(cmd.OutOrStdout(), r.Judgment, judgeJSON); err != nil {
		return err
	}

	if judgeRecord {
		id, err := recordJudgment(f.Chart, r.Judgment, f.WindowDays, f.Testimonies, "cli")
		if err != nil {
			return err
		}
		logger.Info("judgment recorded", zap.String("judgment_id", id), zap.String("db", cfg.DBPath))
		if !judgeJSON {
			fmt.Fprintf(cmd.OutOrStdout(), "\nrecorded as %s\n", id)
		}
	}
	return nil
}
