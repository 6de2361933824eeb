package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/horary/go-engine/internal/replay"
)

var (
	replayDir      string
	replayParallel int
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a directory of fixtures and compare with expected outcomes",
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replayDir, "dir", "d", "testdata/fixtures", "Fixture directory")
	replayCmd.Flags().IntVarP(&replayParallel, "parallel", "p", 4, "Fixtures judged concurrently")
}

func runReplay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fixtures, err := replay.LoadDir(replayDir)
	if err != nil {
		return err
	}
	if len(fixtures) == 0 {
		return fmt.Errorf("no fixtures in %s", replayDir)
	}
	e, contracts, err := newEngine()
	if err != nil {
		return err
	}

	results, err := replay.RunParallel(ctx, e, contracts, fixtures, replayParallel)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(out, "ERROR    %-28s %v\n", r.Name, r.Err)
		case r.Match:
			fmt.Fprintf(out, "ok       %-28s %s/%s\n", r.Name, r.Judgment.Verdict, r.Judgment.PerfectionType)
		default:
			fmt.Fprintf(out, "MISMATCH %-28s got %s/%s, want %s/%s\n", r.Name,
				r.Judgment.Verdict, r.Judgment.PerfectionType, r.Expected.Verdict, r.Expected.PerfectionType)
		}
	}

	s := replay.Summarize(results)
	fmt.Fprintf(out, "\n%d fixtures: %d ok, %d mismatched, %d errors\n", s.Total, s.Matches, s.Mismatches, s.Errors)
	logger.Info("replay finished",
		zap.Int("total", s.Total), zap.Int("matches", s.Matches),
		zap.Int("mismatches", s.Mismatches), zap.Int("errors", s.Errors))
	if s.Mismatches+s.Errors > 0 {
		return fmt.Errorf("replay: %d of %d fixtures failed", s.Mismatches+s.Errors, s.Total)
	}
	return nil
}
