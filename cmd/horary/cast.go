package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
	"github.com/danielpatrickdp/horary/go-engine/internal/ephemeris"
	"github.com/danielpatrickdp/horary/go-engine/internal/judge"
)

var (
	castTime     string
	castTZ       string
	castLat      float64
	castLon      float64
	castPlace    string
	castA        string
	castB        string
	castCategory string
	castWindow   float64
	castTimeout  time.Duration
	castRecord   bool
	castJSON     bool
)

var castCmd = &cobra.Command{
	Use:   "cast",
	Short: "Cast a chart through the chart service and judge it",
	Long: `Asks the chart service at chart_addr for the chart of a moment and place,
then judges it. Give --a and --b to name the significators, or leave them out
to take the rulers of house 1 and the category's quesited house.

Example:
  horary cast --time 2026-03-14T09:30:00Z --lat 51.5 --lon -0.12 --category career`,
	RunE: runCast,
}

func init() {
	castCmd.Flags().StringVar(&castTime, "time", "", "Moment of the question, RFC 3339 (required)")
	castCmd.Flags().StringVar(&castTZ, "tz", "UTC", "IANA timezone of the querent")
	castCmd.Flags().Float64Var(&castLat, "lat", 0, "Latitude in degrees")
	castCmd.Flags().Float64Var(&castLon, "lon", 0, "Longitude in degrees")
	castCmd.Flags().StringVar(&castPlace, "place", "", "Location name")
	castCmd.Flags().StringVar(&castA, "a", "", "First significator")
	castCmd.Flags().StringVar(&castB, "b", "", "Second significator")
	castCmd.Flags().StringVar(&castCategory, "category", "general", "Question category")
	castCmd.Flags().Float64Var(&castWindow, "window", 0, "Perfection window in days (0 uses the config)")
	castCmd.Flags().DurationVar(&castTimeout, "timeout", 30*time.Second, "Chart service timeout")
	castCmd.Flags().BoolVar(&castRecord, "record", false, "Persist the judgment and its provenance")
	castCmd.Flags().BoolVar(&castJSON, "json", false, "Print the result as JSON")
	if err := castCmd.MarkFlagRequired("time"); err != nil {
		panic(err)
	}
}

func runCast(cmd *cobra.Command, args []string) error {
	moment, err := time.Parse(time.RFC3339, castTime)
	if err != nil {
		return fmt.Errorf("parse --time: %w", err)
	}
	e, contracts, err := newEngine()
	if err != nil {
		return err
	}

	client, err := ephemeris.NewChartClient(cfg.ChartAddr)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), castTimeout)
	defer cancel()
	c, err := client.CastChart(ctx, ephemeris.ChartRequest{
		Moment:       moment,
		Timezone:     castTZ,
		Latitude:     castLat,
		Longitude:    castLon,
		LocationName: castPlace,
	})
	if err != nil {
		return err
	}
	logger.Debug("chart cast", zap.String("addr", cfg.ChartAddr), zap.Time("moment", moment))

	var res judge.Result
	if castA != "" || castB != "" {
		a, err := chart.ParsePlanet(castA)
		if err != nil {
			return fmt.Errorf("--a: %w", err)
		}
		b, err := chart.ParsePlanet(castB)
		if err != nil {
			return fmt.Errorf("--b: %w", err)
		}
		contract, err := contracts.Lookup(castCategory)
		if err != nil {
			return err
		}
		res, err = e.Judge(judge.Request{Chart: c, SignificatorA: a, SignificatorB: b, Contract: contract, WindowDays: castWindow})
		if err != nil {
			return err
		}
	} else {
		res, err = e.JudgeCategory(contracts, judge.CategoryRequest{Chart: c, Category: castCategory, WindowDays: castWindow})
		if err != nil {
			return err
		}
	}

	if err := printResult(cmd.OutOrStdout(), res, castJSON); err != nil {
		return err
	}
	if castRecord {
		id, err := recordJudgment(c, res, castWindow, nil, "cast")
		if err != nil {
			return err
		}
		logger.Info("judgment recorded", zap.String("judgment_id", id))
	}
	return nil
}
