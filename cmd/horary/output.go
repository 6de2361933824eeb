package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
	"github.com/danielpatrickdp/horary/go-engine/internal/judge"
	"github.com/danielpatrickdp/horary/go-engine/internal/logging"
	"github.com/danielpatrickdp/horary/go-engine/internal/store"
)

// #region print

func printResult(w io.Writer, res judge.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(w, "%s vs %s", res.SignificatorA, res.SignificatorB)
	if res.Category != "" {
		fmt.Fprintf(w, " (%s)", res.Category)
	}
	fmt.Fprintf(w, "\nverdict:    %s (%.1f%%)\n", res.Verdict, res.Confidence)
	fmt.Fprintf(w, "perfection: %s\n", res.PerfectionType)
	fmt.Fprintf(w, "score:      %+.1f\n", res.Score)

	fmt.Fprintln(w, "\nledger:")
	for _, e := range res.Ledger {
		fmt.Fprintf(w, "  %-28s %-10s %-11s %+6.1f\n", e.Token, e.Tier, e.Polarity, e.DeltaYes-e.DeltaNo)
	}
	fmt.Fprintln(w, "\nreasoning:")
	for _, r := range res.Reasoning {
		fmt.Fprintf(w, "  - %s\n", r)
	}
	return nil
}

// findings summarises what each detector reported, for the provenance log.
func findings(res judge.Result) string {
	var parts []string
	if res.Direct != nil && res.Direct.Found {
		parts = append(parts, fmt.Sprintf("direct %s in %.2f days", res.Direct.Aspect, res.Direct.Days))
	}
	if res.Prohibition != nil && res.Prohibition.Prohibited {
		parts = append(parts, fmt.Sprintf("%s by %s", res.Prohibition.Type, res.Prohibition.Abscissor))
	}
	if res.Sequence != nil && res.Sequence.Found {
		parts = append(parts, res.Sequence.Sequence)
	}
	return strings.Join(parts, ", ")
}

// #endregion print

// #region record

// recordJudgment persists the result and its provenance row.
func recordJudgment(c *chart.Chart, res judge.Result, windowDays float64, testimonies []string, trigger string) (string, error) {
	s, err := store.NewStore(cfg.DBPath)
	if err != nil {
		return "", err
	}
	defer s.Close()

	hash, err := store.ChartHash(c)
	if err != nil {
		return "", err
	}
	rec, err := store.RecordFromResult(res, hash)
	if err != nil {
		return "", err
	}
	rec, err = s.SaveJudgment(rec)
	if err != nil {
		return "", err
	}

	pc := cfg.ToPerfectionConfig()
	orbs := make(map[string]float64, len(pc.Orbs))
	for a, v := range pc.Orbs {
		orbs[string(a)] = v
	}
	inputs, err := logging.EncodeInputs(logging.JudgmentInputs{
		Category:      res.Category,
		SignificatorA: string(res.SignificatorA),
		SignificatorB: string(res.SignificatorB),
		WindowDays:    windowDays,
		Testimonies:   testimonies,
		Thresholds: logging.JudgmentThresholds{
			PastWindowDays:     pc.PastWindowDays,
			FutureWindowDays:   pc.FutureWindowDays,
			StepDays:           pc.StepDays,
			RequireSignChange:  pc.RequireSignChange,
			Orbs:               orbs,
			FavorableThreshold: cfg.Verdict.FavorableThreshold,
		},
		PerfectionType: string(res.PerfectionType),
		Score:          res.Score,
		Confidence:     res.Confidence,
	})
	if err != nil {
		return "", err
	}

	err = logging.LogDecision(s.DB(), logging.ProvenanceEntry{
		JudgmentID:  rec.ID,
		ContextHash: hash,
		TriggerType: trigger,
		InputsJSON:  inputs,
		Findings:    findings(res),
		Decision:    string(res.Verdict),
		Reason:      strings.Join(res.Reasoning, "; "),
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// #endregion record
