package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/horary/go-engine/internal/logging"
	"github.com/danielpatrickdp/horary/go-engine/internal/store"
)

var (
	inspectLast int
	inspectID   string
	inspectJSON bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List recorded judgments or show one with its provenance",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectLast, "last", "n", 20, "Show N most recent judgments")
	inspectCmd.Flags().StringVar(&inspectID, "id", "", "Show a single judgment with its provenance rows")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output as JSON instead of a table")
}

// #region list-mode

type listRow struct {
	ID             string  `json:"judgment_id"`
	Category       string  `json:"category,omitempty"`
	SignificatorA  string  `json:"significator_a"`
	SignificatorB  string  `json:"significator_b"`
	Verdict        string  `json:"verdict"`
	Confidence     float64 `json:"confidence"`
	PerfectionType string  `json:"perfection_type"`
	Score          float64 `json:"score"`
	CreatedAt      string  `json:"created_at"`
}

func toRow(r store.Record) listRow {
	return listRow{
		ID:             r.ID,
		Category:       r.Category,
		SignificatorA:  string(r.SignificatorA),
		SignificatorB:  string(r.SignificatorB),
		Verdict:        string(r.Verdict),
		Confidence:     r.Confidence,
		PerfectionType: string(r.PerfectionType),
		Score:          r.Score,
		CreatedAt:      r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if inspectID != "" {
		return runDetailMode(cmd, s, inspectID)
	}

	recs, err := s.ListRecent(inspectLast)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no judgments found")
		return nil
	}

	rows := make([]listRow, len(recs))
	for i, r := range recs {
		rows[i] = toRow(r)
	}
	if inspectJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Fprintf(out, "%-36s  %-19s  %-12s  %-8s  %-8s  %-11s  %-11s  %6s  %5s\n",
		"JUDGMENT", "CREATED", "CATEGORY", "A", "B", "VERDICT", "PERFECTION", "SCORE", "CONF")
	for _, r := range rows {
		fmt.Fprintf(out, "%-36s  %-19s  %-12s  %-8s  %-8s  %-11s  %-11s  %+6.1f  %5.1f\n",
			r.ID, r.CreatedAt, r.Category, r.SignificatorA, r.SignificatorB,
			r.Verdict, r.PerfectionType, r.Score, r.Confidence)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailView struct {
	listRow
	ContextHash string                    `json:"context_hash,omitempty"`
	Ledger      json.RawMessage           `json:"ledger,omitempty"`
	Reasoning   json.RawMessage           `json:"reasoning,omitempty"`
	Provenance  []logging.ProvenanceEntry `json:"provenance"`
}

func runDetailMode(cmd *cobra.Command, s *store.Store, id string) error {
	rec, err := s.GetJudgment(id)
	if err != nil {
		return err
	}
	prov, err := logging.ListDecisions(s.DB(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if inspectJSON {
		v := detailView{listRow: toRow(rec), ContextHash: rec.ContextHash, Provenance: prov}
		if rec.LedgerJSON != "" {
			v.Ledger = json.RawMessage(rec.LedgerJSON)
		}
		if rec.ReasoningJSON != "" {
			v.Reasoning = json.RawMessage(rec.ReasoningJSON)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	row := toRow(rec)
	fmt.Fprintf(out, "judgment:   %s\n", row.ID)
	fmt.Fprintf(out, "created:    %s\n", row.CreatedAt)
	fmt.Fprintf(out, "question:   %s vs %s (%s)\n", row.SignificatorA, row.SignificatorB, row.Category)
	fmt.Fprintf(out, "verdict:    %s (%.1f%%)\n", row.Verdict, row.Confidence)
	fmt.Fprintf(out, "perfection: %s, score %+.1f\n", row.PerfectionType, row.Score)
	fmt.Fprintf(out, "chart hash: %s\n", rec.ContextHash)
	for _, p := range prov {
		fmt.Fprintf(out, "\n[%s] %s -> %s\n", p.TriggerType, p.CreatedAt.Format("2006-01-02 15:04:05"), p.Decision)
		if p.Findings != "" {
			fmt.Fprintf(out, "  findings: %s\n", p.Findings)
		}
		if p.Reason != "" {
			fmt.Fprintf(out, "  reason:   %s\n", p.Reason)
		}
	}
	return nil
}

// #endregion detail-mode
