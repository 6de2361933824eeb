package logging

import "time"

// #region provenance-entry
// ProvenanceEntry is a single row in the provenance_log table.
type ProvenanceEntry struct {
	JudgmentID  string
	ContextHash string
	TriggerType string // "cli" | "replay" | "cast"
	InputsJSON  string
	Findings    string // comma-separated perfection, prohibition and sequence summaries
	Decision    string // verdict
	Reason      string
	CreatedAt   time.Time
}

// #endregion provenance-entry

// #region judgment-inputs
// JudgmentInputs captures everything that fed one judgment besides the chart
// itself. Serialized as JSON into provenance_log.inputs_json for replay.
type JudgmentInputs struct {
	Category      string   `json:"category,omitempty"`
	SignificatorA string   `json:"significator_a"`
	SignificatorB string   `json:"significator_b"`
	WindowDays    float64  `json:"window_days"`
	Testimonies   []string `json:"testimonies,omitempty"`

	// Thresholds active at decision time
	Thresholds JudgmentThresholds `json:"thresholds"`

	// Engine output
	PerfectionType string  `json:"perfection_type"`
	Score          float64 `json:"score"`
	Confidence     float64 `json:"confidence"`
}

// JudgmentThresholds captures the scan and verdict configuration.
type JudgmentThresholds struct {
	PastWindowDays     float64            `json:"past_window_days"`
	FutureWindowDays   float64            `json:"future_window_days"`
	StepDays           float64            `json:"step_days"`
	RequireSignChange  bool               `json:"require_sign_change"`
	Orbs               map[string]float64 `json:"orbs"`
	FavorableThreshold float64            `json:"favorable_threshold"`
}

// #endregion judgment-inputs
