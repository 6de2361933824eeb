package logging

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// #region log-decision
// LogDecision writes a provenance entry to the provenance_log table.
func LogDecision(db *sql.DB, entry ProvenanceEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO provenance_log (judgment_id, context_hash, trigger_type, inputs_json, findings, decision, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.JudgmentID,
		nullIfEmpty(entry.ContextHash),
		entry.TriggerType,
		nullIfEmpty(entry.InputsJSON),
		nullIfEmpty(entry.Findings),
		entry.Decision,
		nullIfEmpty(entry.Reason),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log decision: %w", err)
	}
	return nil
}

// #endregion log-decision

// #region list-decisions
// ListDecisions returns the provenance rows for one judgment in insertion order.
func ListDecisions(db *sql.DB, judgmentID string) ([]ProvenanceEntry, error) {
	rows, err := db.Query(
		`SELECT judgment_id, context_hash, trigger_type, inputs_json, findings, decision, reason, created_at
		 FROM provenance_log WHERE judgment_id = ? ORDER BY id`, judgmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var out []ProvenanceEntry
	for rows.Next() {
		var e ProvenanceEntry
		var hash, inputs, findings, reason sql.NullString
		var created string
		if err := rows.Scan(&e.JudgmentID, &hash, &e.TriggerType, &inputs, &findings, &e.Decision, &reason, &created); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		e.ContextHash = hash.String
		e.InputsJSON = inputs.String
		e.Findings = findings.String
		e.Reason = reason.String
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion list-decisions

// #region inputs-json
// EncodeInputs serializes judgment inputs for provenance_log.inputs_json.
func EncodeInputs(in JudgmentInputs) (string, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encode inputs: %w", err)
	}
	return string(data), nil
}

// #endregion inputs-json

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
