package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
	"github.com/danielpatrickdp/horary/go-engine/internal/judge"
)

// #region errors
// ErrNotFound is returned when no judgment has the requested ID.
var ErrNotFound = errors.New("store: judgment not found")

// #endregion errors

// #region record
// Record is one persisted judgment. The chart itself is not stored, only a
// hash of its JSON form.
type Record struct {
	ID             string
	Category       string
	SignificatorA  chart.Planet
	SignificatorB  chart.Planet
	Verdict        judge.Verdict
	Confidence     float64
	PerfectionType judge.PerfectionType
	Score          float64
	ContextHash    string
	LedgerJSON     string
	ReasoningJSON  string
	CreatedAt      time.Time
}

// RecordFromResult flattens a judgment result for storage.
func RecordFromResult(res judge.Result, contextHash string) (Record, error) {
	ledger, err := json.Marshal(res.Ledger)
	if err != nil {
		return Record{}, fmt.Errorf("marshal ledger: %w", err)
	}
	reasoning, err := json.Marshal(res.Reasoning)
	if err != nil {
		return Record{}, fmt.Errorf("marshal reasoning: %w", err)
	}
	return Record{
		Category:       res.Category,
		SignificatorA:  res.SignificatorA,
		SignificatorB:  res.SignificatorB,
		Verdict:        res.Verdict,
		Confidence:     res.Confidence,
		PerfectionType: res.PerfectionType,
		Score:          res.Score,
		ContextHash:    contextHash,
		LedgerJSON:     string(ledger),
		ReasoningJSON:  string(reasoning),
	}, nil
}

// #endregion record

// #region chart-hash
// ChartHash returns the hex SHA-256 of the chart's JSON encoding.
func ChartHash(c *chart.Chart) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("hash chart: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// #endregion chart-hash
