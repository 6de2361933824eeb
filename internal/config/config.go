package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/horary/go-engine/internal/aspect"
	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
	"github.com/danielpatrickdp/horary/go-engine/internal/judge"
	"github.com/danielpatrickdp/horary/go-engine/internal/perfection"
)

// #region types

// Config is the on-disk engine configuration.
type Config struct {
	Scan          ScanConfig    `yaml:"scan"`
	Orbs          OrbsConfig    `yaml:"orbs"`
	Verdict       VerdictConfig `yaml:"verdict"`
	DBPath        string        `yaml:"db_path"`
	ChartAddr     string        `yaml:"chart_addr"`
	LogLevel      string        `yaml:"log_level"`
	ContractsPath string        `yaml:"contracts_path"`
}

// ScanConfig mirrors perfection.Config with YAML tags.
type ScanConfig struct {
	PastWindowDays        float64 `yaml:"past_window_days"`
	FutureWindowDays      float64 `yaml:"future_window_days"`
	StepDays              float64 `yaml:"step_days"`
	RequireSignChange     bool    `yaml:"require_sign_change"`
	TranslationConfidence float64 `yaml:"translation_confidence"`
	CollectionConfidence  float64 `yaml:"collection_confidence"`
	ConfidenceDecayPerDay float64 `yaml:"confidence_decay_per_day"`
	MinConfidence         float64 `yaml:"min_confidence"`
}

// OrbsConfig holds the allowed orb per aspect, in degrees.
type OrbsConfig struct {
	Conjunction float64 `yaml:"conjunction"`
	Sextile     float64 `yaml:"sextile"`
	Square      float64 `yaml:"square"`
	Trine       float64 `yaml:"trine"`
	Opposition  float64 `yaml:"opposition"`
}

// VerdictConfig mirrors the verdict thresholds of judge.Config.
type VerdictConfig struct {
	FavorableThreshold float64 `yaml:"favorable_threshold"`
	ConfidencePerPoint float64 `yaml:"confidence_per_point"`
	MaxConfidence      float64 `yaml:"max_confidence"`
}

// #endregion types

// #region defaults

// Default returns the built-in configuration.
func Default() Config {
	p := perfection.DefaultConfig()
	j := judge.DefaultConfig()
	o := aspect.DefaultOrbPolicy()
	return Config{
		Scan: ScanConfig{
			PastWindowDays:        p.PastWindowDays,
			FutureWindowDays:      p.FutureWindowDays,
			StepDays:              p.StepDays,
			RequireSignChange:     p.RequireSignChange,
			TranslationConfidence: p.TranslationConfidence,
			CollectionConfidence:  p.CollectionConfidence,
			ConfidenceDecayPerDay: p.ConfidenceDecayPerDay,
			MinConfidence:         p.MinConfidence,
		},
		Orbs: OrbsConfig{
			Conjunction: o[chart.Conjunction],
			Sextile:     o[chart.Sextile],
			Square:      o[chart.Square],
			Trine:       o[chart.Trine],
			Opposition:  o[chart.Opposition],
		},
		Verdict: VerdictConfig{
			FavorableThreshold: j.FavorableThreshold,
			ConfidencePerPoint: j.ConfidencePerPoint,
			MaxConfidence:      j.MaxConfidence,
		},
		DBPath:    "horary.db",
		ChartAddr: "localhost:50051",
		LogLevel:  "info",
	}
}

// #endregion defaults

// #region load

// Load reads a YAML config over the defaults. An empty or missing path yields
// the defaults. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("config read: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config parse %s: %w", path, err)
			}
		}
	}

	cfg.DBPath = envOr("HORARY_DB", cfg.DBPath)
	cfg.ChartAddr = envOr("HORARY_CHART_ADDR", cfg.ChartAddr)
	cfg.LogLevel = envOr("HORARY_LOG_LEVEL", cfg.LogLevel)

	if err := cfg.ToJudgeConfig().Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion load

// #region converters

// ToOrbPolicy converts the orb table to an aspect.OrbPolicy.
func (c Config) ToOrbPolicy() aspect.OrbPolicy {
	return aspect.OrbPolicy{
		chart.Conjunction: c.Orbs.Conjunction,
		chart.Sextile:     c.Orbs.Sextile,
		chart.Square:      c.Orbs.Square,
		chart.Trine:       c.Orbs.Trine,
		chart.Opposition:  c.Orbs.Opposition,
	}
}

// ToPerfectionConfig converts the scan settings to a perfection.Config.
func (c Config) ToPerfectionConfig() perfection.Config {
	return perfection.Config{
		PastWindowDays:        c.Scan.PastWindowDays,
		FutureWindowDays:      c.Scan.FutureWindowDays,
		StepDays:              c.Scan.StepDays,
		RequireSignChange:     c.Scan.RequireSignChange,
		Orbs:                  c.ToOrbPolicy(),
		TranslationConfidence: c.Scan.TranslationConfidence,
		CollectionConfidence:  c.Scan.CollectionConfidence,
		ConfidenceDecayPerDay: c.Scan.ConfidenceDecayPerDay,
		MinConfidence:         c.Scan.MinConfidence,
	}
}

// ToJudgeConfig converts the whole file to a judge.Config.
func (c Config) ToJudgeConfig() judge.Config {
	return judge.Config{
		Perfection:         c.ToPerfectionConfig(),
		FavorableThreshold: c.Verdict.FavorableThreshold,
		ConfidencePerPoint: c.Verdict.ConfidencePerPoint,
		MaxConfidence:      c.Verdict.MaxConfidence,
	}
}

// #endregion converters
