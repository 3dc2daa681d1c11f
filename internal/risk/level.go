package risk

import (
	"encoding/json"
	"fmt"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/config"
)

// Level is the closed set of risk classifications. A Level is only ever
// produced by Classifier.Classify, so it cannot drift from the score it
// was derived from.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
)

// String returns the display form used in descriptions and API output.
func (l Level) String() string {
	switch l {
	case LevelLow:
		return "Low"
	case LevelMedium:
		return "Medium"
	case LevelHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the level as its display string.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level from its display string.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "Low":
		*l = LevelLow
	case "Medium":
		*l = LevelMedium
	case "High":
		*l = LevelHigh
	default:
		return fmt.Errorf("unknown risk level %q", s)
	}
	return nil
}

// Classifier maps numeric scores onto levels using fixed thresholds.
type Classifier struct {
	high   float64
	medium float64
}

// NewClassifier builds a classifier from the configured thresholds.
func NewClassifier(cfg config.RiskConfig) Classifier {
	return Classifier{high: cfg.HighThreshold, medium: cfg.MediumThreshold}
}

// Classify maps a 0-100 score to a level. Thresholds are inclusive:
// score >= high is High, score >= medium is Medium, anything below is Low.
func (c Classifier) Classify(score float64) Level {
	switch {
	case score >= c.high:
		return LevelHigh
	case score >= c.medium:
		return LevelMedium
	default:
		return LevelLow
	}
}
