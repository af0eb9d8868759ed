package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidLabel = errors.New("invalid emotion label")

// Label is an emotion with a confidence score in [0, 1]. Labels come from
// an external classifier or the user; sealnote only stores them.
type Label struct {
	Emotion    string
	Confidence float64
}

// ParseLabels parses "emotion=score" pairs. A bare "emotion" has
// confidence 1. Emotion names are lower-cased.
func ParseLabels(specs []string) ([]Label, error) {
	labels := make([]Label, 0, len(specs))
	for _, spec := range specs {
		name, score, hasScore := strings.Cut(spec, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("%w: %q has no emotion", ErrInvalidLabel, spec)
		}

		confidence := 1.0
		if hasScore {
			v, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLabel, spec, err)
			}
			if !(v >= 0 && v <= 1) {
				return nil, fmt.Errorf("%w: %q: confidence must be between 0 and 1", ErrInvalidLabel, spec)
			}
			confidence = v
		}

		labels = append(labels, Label{Emotion: name, Confidence: confidence})
	}
	return labels, nil
}

// FormatLabels renders emotions with their scores as percentages,
// e.g. "joy 90%, surprise 25%".
func FormatLabels(emotions []string, scores []float64) string {
	parts := make([]string, 0, len(emotions))
	for i, e := range emotions {
		if i < len(scores) {
			parts = append(parts, fmt.Sprintf("%s %d%%", e, int(scores[i]*100+0.5)))
		} else {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, ", ")
}
