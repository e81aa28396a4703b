// SPDX-License-Identifier: EPL-2.0

package diffusion

import (
	"context"
	"fmt"
)

// Label is the drum class predicted for a waveform.
type Label int

// Class order of the shipped classifier's output vector.
const (
	LabelUnknown Label = iota - 1
	LabelKick
	LabelHat
	LabelSnare
)

func (l Label) String() string {
	switch l {
	case LabelKick:
		return "kick"
	case LabelHat:
		return "hat"
	case LabelSnare:
		return "snare"
	default:
		return "unknown"
	}
}

// Classification is the arg-max of a classifier's score vector.
type Classification struct {
	Index      int
	Label      Label
	Confidence float32 // raw score at Index
}

// Classify calls c once on signal and returns the index of the highest score
// together with that score. Ties resolve to the lowest index. NaN scores are
// passed through as they are.
func Classify(ctx context.Context, c Classifier, signal []float32) (Classification, error) {
	if c == nil {
		return Classification{}, ErrNilClassifier
	}

	scores, err := c.Classify(ctx, signal)
	if err != nil {
		return Classification{}, fmt.Errorf("diffusion: classify: %w", err)
	}

	idx, ok := argMax(scores)
	if !ok {
		return Classification{}, ErrEmptyScores
	}

	return Classification{
		Index:      idx,
		Label:      labelFor(idx),
		Confidence: scores[idx],
	}, nil
}

func argMax(v []float32) (int, bool) {
	if len(v) == 0 {
		return 0, false
	}

	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}

	return best, true
}

func labelFor(idx int) Label {
	if idx < 0 || idx >= NumClasses {
		return LabelUnknown
	}

	return Label(idx)
}
