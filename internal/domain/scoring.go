package domain

import (
	"errors"
	"math"
	"sort"
)

var (
	ErrNoUsableEvaluations = errors.New("no usable evaluations to aggregate")
	ErrSampleLocked        = errors.New("sample is completed and locked for scoring")
)

const (
	DefaultTrimFromCount    = 5
	DefaultTrimCountHigh    = 1
	DefaultTrimCountLow     = 1
	DefaultRoundingDecimals = 2
)

// ScoringPolicy is the per-event aggregation configuration. When the count
// of usable evaluations reaches TrimFromCount, the TrimCountHigh highest
// and TrimCountLow lowest values are dropped before averaging.
type ScoringPolicy struct {
	ID               uint `json:"id"`
	EventID          uint `json:"event_id"`
	TrimFromCount    int  `json:"trim_from_count"`
	TrimCountHigh    int  `json:"trim_count_high"`
	TrimCountLow     int  `json:"trim_count_low"`
	RoundingDecimals int  `json:"rounding_decimals"`
}

func DefaultScoringPolicy(eventID uint) ScoringPolicy {
	return ScoringPolicy{
		EventID:          eventID,
		TrimFromCount:    DefaultTrimFromCount,
		TrimCountHigh:    DefaultTrimCountHigh,
		TrimCountLow:     DefaultTrimCountLow,
		RoundingDecimals: DefaultRoundingDecimals,
	}
}

// Aggregate computes the symmetric trimmed mean of the given per-evaluator
// values and rounds it to RoundingDecimals places, half away from zero.
// Below TrimFromCount values, the untrimmed average is used.
func (p ScoringPolicy) Aggregate(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoUsableEvaluations
	}

	vs := make([]float64, len(values))
	copy(vs, values)

	if len(vs) >= p.TrimFromCount {
		sort.Float64s(vs)
		if p.TrimCountLow+p.TrimCountHigh >= len(vs) {
			return 0, ErrNoUsableEvaluations
		}
		vs = vs[p.TrimCountLow : len(vs)-p.TrimCountHigh]
	}

	var sum float64
	for _, v := range vs {
		sum += v
	}

	return roundTo(sum/float64(len(vs)), p.RoundingDecimals), nil
}

// roundTo rounds half away from zero, matching math.Round.
func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
