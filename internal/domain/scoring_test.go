package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoringPolicy_Aggregate(t *testing.T) {
	policy := DefaultScoringPolicy(1)

	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{
			// At the trim threshold: drop 2 and 9, average 5, 6, 7.
			name:   "trimmed at five values",
			values: []float64{2, 5, 6, 7, 9},
			want:   6.00,
		},
		{
			// One below the threshold: nothing is dropped.
			name:   "untrimmed at four values",
			values: []float64{2, 6, 7, 9},
			want:   6.00,
		},
		{
			name:   "single value",
			values: []float64{7.3},
			want:   7.3,
		},
		{
			name:   "rounding half away from zero",
			values: []float64{7.125, 7.125},
			want:   7.13,
		},
		{
			name:   "unsorted input",
			values: []float64{9, 2, 7, 5, 6},
			want:   6.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Aggregate(tt.values)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScoringPolicy_Aggregate_NoValues(t *testing.T) {
	policy := DefaultScoringPolicy(1)

	_, err := policy.Aggregate(nil)
	assert.ErrorIs(t, err, ErrNoUsableEvaluations)
}

func TestScoringPolicy_Aggregate_TrimConsumesEverything(t *testing.T) {
	policy := ScoringPolicy{
		TrimFromCount:    2,
		TrimCountHigh:    1,
		TrimCountLow:     1,
		RoundingDecimals: 2,
	}

	_, err := policy.Aggregate([]float64{4, 8})
	assert.ErrorIs(t, err, ErrNoUsableEvaluations)
}

func TestScoringPolicy_Aggregate_DoesNotMutateInput(t *testing.T) {
	policy := DefaultScoringPolicy(1)
	values := []float64{9, 2, 7, 5, 6}

	_, err := policy.Aggregate(values)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 2, 7, 5, 6}, values)
}
