package bazi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultParams(t *testing.T) {
	params := NewDefaultParams()

	require.NoError(t, params.Validate())
	assert.Greater(t, params.StemWeight, params.BranchWeight, "stems outweigh branches")
	assert.Greater(t, params.PillarWeights[PositionDay], params.PillarWeights[PositionHour])
	assert.Greater(t, params.PillarWeights[PositionMonth], params.PillarWeights[PositionYear])
	assert.Less(t, params.WeakThreshold, params.StrongThreshold)
}

func TestNewParams(t *testing.T) {
	t.Run("zero config keeps defaults", func(t *testing.T) {
		params, err := NewParams(ParamsConfig{})
		require.NoError(t, err)
		assert.Equal(t, NewDefaultParams(), params)
	})

	t.Run("overrides apply", func(t *testing.T) {
		params, err := NewParams(ParamsConfig{
			StemWeight:      2,
			BranchWeight:    1,
			YearWeight:      0.5,
			MonthWeight:     3,
			DayWeight:       2.5,
			HourWeight:      0.25,
			WeakThreshold:   30,
			StrongThreshold: 60,
		})
		require.NoError(t, err)
		assert.Equal(t, 2.0, params.StemWeight)
		assert.Equal(t, 1.0, params.BranchWeight)
		assert.Equal(t, [4]float64{0.5, 3, 2.5, 0.25}, params.PillarWeights)
		assert.Equal(t, 30.0, params.WeakThreshold)
		assert.Equal(t, 60.0, params.StrongThreshold)
	})

	t.Run("invalid band rejected", func(t *testing.T) {
		_, err := NewParams(ParamsConfig{WeakThreshold: 70, StrongThreshold: 60})
		assert.Error(t, err)
	})

	t.Run("negative weight rejected", func(t *testing.T) {
		_, err := NewParams(ParamsConfig{BranchWeight: -1})
		assert.Error(t, err)
	})
}
