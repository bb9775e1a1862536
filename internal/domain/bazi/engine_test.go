package bazi

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestEngine_Calculate(t *testing.T) {
	t.Parallel()
	engine := NewDefaultEngine()

	t.Run("new year's day 1990 at midnight", func(t *testing.T) {
		chart, err := engine.Calculate(ChartInput{Year: 1990, Month: 1, Day: 1, Hour: 0})
		require.NoError(t, err)

		assert.Equal(t, "庚午 戊寅 丙寅 戊子", chart.Pillars.Glyphs())
		assert.Equal(t, ElementScores{25.7, 25.7, 28.6, 11.4, 8.6}, chart.Percentages)
		assert.Equal(t, Fire, chart.DayMaster.Element)
		assert.Equal(t, Yang, chart.DayMaster.Polarity)
		assert.InDelta(t, 51.4, chart.Support, 1e-9)
		assert.Equal(t, StrengthStrong, chart.Strength)
		assert.Equal(t, Spring, chart.Season)
	})

	t.Run("water-heavy winter afternoon", func(t *testing.T) {
		chart, err := engine.Calculate(ChartInput{Year: 2012, Month: 12, Day: 17, Hour: 14})
		require.NoError(t, err)

		assert.Equal(t, "壬辰 癸丑 壬子 丁未", chart.Pillars.Glyphs())
		assert.Equal(t, Water, chart.Percentages.Strongest())
		assert.Equal(t, 0.0, chart.Percentages[Wood])
		assert.Equal(t, 0.0, chart.Percentages[Metal])
		assert.Equal(t, Water, chart.DayMaster.Element)
		assert.Equal(t, StrengthStrong, chart.Strength)
	})

	t.Run("validation error passes through", func(t *testing.T) {
		_, err := engine.Calculate(ChartInput{Year: 2021, Month: 2, Day: 30, Hour: 10})
		require.Error(t, err)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, FieldDay, verr.Field)
		assert.Equal(t, 30, verr.Value)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("hour out of range", func(t *testing.T) {
		_, err := engine.Calculate(ChartInput{Year: 2021, Month: 2, Day: 3, Hour: 24})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, FieldHour, verr.Field)
	})
}

func TestEngine_Deterministic(t *testing.T) {
	t.Parallel()
	engine := NewDefaultEngine()
	in := ChartInput{Year: 1984, Month: 2, Day: 4, Hour: 23}

	first, err := engine.Calculate(in)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		again, err := engine.Calculate(in)
		require.NoError(t, err)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("Calculate not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestEngine_ConcurrentCalculate(t *testing.T) {
	t.Parallel()
	engine := NewDefaultEngine()

	inputs := []ChartInput{
		{1990, 1, 1, 0},
		{2012, 12, 17, 14},
		{2000, 1, 1, 12},
		{2024, 2, 29, 5},
		{2024, 3, 1, 5},
	}
	want := make([]Chart, len(inputs))
	for i, in := range inputs {
		c, err := engine.Calculate(in)
		require.NoError(t, err)
		want[i] = c
	}

	g, _ := errgroup.WithContext(context.Background())
	for worker := 0; worker < 8; worker++ {
		g.Go(func() error {
			for i, in := range inputs {
				got, err := engine.Calculate(in)
				if err != nil {
					return err
				}
				if diff := cmp.Diff(want[i], got); diff != "" {
					return errors.New("concurrent result differs: " + diff)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("nil params", func(t *testing.T) {
		_, err := NewEngine(nil)
		assert.Error(t, err)
	})

	t.Run("invalid params", func(t *testing.T) {
		_, err := NewEngine(&Params{StemWeight: -1, BranchWeight: 1})
		assert.Error(t, err)
	})

	t.Run("params are copied", func(t *testing.T) {
		params := NewDefaultParams()
		engine, err := NewEngine(params)
		require.NoError(t, err)

		params.StemWeight = 99
		assert.Equal(t, 1.0, engine.Params().StemWeight)
	})

	t.Run("zero pillar weights are degenerate", func(t *testing.T) {
		params := NewDefaultParams()
		params.PillarWeights = [pillarCount]float64{}
		engine, err := NewEngine(params)
		require.NoError(t, err)

		_, err = engine.Calculate(ChartInput{Year: 1990, Month: 1, Day: 1, Hour: 0})
		assert.ErrorIs(t, err, ErrDegenerateInput)
	})
}
