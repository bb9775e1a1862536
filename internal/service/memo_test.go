package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/bazi-api/internal/domain/bazi"
)

func TestChartMemo_EvictsOldest(t *testing.T) {
	t.Parallel()

	m := newChartMemo(2)
	a := bazi.ChartInput{Year: 1990, Month: 1, Day: 1, Hour: 0}
	b := bazi.ChartInput{Year: 1991, Month: 1, Day: 1, Hour: 0}
	c := bazi.ChartInput{Year: 1992, Month: 1, Day: 1, Hour: 0}

	m.put(a, bazi.Chart{Input: a})
	m.put(b, bazi.Chart{Input: b})
	m.put(a, bazi.Chart{Input: a})
	assert.Equal(t, 2, m.len())

	m.put(c, bazi.Chart{Input: c})
	assert.Equal(t, 2, m.len())

	_, ok := m.get(a)
	assert.False(t, ok, "oldest entry should be evicted")
	got, ok := m.get(c)
	require.True(t, ok)
	assert.Equal(t, c, got.Input)
}

func TestChartMemo_Disabled(t *testing.T) {
	t.Parallel()

	m := newChartMemo(0)
	assert.Nil(t, m)

	in := bazi.ChartInput{Year: 2000, Month: 1, Day: 1, Hour: 0}
	m.put(in, bazi.Chart{Input: in})
	_, ok := m.get(in)
	assert.False(t, ok)
	assert.Zero(t, m.len())
}

func TestChartMemo_Concurrent(t *testing.T) {
	t.Parallel()

	m := newChartMemo(16)
	engine := bazi.NewDefaultEngine()

	var g errgroup.Group
	for i := 0; i < 64; i++ {
		in := bazi.ChartInput{Year: 2000 + i%32, Month: 6, Day: 15, Hour: 12}
		g.Go(func() error {
			c, err := engine.Calculate(in)
			if err != nil {
				return err
			}
			m.put(in, c)
			if got, ok := m.get(in); ok && got.Input != in {
				t.Errorf("memo returned chart for %v, want %v", got.Input, in)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.LessOrEqual(t, m.len(), 16)
}
