package service

import (
	"sync"

	"github.com/phrazzld/bazi-api/internal/domain/bazi"
)

// chartMemo is a bounded, concurrency-safe memo of computed charts. When
// full it evicts the oldest entry. Charts are values, so handing out copies
// is safe.
type chartMemo struct {
	mu       sync.Mutex
	capacity int
	entries  map[bazi.ChartInput]bazi.Chart
	order    []bazi.ChartInput
	next     int
}

func newChartMemo(capacity int) *chartMemo {
	if capacity <= 0 {
		return nil
	}
	return &chartMemo{
		capacity: capacity,
		entries:  make(map[bazi.ChartInput]bazi.Chart, capacity),
		order:    make([]bazi.ChartInput, 0, capacity),
	}
}

// get is safe on a nil memo, which never hits.
func (m *chartMemo) get(in bazi.ChartInput) (bazi.Chart, bool) {
	if m == nil {
		return bazi.Chart{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.entries[in]
	return c, ok
}

func (m *chartMemo) put(in bazi.ChartInput, c bazi.Chart) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[in]; ok {
		return
	}
	if len(m.order) < m.capacity {
		m.order = append(m.order, in)
	} else {
		delete(m.entries, m.order[m.next])
		m.order[m.next] = in
		m.next = (m.next + 1) % m.capacity
	}
	m.entries[in] = c
}

func (m *chartMemo) len() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
