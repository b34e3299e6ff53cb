package metrics

import (
	"github.com/san-kum/cellsim/internal/bio"
	"github.com/san-kum/cellsim/internal/rigid"
)

// Overlap is the fraction of objects intersecting at least one other object,
// using the same test as rigid.World.Overlaps.
type Overlap struct {
	name    string
	value   float64
	touched []bool
}

func NewOverlap() *Overlap {
	return &Overlap{name: "overlap"}
}

func (m *Overlap) Name() string   { return m.name }
func (m *Overlap) Value() float64 { return m.value }
func (m *Overlap) Reset()         { m.value = 0 }

func (m *Overlap) Observe(objs []bio.Object, t float64) {
	n := len(objs)
	if n == 0 {
		m.value = 0
		return
	}
	if cap(m.touched) < n {
		m.touched = make([]bool, n)
	}
	m.touched = m.touched[:n]
	for i := range m.touched {
		m.touched[i] = false
	}

	for i := 0; i < n; i++ {
		a := objs[i].RigidBody()
		for j := i + 1; j < n; j++ {
			if rigid.Overlapping(a, objs[j].RigidBody()) {
				m.touched[i], m.touched[j] = true, true
			}
		}
	}

	count := 0
	for _, hit := range m.touched {
		if hit {
			count++
		}
	}
	m.value = float64(count) / float64(n)
}
