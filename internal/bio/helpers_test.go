package bio

import (
	"math"
	"math/rand"
)

type testContext struct {
	rng     *rand.Rand
	nextID  int
	objects []Object
}

func newTestContext(seed int64) *testContext {
	return &testContext{rng: rand.New(rand.NewSource(seed))}
}

func (c *testContext) Float64() float64 { return c.rng.Float64() }

func (c *testContext) NextID() int {
	id := c.nextID
	c.nextID++
	return id
}

func (c *testContext) AddBioObject(o Object) { c.objects = append(c.objects, o) }

// sequence replays fixed draws, cycling when exhausted.
type sequence struct {
	vals []float64
	i    int
}

func (s *sequence) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
