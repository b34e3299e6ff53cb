package bio

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestVolumeAndMass(t *testing.T) {
	tests := []struct {
		radius, density float64
	}{
		{1, 1},
		{5, 1.03},
		{0.5, 0.9},
		{12.25, 2.5},
	}

	for _, tt := range tests {
		wantV := 4.0 / 3.0 * math.Pi * math.Pow(tt.radius, 3)
		v := Volume(tt.radius)
		if !almostEqual(v, wantV, 1e-9*wantV) {
			t.Errorf("Volume(%v) = %v, want %v", tt.radius, v, wantV)
		}
		m := Mass(tt.radius, tt.density)
		if !almostEqual(m, tt.density*wantV, 1e-9*wantV) {
			t.Errorf("Mass(%v, %v) = %v, want %v", tt.radius, tt.density, m, tt.density*wantV)
		}
		if Volume(tt.radius) != v || Mass(tt.radius, tt.density) != m {
			t.Errorf("repeated calls differ for r=%v", tt.radius)
		}
	}
}

func TestBuoyantAccelerationSign(t *testing.T) {
	tests := []struct {
		name         string
		mass, volume float64
		sign         int
	}{
		{"lighter than fluid", 400, 500, 1},
		{"denser than fluid", 600, 500, -1},
		{"neutral", 500, 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := BuoyantAcceleration(tt.mass, tt.volume)
			switch {
			case tt.sign > 0 && a <= 0:
				t.Errorf("expected positive acceleration, got %v", a)
			case tt.sign < 0 && a >= 0:
				t.Errorf("expected negative acceleration, got %v", a)
			case tt.sign == 0 && a != 0:
				t.Errorf("expected zero acceleration, got %v", a)
			}
		})
	}
}

func TestDefaultCellScenario(t *testing.T) {
	k := MustKind(DefaultCellParams())

	if !almostEqual(k.Volume(), 523.6, 0.01) {
		t.Errorf("volume = %v, want ~523.6", k.Volume())
	}
	if !almostEqual(k.Mass(), 539.3, 0.01) {
		t.Errorf("mass = %v, want ~539.3", k.Mass())
	}
	a := BuoyantAcceleration(k.Mass(), k.Volume())
	// 9.8 * (523.599 - 539.307) / 1062.906
	if !almostEqual(a, -0.1448, 1e-3) {
		t.Errorf("acceleration = %v, want ~-0.1448", a)
	}
}

func TestLocalInertia(t *testing.T) {
	k := MustKind(DefaultCellParams())
	want := 0.4 * k.Mass() * 25
	got := k.LocalInertia()
	for i := 0; i < 3; i++ {
		if !almostEqual(got[i], want, 1e-9) {
			t.Errorf("inertia[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestSampleVelocityBound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const maxSpeed = 0.5
	for i := 0; i < 10000; i++ {
		v := SampleVelocity(rng, maxSpeed, 0, 360)
		if v.Len() > maxSpeed+1e-12 {
			t.Fatalf("draw %d: |v| = %v exceeds %v", i, v.Len(), maxSpeed)
		}
	}
}

func TestSampleVelocityDecomposition(t *testing.T) {
	// magnitude 0.5*1, horizontal 90°, vertical 0°
	seq := &sequence{vals: []float64{0.5, 0.25, 0}}
	v := SampleVelocity(seq, 1.0, 0, 360)

	if !almostEqual(v.Len(), 0.5, 1e-12) {
		t.Errorf("|v| = %v, want 0.5", v.Len())
	}
	if !almostEqual(v.X(), 0, 1e-12) || !almostEqual(v.Y(), 0, 1e-12) || !almostEqual(v.Z(), 0.5, 1e-12) {
		t.Errorf("v = %v, want {0 0 0.5}", v)
	}

	// straight up: vertical 90°
	seq = &sequence{vals: []float64{1, 0, 0.25}}
	v = SampleVelocity(seq, 2.0, 0, 360)
	if !almostEqual(v.Y(), 2.0, 1e-12) {
		t.Errorf("v = %v, want {0 2 0}", v)
	}
}

func TestNewKindInvalidGeometry(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*KindParams)
	}{
		{"zero radius", func(p *KindParams) { p.Radius = 0 }},
		{"negative radius", func(p *KindParams) { p.Radius = -1 }},
		{"zero density", func(p *KindParams) { p.Density = 0 }},
		{"negative density", func(p *KindParams) { p.Density = -0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultCellParams()
			tt.mod(&p)
			_, err := NewKind(p)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}

func TestNewKindRejectsBadMotion(t *testing.T) {
	p := DefaultCellParams()
	p.MaxVelChange = -1
	if _, err := NewKind(p); err == nil {
		t.Error("expected error for negative max velocity change")
	}

	p = DefaultCellParams()
	p.AngleMin, p.AngleMax = 90, 10
	if _, err := NewKind(p); err == nil {
		t.Error("expected error for inverted angle range")
	}
}
