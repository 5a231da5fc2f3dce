package mathutil

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestForwardAndYawRoundTrip(t *testing.T) {
	for _, yaw := range []float64{0, 0.5, math.Pi / 2, -2.0, math.Pi} {
		got := YawOf(Forward(yaw))
		if math.Abs(WrapAngle(got-yaw)) > 1e-9 {
			t.Errorf("YawOf(Forward(%f)) = %f", yaw, got)
		}
	}
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b cp.Vector
		want float64
	}{
		{"same direction", cp.Vector{X: 0, Y: 1}, cp.Vector{X: 0, Y: 3}, 0},
		{"perpendicular", cp.Vector{X: 1, Y: 0}, cp.Vector{X: 0, Y: 1}, math.Pi / 2},
		{"opposite", cp.Vector{X: 1, Y: 0}, cp.Vector{X: -2, Y: 0}, math.Pi},
		{"zero input", cp.Vector{}, cp.Vector{X: 1, Y: 0}, math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AngleBetween(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AngleBetween = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestPlanarIgnoresHeight(t *testing.T) {
	a := V3(0, 0, 0)
	b := V3(3, 10, 4)
	if d := PlanarDistance(a, b); math.Abs(d-5) > 1e-9 {
		t.Errorf("PlanarDistance = %f, want 5", d)
	}
	if d := a.Distance(b); d <= 5 {
		t.Errorf("Distance = %f, expected height to count", d)
	}
}

func TestNormalizeZero(t *testing.T) {
	if n := Normalize(cp.Vector{}); n.X != 0 || n.Y != 0 {
		t.Errorf("Normalize(zero) = %v", n)
	}
}

func TestLerpAngleShortestArc(t *testing.T) {
	from := math.Pi - 0.1
	to := -math.Pi + 0.1
	got := LerpAngle(from, to, 0.5)
	if math.Abs(math.Abs(got)-math.Pi) > 1e-9 {
		t.Errorf("LerpAngle crossed the long way: %f", got)
	}
}
