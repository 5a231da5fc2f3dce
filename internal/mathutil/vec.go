package mathutil

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec3 is a world-space vector. Y is up and the ground plane is XZ.
type Vec3 struct {
	X, Y, Z float64
}

// V3 builds a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Distance is the full 3-D distance between two points.
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Lerp moves v toward o by fraction t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

// Planar projects v onto the ground plane. The cp.Vector Y component carries world Z.
func (v Vec3) Planar() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

// WithPlanar returns v with its X and Z replaced by p, keeping height.
func (v Vec3) WithPlanar(p cp.Vector) Vec3 {
	return Vec3{X: p.X, Y: v.Y, Z: p.Y}
}

// PlanarDistance is the distance between a and b ignoring height.
func PlanarDistance(a, b Vec3) float64 {
	return a.Planar().Distance(b.Planar())
}

// Normalize returns the unit vector of p, or the zero vector when p has no length.
func Normalize(p cp.Vector) cp.Vector {
	l := p.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return p.Mult(1 / l)
}

// Forward is the planar unit facing vector for a yaw about +Y.
// Yaw 0 faces +Z.
func Forward(yaw float64) cp.Vector {
	return cp.Vector{X: math.Sin(yaw), Y: math.Cos(yaw)}
}

// YawOf returns the yaw that faces along dir.
func YawOf(dir cp.Vector) float64 {
	return math.Atan2(dir.X, dir.Y)
}

// AngleBetween returns the unsigned angle between two planar vectors.
// A zero-length input yields Pi/2, so a target straight overhead sits on the
// edge of a 180 degree cone and outside any narrower one.
func AngleBetween(a, b cp.Vector) float64 {
	denom := math.Sqrt(a.LengthSq() * b.LengthSq())
	if denom == 0 {
		return math.Pi / 2
	}
	return math.Acos(Clamp(a.Dot(b)/denom, -1, 1))
}
