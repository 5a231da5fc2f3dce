package player

import (
	"math"

	"knightfall/internal/mathutil"

	"github.com/jakecoffman/cp"
)

// CameraParams configure the third-person orbit camera.
type CameraParams struct {
	Distance          float64
	Height            float64
	Lag               float64
	MinPitch          float64
	MaxPitch          float64
	InitialPitch      float64
	BaseRotationSpeed float64 // radians per pixel at sensitivity 1
	LookAtHeight      float64
}

// Camera orbits the player. Phi is the azimuth about +Y and Theta the
// elevation; at Phi 0 the camera sits on the player's +Z side.
type Camera struct {
	Phi      float64
	Theta    float64
	Position mathutil.Vec3
	Target   mathutil.Vec3

	params CameraParams
}

// NewCamera places a camera at its default angles snapped to focus.
func NewCamera(params CameraParams, focus mathutil.Vec3) Camera {
	c := Camera{params: params}
	c.Reset(focus)
	return c
}

// Params returns the camera tunables.
func (c *Camera) Params() CameraParams {
	return c.params
}

// SetParams swaps tunables and re-clamps the pitch.
func (c *Camera) SetParams(params CameraParams) {
	c.params = params
	c.Theta = mathutil.Clamp(c.Theta, params.MinPitch, params.MaxPitch)
}

// Rotate applies mouse motion scaled by sensitivity.
func (c *Camera) Rotate(dx, dy, sensitivity float64) {
	speed := c.params.BaseRotationSpeed * sensitivity
	c.Phi -= dx * speed
	c.Theta += dy * speed
	c.Theta = mathutil.Clamp(c.Theta, c.params.MinPitch, c.params.MaxPitch)
}

// Offset is the camera position relative to the player.
func (c *Camera) Offset() mathutil.Vec3 {
	d := c.params.Distance
	return mathutil.Vec3{
		X: d * math.Sin(c.Phi) * math.Cos(c.Theta),
		Y: d*math.Sin(c.Theta) + c.params.Height,
		Z: d * math.Cos(c.Phi) * math.Cos(c.Theta),
	}
}

// Follow moves the camera toward its orbit position around focus. The lerp
// factor min(1, lag/dt) snaps at low frame rates.
func (c *Camera) Follow(focus mathutil.Vec3, dt float64) {
	c.Target = focus.Add(c.Offset())
	if dt <= 0 || c.params.Lag >= dt {
		c.Position = c.Target
		return
	}
	c.Position = c.Position.Lerp(c.Target, c.params.Lag/dt)
}

// Snap places the camera on its orbit position with no lag.
func (c *Camera) Snap(focus mathutil.Vec3) {
	c.Target = focus.Add(c.Offset())
	c.Position = c.Target
}

// Reset restores the default angles and snaps to focus.
func (c *Camera) Reset(focus mathutil.Vec3) {
	c.Phi = 0
	c.Theta = mathutil.Clamp(c.params.InitialPitch, c.params.MinPitch, c.params.MaxPitch)
	c.Snap(focus)
}

// LookAt is the point the camera aims at.
func (c *Camera) LookAt(focus mathutil.Vec3) mathutil.Vec3 {
	return focus.Add(mathutil.V3(0, c.params.LookAtHeight, 0))
}

// Basis returns the camera's forward and right directions flattened onto
// the ground plane. Forward points away from the camera.
func (c *Camera) Basis() (forward, right cp.Vector) {
	forward = cp.Vector{X: -math.Sin(c.Phi), Y: -math.Cos(c.Phi)}
	right = cp.Vector{X: -forward.Y, Y: forward.X}
	return forward, right
}
