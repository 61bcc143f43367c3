package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera is an orbiting perspective camera. It circles Target at
// Distance, oriented by Yaw (around the world Y axis) and Pitch
// (elevation), and projects world points into pixel coordinates.
type Camera struct {
	Target   r3.Vec
	Distance float64
	Yaw      float64 // radians
	Pitch    float64 // radians, clamped to just under +-pi/2
	FOV      float64 // vertical field of view, radians
}

const (
	minDistance = 0.5
	maxPitch    = math.Pi/2 - 0.01
)

// NewCamera returns a camera at a sensible default orientation.
func NewCamera() *Camera {
	return &Camera{
		Distance: 10,
		Yaw:      math.Pi / 6,
		Pitch:    math.Pi / 8,
		FOV:      math.Pi / 4,
	}
}

// Position returns the camera location in world space.
func (c *Camera) Position() r3.Vec {
	cp := math.Cos(c.Pitch)
	dir := r3.Vec{
		X: cp * math.Sin(c.Yaw),
		Y: math.Sin(c.Pitch),
		Z: cp * math.Cos(c.Yaw),
	}
	return r3.Add(c.Target, r3.Scale(c.Distance, dir))
}

// Orbit rotates the camera around the target.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Zoom scales the orbit distance; factor < 1 moves closer.
func (c *Camera) Zoom(factor float64) {
	c.Distance *= factor
	if c.Distance < minDistance {
		c.Distance = minDistance
	}
}

// FitBounds re-targets the center of the given box and backs off far
// enough that the whole box fits in view.
func (c *Camera) FitBounds(min, max r3.Vec) {
	c.Target = r3.Scale(0.5, r3.Add(min, max))
	radius := 0.5 * r3.Norm(r3.Sub(max, min))
	if radius < 1 {
		radius = 1
	}
	c.Distance = 1.4 * radius / math.Tan(c.FOV/2)
}

// basis returns the right/up/forward unit vectors of the view.
func (c *Camera) basis() (right, up, forward r3.Vec) {
	pos := c.Position()
	forward = r3.Unit(r3.Sub(c.Target, pos))
	worldUp := r3.Vec{Y: 1}
	if math.Abs(r3.Dot(forward, worldUp)) > 0.999 {
		worldUp = r3.Vec{X: 1}
	}
	right = r3.Unit(r3.Cross(forward, worldUp))
	up = r3.Cross(right, forward)
	return right, up, forward
}

// Projection captures a point projected into a w-by-h pixel viewport.
// Depth is the camera-space distance along the view axis; Scale maps
// world lengths at that depth to pixels.
type Projection struct {
	X, Y  float64
	Depth float64
	Scale float64
}

// Project maps a world point to the viewport. ok is false for points at
// or behind the near plane.
func (c *Camera) Project(p r3.Vec, w, h int) (Projection, bool) {
	right, up, forward := c.basis()
	d := r3.Sub(p, c.Position())

	depth := r3.Dot(d, forward)
	if depth < 1e-6 {
		return Projection{}, false
	}

	focal := float64(h) / 2 / math.Tan(c.FOV/2)
	scale := focal / depth
	return Projection{
		X:     float64(w)/2 + r3.Dot(d, right)*scale,
		Y:     float64(h)/2 - r3.Dot(d, up)*scale,
		Depth: depth,
		Scale: scale,
	}, true
}
