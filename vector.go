package tempo

// Vector is a value that transitions can interpolate: it must support
// addition, subtraction and scaling, and be comparable so the animator can
// tell when a published position changed.
type Vector[T any] interface {
	comparable
	Add(T) T
	Sub(T) T
	Mul(float64) T
}

// Vec2 is a 2D vector, used for animating positions, offsets and sizes as a
// single property so both axes change in the same tick.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Color represents an RGBA color with components in [0, 1]. Not
// premultiplied. Interpolation is per component in this space.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// Add returns the component-wise sum.
func (c Color) Add(o Color) Color { return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A} }

// Sub returns the component-wise difference.
func (c Color) Sub(o Color) Color { return Color{c.R - o.R, c.G - o.G, c.B - o.B, c.A - o.A} }

// Mul scales every component by s.
func (c Color) Mul(s float64) Color { return Color{c.R * s, c.G * s, c.B * s, c.A * s} }

// Clamp limits every component to [0, 1]. Easings that overshoot (back,
// elastic) can push a color out of range mid-flight.
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// RGBA8 returns the color as 8-bit straight-alpha components.
func (c Color) RGBA8() (r, g, b, a uint8) {
	c = c.Clamp()
	return uint8(c.R*255 + 0.5), uint8(c.G*255 + 0.5), uint8(c.B*255 + 0.5), uint8(c.A*255 + 0.5)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
