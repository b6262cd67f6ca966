package model

// Color is a linear RGBA tint.
type Color struct {
	R, G, B, A float32
}

// Common tints.
var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

// SetRed sets the red channel.
func (c *Color) SetRed(v float32) { c.R = v }

// SetGreen sets the green channel.
func (c *Color) SetGreen(v float32) { c.G = v }

// SetBlue sets the blue channel.
func (c *Color) SetBlue(v float32) { c.B = v }

// SetAlpha sets the alpha channel.
func (c *Color) SetAlpha(v float32) { c.A = v }

// Array returns the color as [4]float32 for shader uniforms.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}
