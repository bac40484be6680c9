package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/tempo"
)

// whitePixel is a 1x1 white image scaled and tinted to draw solid shapes.
// Created on first use so importing the package does not touch the GPU.
var whitePixel *ebiten.Image

// FillRect draws a solid rectangle centred on (cx, cy), rotated by angle
// radians and tinted with c. Alpha is applied premultiplied, as Ebitengine
// expects.
func FillRect(dst *ebiten.Image, cx, cy, w, h, angle float64, c tempo.Color) {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	c = c.Clamp()

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(cx, cy)
	a := float32(c.A)
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
	dst.DrawImage(whitePixel, &op)
}

// RGBA converts c to a premultiplied color.RGBA for Image.Fill and friends.
func RGBA(c tempo.Color) color.RGBA {
	c = c.Clamp()
	return color.RGBA{
		R: uint8(c.R*c.A*255 + 0.5),
		G: uint8(c.G*c.A*255 + 0.5),
		B: uint8(c.B*c.A*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}
