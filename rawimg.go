/*
Package rawimg decodes raw, headerless binary data into RGBA images.

There is no container format to parse; the caller supplies the geometry
(width, height, byte offset), a pixel format, a component order, and a data
layout, and the decoder reconstructs the image or fails with a descriptive
error. Linear, palette-indexed, tiled, and tiled-indexed layouts are
supported, with 4-bit and 8-bit palette indices and 1, 2, 3, or 4 byte
fixed-width pixel encodings.

The package also implements the inverse transform for writing images back
out as raw pixel data, and a small SQLite-backed preset database so the
parameters for known dumps can be stored and matched by file checksum.
*/
package rawimg

import "image"

// Canvas is a decoded image: a width by height row-major RGBA buffer with
// four bytes per pixel.
type Canvas struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewCanvas returns a zeroed canvas of the given dimensions.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// Image wraps the canvas buffer as an *image.NRGBA without copying.
func (c *Canvas) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    c.Pix,
		Stride: c.Width * 4,
		Rect:   image.Rect(0, 0, c.Width, c.Height),
	}
}
