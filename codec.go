package rawimg

import "encoding/binary"

// fillFunc expands a stream of packed pixels into the rgba buffer, four
// bytes per pixel. The data length is always an exact multiple of the pixel
// width; short sources are rejected before any fill runs.
type fillFunc func(rgba, data []byte)

func (e Endian) uint16(b []byte) uint16 {
	if e == BigEndian {
		return binary.BigEndian.Uint16(b)
	}
	return binary.LittleEndian.Uint16(b)
}

// expand5 widens a 5-bit channel value to 8 bits. Multiplying by 8 maps the
// field onto the top of the byte and the value/32 term folds the high bits
// back in so 31 maps to 255 exactly.
func expand5(v uint16) uint8 {
	c := uint8(v&0x1f) * 8
	return c + c/32
}

// expand6 widens a 6-bit channel value to 8 bits; 63*4 + 252/64 = 255.
func expand6(v uint16) uint8 {
	c := uint8(v&0x3f) * 4
	return c + c/64
}

// filler returns the fill function for the format with the component order,
// endianness and alpha handling baked in. The order must already have been
// resolved against the format.
func (f PixelFormat) filler(ord componentOrder, endian Endian, ignoreAlpha bool) fillFunc {
	switch f {
	case RGBA8888:
		return func(rgba, data []byte) {
			for i, n := 0, len(data)/4; i < n; i++ {
				chunk := data[i*4 : i*4+4]

				a := chunk[ord.a]
				if ignoreAlpha {
					a = 255
				}

				rgba[i*4] = chunk[ord.r]
				rgba[i*4+1] = chunk[ord.g]
				rgba[i*4+2] = chunk[ord.b]
				rgba[i*4+3] = a
			}
		}
	case RGB888:
		return func(rgba, data []byte) {
			for i, n := 0, len(data)/3; i < n; i++ {
				chunk := data[i*3 : i*3+3]

				rgba[i*4] = chunk[ord.r]
				rgba[i*4+1] = chunk[ord.g]
				rgba[i*4+2] = chunk[ord.b]
				rgba[i*4+3] = 255
			}
		}
	case RGBA4444:
		return func(rgba, data []byte) {
			var c [4]uint8
			for i, n := 0, len(data)/2; i < n; i++ {
				pixel := endian.uint16(data[i*2 : i*2+2])

				// 15*17 = 255, an exact 4 to 8 bit expansion.
				c[0] = uint8(pixel&0xf) * 17
				c[1] = uint8(pixel>>4&0xf) * 17
				c[2] = uint8(pixel>>8&0xf) * 17
				c[3] = uint8(pixel>>12&0xf) * 17

				a := c[ord.a]
				if ignoreAlpha {
					a = 255
				}

				rgba[i*4] = c[ord.r]
				rgba[i*4+1] = c[ord.g]
				rgba[i*4+2] = c[ord.b]
				rgba[i*4+3] = a
			}
		}
	case RGBA5551:
		return func(rgba, data []byte) {
			var c [4]uint8
			for i, n := 0, len(data)/2; i < n; i++ {
				pixel := endian.uint16(data[i*2 : i*2+2])

				c[0] = expand5(pixel)
				c[1] = expand5(pixel >> 5)
				c[2] = expand5(pixel >> 10)
				c[3] = uint8(pixel>>15) * 255

				a := c[ord.a]
				if ignoreAlpha {
					a = 255
				}

				rgba[i*4] = c[ord.r]
				rgba[i*4+1] = c[ord.g]
				rgba[i*4+2] = c[ord.b]
				rgba[i*4+3] = a
			}
		}
	case RGB565:
		return func(rgba, data []byte) {
			var c [3]uint8
			for i, n := 0, len(data)/2; i < n; i++ {
				pixel := endian.uint16(data[i*2 : i*2+2])

				c[0] = expand5(pixel)
				c[1] = expand6(pixel >> 5)
				c[2] = expand5(pixel >> 11)

				rgba[i*4] = c[ord.r]
				rgba[i*4+1] = c[ord.g]
				rgba[i*4+2] = c[ord.b]
				rgba[i*4+3] = 255
			}
		}
	case R8:
		return fillSingle(0)
	case G8:
		return fillSingle(1)
	case B8:
		return fillSingle(2)
	default: // L8
		return func(rgba, data []byte) {
			for i, b := range data {
				rgba[i*4] = b
				rgba[i*4+1] = b
				rgba[i*4+2] = b
				rgba[i*4+3] = 255
			}
		}
	}
}

// fillSingle copies the lone byte of each pixel into one channel, leaving
// the other two color channels zero.
func fillSingle(channel int) fillFunc {
	return func(rgba, data []byte) {
		for i, b := range data {
			rgba[i*4+channel] = b
			rgba[i*4+3] = 255
		}
	}
}
