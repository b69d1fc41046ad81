package rawimg

import (
	"fmt"
	"strings"
)

// PixelFormat identifies one of the supported fixed-width packed pixel
// encodings. Every property of a format (byte width, channel set, whether a
// component order applies, whether endianness applies) derives from the tag
// so a new variant cannot be added without defining all of them.
type PixelFormat int

const (
	// RGBA8888 is four channels, one byte each.
	RGBA8888 PixelFormat = iota
	// RGB888 is three channels, one byte each.
	RGB888
	// RGBA4444 is four 4-bit channels packed into two bytes.
	RGBA4444
	// RGBA5551 is three 5-bit channels and a 1-bit alpha packed into two
	// bytes.
	RGBA5551
	// RGB565 is 5-, 6- and 5-bit channels packed into two bytes.
	RGB565
	// R8 is a single byte stored in the red channel.
	R8
	// G8 is a single byte stored in the green channel.
	G8
	// B8 is a single byte stored in the blue channel.
	B8
	// L8 is a single luminance byte replicated to red, green and blue.
	L8
)

// PixelFormats lists every supported format.
var PixelFormats = []PixelFormat{
	RGBA8888, RGB888, RGBA4444, RGBA5551, RGB565, R8, G8, B8, L8,
}

func (f PixelFormat) String() string {
	switch f {
	case RGBA8888:
		return "RGBA8888"
	case RGB888:
		return "RGB888"
	case RGBA4444:
		return "RGBA4444"
	case RGBA5551:
		return "RGBA5551"
	case RGB565:
		return "RGB565"
	case R8:
		return "R8"
	case G8:
		return "G8"
	case B8:
		return "B8"
	case L8:
		return "L8"
	}
	return fmt.Sprintf("PixelFormat(%d)", int(f))
}

// ParsePixelFormat is the inverse of String. The comparison is
// case-insensitive.
func ParsePixelFormat(s string) (PixelFormat, error) {
	for _, f := range PixelFormats {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("rawimg: unknown pixel format %q", s)
}

// BytesPerPixel returns the width of one packed pixel in bytes.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case RGBA8888:
		return 4
	case RGB888:
		return 3
	case RGBA4444, RGBA5551, RGB565:
		return 2
	default:
		return 1
	}
}

// Channels returns the channel letters a component order must cover, in
// canonical order. Single-channel formats have no orderable channels.
func (f PixelFormat) Channels() string {
	switch f {
	case RGBA8888, RGBA4444, RGBA5551:
		return "rgba"
	case RGB888, RGB565:
		return "rgb"
	default:
		return ""
	}
}

// Orderable reports whether a component order applies to the format.
func (f PixelFormat) Orderable() bool {
	return f.Channels() != ""
}

// UsesAlpha reports whether the format carries an alpha channel.
func (f PixelFormat) UsesAlpha() bool {
	switch f {
	case RGBA8888, RGBA4444, RGBA5551:
		return true
	default:
		return false
	}
}

// UsesEndian reports whether endianness affects decoding. Only the two byte
// packed formats combine raw bytes into a wider value.
func (f PixelFormat) UsesEndian() bool {
	return f.BytesPerPixel() == 2
}

// DefaultOrder returns the canonical component order for the format.
func (f PixelFormat) DefaultOrder() string {
	return f.Channels()
}

// Endian selects how the two raw bytes of a packed format combine into a
// 16-bit value.
type Endian int

const (
	// LittleEndian is the default byte order.
	LittleEndian Endian = iota
	// BigEndian is the alternative byte order.
	BigEndian
)

func (e Endian) String() string {
	if e == BigEndian {
		return "BE"
	}
	return "LE"
}

// ParseEndian accepts "LE" or "BE", case-insensitively.
func ParseEndian(s string) (Endian, error) {
	switch {
	case strings.EqualFold(s, "LE"):
		return LittleEndian, nil
	case strings.EqualFold(s, "BE"):
		return BigEndian, nil
	}
	return 0, fmt.Errorf("rawimg: unknown endianness %q", s)
}

// Layout selects how pixel data is arranged in the source.
type Layout int

const (
	// Linear pixels are stored row-major with no indirection.
	Linear Layout = iota
	// Indexed pixels are palette indices resolved against a color table.
	Indexed
	// Tiled pixels are stored as a stream of fixed-size tiles.
	Tiled
	// TiledIndexed pixels are palette indices stored as a stream of
	// fixed-size tiles.
	TiledIndexed
)

func (l Layout) String() string {
	switch l {
	case Linear:
		return "linear"
	case Indexed:
		return "indexed"
	case Tiled:
		return "tiled"
	case TiledIndexed:
		return "tiled-indexed"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// ParseLayout is the inverse of String.
func ParseLayout(s string) (Layout, error) {
	for _, l := range []Layout{Linear, Indexed, Tiled, TiledIndexed} {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("rawimg: unknown layout %q", s)
}

// UsesPalette reports whether the layout resolves pixels through a color
// table.
func (l Layout) UsesPalette() bool {
	return l == Indexed || l == TiledIndexed
}

// UsesTiles reports whether the layout stores pixels as tiles.
func (l Layout) UsesTiles() bool {
	return l == Tiled || l == TiledIndexed
}
