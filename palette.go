package rawimg

import (
	"fmt"
	"io"
)

// IndexDepth is the width of one palette index in bits.
type IndexDepth int

const (
	// Depth4 packs two indices per byte into a 16 entry table.
	Depth4 IndexDepth = 4
	// Depth8 stores one index per byte into a 256 entry table.
	Depth8 IndexDepth = 8
)

// ColorCount returns the size of the color table the depth addresses.
func (d IndexDepth) ColorCount() int {
	if d == Depth4 {
		return 16
	}
	return 256
}

// ParseIndexDepth accepts "4" or "8".
func ParseIndexDepth(s string) (IndexDepth, error) {
	switch s {
	case "4":
		return Depth4, nil
	case "8":
		return Depth8, nil
	}
	return 0, fmt.Errorf("rawimg: unknown index depth %q", s)
}

// PaletteInfo locates the color table within the source. Each entry is
// encoded in the active pixel format.
type PaletteInfo struct {
	Offset int64
	Depth  IndexDepth
}

// decodePalette reads the color table at its offset and expands it through
// the pixel format into an RGBA color array of ColorCount entries.
func decodePalette(r io.ReadSeeker, f PixelFormat, fill fillFunc, info *PaletteInfo) ([]byte, error) {
	count := info.Depth.ColorCount()

	data := make([]byte, count*f.BytesPerPixel())
	if _, err := r.Seek(info.Offset, io.SeekStart); err != nil {
		return nil, err
	}
	if err := readFull(r, data); err != nil {
		return nil, err
	}

	rgba := make([]byte, count*4)
	fill(rgba, data)

	return rgba, nil
}

// expandIndices resolves a palette index stream against the decoded color
// table. With 4-bit indices each source byte holds two pixels and the low
// nibble is the earlier one. Indices cannot exceed the table by
// construction: a nibble spans the 16 entry table and a byte spans the 256
// entry table.
func expandIndices(rgba, indices, palette []byte, depth IndexDepth) {
	switch depth {
	case Depth4:
		for i, b := range indices {
			lo := int(b&0x0f) * 4
			hi := int(b>>4) * 4
			dst := i * 8

			copy(rgba[dst:dst+4], palette[lo:lo+4])
			copy(rgba[dst+4:dst+8], palette[hi:hi+4])
		}
	case Depth8:
		for i, b := range indices {
			src := int(b) * 4
			dst := i * 4

			copy(rgba[dst:dst+4], palette[src:src+4])
		}
	}
}

// indexBytes returns the length in bytes of the index stream for n pixels.
func (d IndexDepth) indexBytes(n int) int {
	if d == Depth4 {
		return n / 2
	}
	return n
}
