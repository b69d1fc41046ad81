package rawimg

import (
	"fmt"
	"strconv"
)

// Geometry is the validated image geometry: dimensions in pixels and the
// byte offset of the pixel data within the source.
type Geometry struct {
	Width  int
	Height int
	Offset int64
}

func parseDimension(name, s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidGeometry, name, s)
	}
	return int(n), nil
}

func parseOffset(name, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidGeometry, name, s)
	}
	return n, nil
}

// ParseGeometry parses user-supplied width, height and offset strings.
// Non-numeric or empty fields fail with ErrInvalidGeometry; a zero width or
// height fails with ErrZeroDimension.
func ParseGeometry(width, height, offset string) (Geometry, error) {
	w, err := parseDimension("width", width)
	if err != nil {
		return Geometry{}, err
	}
	h, err := parseDimension("height", height)
	if err != nil {
		return Geometry{}, err
	}
	off, err := parseOffset("offset", offset)
	if err != nil {
		return Geometry{}, err
	}
	if w == 0 || h == 0 {
		return Geometry{}, ErrZeroDimension
	}
	return Geometry{Width: w, Height: h, Offset: off}, nil
}

// ParseTileSize parses user-supplied tile width and height strings. Both
// must be positive.
func ParseTileSize(width, height string) (TileInfo, error) {
	w, err := parseDimension("tile width", width)
	if err != nil {
		return TileInfo{}, err
	}
	h, err := parseDimension("tile height", height)
	if err != nil {
		return TileInfo{}, err
	}
	if w == 0 || h == 0 {
		return TileInfo{}, ErrZeroDimension
	}
	return TileInfo{Width: w, Height: h}, nil
}

// ParsePaletteOffset parses a user-supplied palette offset string.
func ParsePaletteOffset(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrPaletteOffsetInvalid, s)
	}
	return n, nil
}
