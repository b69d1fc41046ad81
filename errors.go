package rawimg

import "errors"

var (
	// ErrInvalidGeometry is returned when a numeric field is missing or
	// cannot be parsed.
	ErrInvalidGeometry = errors.New("rawimg: invalid geometry")

	// ErrZeroDimension is returned when a width or height is zero.
	ErrZeroDimension = errors.New("rawimg: width or height cannot be zero")

	// ErrTileMismatch is returned when the image dimensions are not an
	// exact multiple of the tile dimensions.
	ErrTileMismatch = errors.New("rawimg: image size is not divisible by tile size")

	// ErrInvalidComponentOrder is returned when a component order string
	// has the wrong length or is missing a required channel.
	ErrInvalidComponentOrder = errors.New("rawimg: invalid component order")

	// ErrPaletteOffsetInvalid is returned when palette information is
	// missing or its offset cannot be parsed.
	ErrPaletteOffsetInvalid = errors.New("rawimg: invalid palette offset")

	// ErrSourceOpenFailed is returned when the source file cannot be
	// opened.
	ErrSourceOpenFailed = errors.New("rawimg: cannot open source")

	// ErrBufferUnderrun is returned when the source holds fewer bytes
	// than the requested geometry demands.
	ErrBufferUnderrun = errors.New("rawimg: not enough image data")
)
