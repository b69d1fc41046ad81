package rawimg

import (
	"fmt"
	"strings"
)

// componentOrder holds the position of each channel within a decoded pixel,
// either a byte offset for the 8-bit-per-channel formats or a packed field
// index for the 16-bit formats. Channels the format does not carry are -1.
type componentOrder struct {
	r, g, b, a int
}

// resolveOrder validates a user-typed component order against the channels
// the format requires and returns the position of each channel. The order is
// case-insensitive and must contain every required channel exactly once;
// anything else fails with ErrInvalidComponentOrder rather than falling back
// to the canonical order. Formats with no orderable channels resolve
// trivially.
func resolveOrder(f PixelFormat, order string) (componentOrder, error) {
	required := f.Channels()
	if required == "" {
		return componentOrder{-1, -1, -1, -1}, nil
	}

	order = strings.ToLower(order)
	if len(order) != len(required) {
		return componentOrder{}, fmt.Errorf("%w: %q needs channels %q", ErrInvalidComponentOrder, order, required)
	}
	for _, c := range required {
		if strings.Count(order, string(c)) != 1 {
			return componentOrder{}, fmt.Errorf("%w: %q needs channels %q", ErrInvalidComponentOrder, order, required)
		}
	}

	co := componentOrder{
		r: strings.IndexByte(order, 'r'),
		g: strings.IndexByte(order, 'g'),
		b: strings.IndexByte(order, 'b'),
		a: strings.IndexByte(order, 'a'),
	}
	return co, nil
}
