package rawimg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, f PixelFormat, order string, endian Endian, ignoreAlpha bool, data []byte) []byte {
	t.Helper()

	ord, err := resolveOrder(f, order)
	require.NoError(t, err)

	rgba := make([]byte, len(data)/f.BytesPerPixel()*4)
	f.filler(ord, endian, ignoreAlpha)(rgba, data)

	return rgba
}

func TestFillRGBA8888Identity(t *testing.T) {
	// With the canonical order and alpha honored, decoding is the
	// identity permutation.
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7, 250, 251, 252, 253}
	assert.Equal(t, data, fill(t, RGBA8888, "rgba", LittleEndian, false, data))
}

func TestFillRGBA8888(t *testing.T) {
	data := []byte{1, 2, 3, 4}

	assert.Equal(t, []byte{1, 2, 4, 3}, fill(t, RGBA8888, "rgab", LittleEndian, false, data))
	assert.Equal(t, []byte{3, 2, 1, 4}, fill(t, RGBA8888, "bgra", LittleEndian, false, data))
	assert.Equal(t, []byte{1, 2, 3, 255}, fill(t, RGBA8888, "rgba", LittleEndian, true, data))
}

func TestFillRGB888(t *testing.T) {
	data := []byte{10, 20, 30}

	assert.Equal(t, []byte{10, 20, 30, 255}, fill(t, RGB888, "rgb", LittleEndian, false, data))
	assert.Equal(t, []byte{30, 20, 10, 255}, fill(t, RGB888, "bgr", LittleEndian, false, data))
}

func TestFillRGBA4444(t *testing.T) {
	// 0x1234 little-endian: fields 4,3,2,1 from bit 0 up, scaled by 17.
	assert.Equal(t, []byte{4 * 17, 3 * 17, 2 * 17, 1 * 17},
		fill(t, RGBA4444, "rgba", LittleEndian, false, []byte{0x34, 0x12}))

	// Same word big-endian.
	assert.Equal(t, []byte{4 * 17, 3 * 17, 2 * 17, 1 * 17},
		fill(t, RGBA4444, "rgba", BigEndian, false, []byte{0x12, 0x34}))

	// The order string maps fields to channels.
	assert.Equal(t, []byte{1 * 17, 2 * 17, 3 * 17, 4 * 17},
		fill(t, RGBA4444, "abgr", LittleEndian, false, []byte{0x34, 0x12}))

	assert.Equal(t, []byte{4 * 17, 3 * 17, 2 * 17, 255},
		fill(t, RGBA4444, "rgba", LittleEndian, true, []byte{0x34, 0x12}))
}

func TestFillRGBA5551(t *testing.T) {
	// All bits set decodes to opaque white, all clear to transparent
	// black.
	assert.Equal(t, []byte{255, 255, 255, 255},
		fill(t, RGBA5551, "rgba", LittleEndian, false, []byte{0xff, 0xff}))
	assert.Equal(t, []byte{0, 0, 0, 0},
		fill(t, RGBA5551, "rgba", LittleEndian, false, []byte{0x00, 0x00}))

	// 5-bit fields scale by x8 plus value/32: 16 -> 132.
	word := uint16(16) // red field
	assert.Equal(t, []byte{132, 0, 0, 0},
		fill(t, RGBA5551, "rgba", LittleEndian, false, []byte{byte(word), byte(word >> 8)}))

	// The alpha bit scales to 0 or 255 with no rounding term.
	assert.Equal(t, []byte{0, 0, 0, 255},
		fill(t, RGBA5551, "rgba", LittleEndian, false, []byte{0x00, 0x80}))
}

func TestFillRGB565(t *testing.T) {
	assert.Equal(t, []byte{255, 255, 255, 255},
		fill(t, RGB565, "rgb", LittleEndian, false, []byte{0xff, 0xff}))
	assert.Equal(t, []byte{0, 0, 0, 255},
		fill(t, RGB565, "rgb", LittleEndian, false, []byte{0x00, 0x00}))

	// The 6-bit field scales by x4 plus value/64: 32 -> 130.
	word := uint16(32) << 5 // green field
	assert.Equal(t, []byte{0, 130, 0, 255},
		fill(t, RGB565, "rgb", LittleEndian, false, []byte{byte(word), byte(word >> 8)}))

	// Big-endian swaps the raw bytes before field extraction.
	assert.Equal(t, []byte{0, 130, 0, 255},
		fill(t, RGB565, "rgb", BigEndian, false, []byte{byte(word >> 8), byte(word)}))
}

func TestFillSingleChannel(t *testing.T) {
	data := []byte{0x42}

	assert.Equal(t, []byte{0x42, 0, 0, 255}, fill(t, R8, "", LittleEndian, false, data))
	assert.Equal(t, []byte{0, 0x42, 0, 255}, fill(t, G8, "", LittleEndian, false, data))
	assert.Equal(t, []byte{0, 0, 0x42, 255}, fill(t, B8, "", LittleEndian, false, data))
	assert.Equal(t, []byte{0x42, 0x42, 0x42, 255}, fill(t, L8, "", LittleEndian, false, data))
}

func TestExpand5(t *testing.T) {
	// Every 5-bit value must land on the x8 + v/32 curve, with the
	// endpoints exact.
	assert.Equal(t, uint8(0), expand5(0))
	assert.Equal(t, uint8(255), expand5(31))
	for v := uint16(0); v < 32; v++ {
		c := uint8(v) * 8
		assert.Equal(t, c+c/32, expand5(v))
	}
}

func TestExpand6(t *testing.T) {
	assert.Equal(t, uint8(0), expand6(0))
	assert.Equal(t, uint8(255), expand6(63))
	for v := uint16(0); v < 64; v++ {
		c := uint8(v) * 4
		assert.Equal(t, c+c/64, expand6(v))
	}
}
