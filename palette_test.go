package rawimg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grayPalette returns an RGBA8888-encoded color table where entry i is
// (i, i, i, 255).
func grayPalette(count int) []byte {
	table := make([]byte, 0, count*4)
	for i := 0; i < count; i++ {
		table = append(table, byte(i), byte(i), byte(i), 255)
	}
	return table
}

func TestDecodeIndexed4Bit(t *testing.T) {
	// Sixteen sequential indices through a 16 entry gray table come back
	// as their own index value. The low nibble of each byte is the
	// earlier pixel.
	source := grayPalette(16)
	for i := 0; i < 8; i++ {
		source = append(source, byte(i*2)|byte(i*2+1)<<4)
	}

	canvas, err := Decode(bytes.NewReader(source), &Request{
		Width:  16,
		Height: 1,
		Offset: 64,
		Format: RGBA8888,
		Order:  "rgba",
		Layout: Indexed,
		Palette: &PaletteInfo{
			Offset: 0,
			Depth:  Depth4,
		},
	})
	require.NoError(t, err)

	for i := 0; i < 16; i++ {
		assert.Equal(t, []byte{byte(i), byte(i), byte(i), 255}, canvas.Pix[i*4:i*4+4], "pixel %d", i)
	}
}

func TestDecodeIndexed8Bit(t *testing.T) {
	source := grayPalette(256)
	indices := []byte{0, 255, 128, 7}
	source = append(source, indices...)

	canvas, err := Decode(bytes.NewReader(source), &Request{
		Width:  2,
		Height: 2,
		Offset: 1024,
		Format: RGBA8888,
		Order:  "rgba",
		Layout: Indexed,
		Palette: &PaletteInfo{
			Offset: 0,
			Depth:  Depth8,
		},
	})
	require.NoError(t, err)

	for i, want := range indices {
		assert.Equal(t, []byte{want, want, want, 255}, canvas.Pix[i*4:i*4+4], "pixel %d", i)
	}
}

func TestDecodeIndexedPaletteFormat(t *testing.T) {
	// Palette entries are encoded in the active pixel format, here
	// RGB565 big-endian: entry 0 black, entry 1 white, the remainder of
	// the 256 entry table zero.
	source := make([]byte, 256*2)
	copy(source, []byte{0x00, 0x00, 0xff, 0xff})
	source = append(source, 0x01, 0x00) // indices 1, 0

	canvas, err := Decode(bytes.NewReader(source), &Request{
		Width:  2,
		Height: 1,
		Offset: 512,
		Format: RGB565,
		Order:  "rgb",
		Endian: BigEndian,
		Layout: Indexed,
		Palette: &PaletteInfo{
			Offset: 0,
			Depth:  Depth8,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []byte{255, 255, 255, 255, 0, 0, 0, 255}, canvas.Pix)
}

func TestDecodeIndexedMissingPalette(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil), &Request{
		Width:  2,
		Height: 2,
		Format: RGBA8888,
		Order:  "rgba",
		Layout: Indexed,
	})
	assert.True(t, errors.Is(err, ErrPaletteOffsetInvalid), "got %v", err)
}

func TestDecodeIndexedShortPalette(t *testing.T) {
	// A source too small to hold the color table is an underrun.
	_, err := Decode(bytes.NewReader(make([]byte, 16)), &Request{
		Width:  2,
		Height: 2,
		Format: RGBA8888,
		Order:  "rgba",
		Layout: Indexed,
		Palette: &PaletteInfo{
			Offset: 0,
			Depth:  Depth8,
		},
	})
	assert.True(t, errors.Is(err, ErrBufferUnderrun), "got %v", err)
}
