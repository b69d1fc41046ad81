package rawimg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixelFormatProperties(t *testing.T) {
	tables := []struct {
		format   PixelFormat
		bytes    int
		channels string
		alpha    bool
		endian   bool
	}{
		{RGBA8888, 4, "rgba", true, false},
		{RGB888, 3, "rgb", false, false},
		{RGBA4444, 2, "rgba", true, true},
		{RGBA5551, 2, "rgba", true, true},
		{RGB565, 2, "rgb", false, true},
		{R8, 1, "", false, false},
		{G8, 1, "", false, false},
		{B8, 1, "", false, false},
		{L8, 1, "", false, false},
	}

	for _, table := range tables {
		t.Run(table.format.String(), func(t *testing.T) {
			assert.Equal(t, table.bytes, table.format.BytesPerPixel())
			assert.Equal(t, table.channels, table.format.Channels())
			assert.Equal(t, table.channels != "", table.format.Orderable())
			assert.Equal(t, table.alpha, table.format.UsesAlpha())
			assert.Equal(t, table.endian, table.format.UsesEndian())
			assert.Equal(t, table.channels, table.format.DefaultOrder())
		})
	}
}

func TestParsePixelFormat(t *testing.T) {
	for _, f := range PixelFormats {
		got, err := ParsePixelFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParsePixelFormat("rgba8888")
	require.NoError(t, err)
	assert.Equal(t, RGBA8888, got)

	_, err = ParsePixelFormat("RGBA1010102")
	assert.Error(t, err)
}

func TestParseEndian(t *testing.T) {
	for s, want := range map[string]Endian{"LE": LittleEndian, "le": LittleEndian, "BE": BigEndian, "be": BigEndian} {
		got, err := ParseEndian(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseEndian("middle")
	assert.Error(t, err)
}

func TestParseLayout(t *testing.T) {
	for _, l := range []Layout{Linear, Indexed, Tiled, TiledIndexed} {
		got, err := ParseLayout(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}

	_, err := ParseLayout("planar")
	assert.Error(t, err)
}

func TestLayoutProperties(t *testing.T) {
	assert.False(t, Linear.UsesPalette())
	assert.False(t, Linear.UsesTiles())
	assert.True(t, Indexed.UsesPalette())
	assert.False(t, Indexed.UsesTiles())
	assert.False(t, Tiled.UsesPalette())
	assert.True(t, Tiled.UsesTiles())
	assert.True(t, TiledIndexed.UsesPalette())
	assert.True(t, TiledIndexed.UsesTiles())
}

func TestIndexDepth(t *testing.T) {
	assert.Equal(t, 16, Depth4.ColorCount())
	assert.Equal(t, 256, Depth8.ColorCount())

	d, err := ParseIndexDepth("4")
	require.NoError(t, err)
	assert.Equal(t, Depth4, d)

	d, err = ParseIndexDepth("8")
	require.NoError(t, err)
	assert.Equal(t, Depth8, d)

	_, err = ParseIndexDepth("2")
	assert.Error(t, err)
}
