package rawimg

import (
	"fmt"
	"io"
	"os"
)

// Request carries every parameter of one decode: geometry, pixel encoding
// and data layout. It is built fresh per invocation; only the returned
// Canvas outlives the call.
type Request struct {
	Width       int
	Height      int
	Offset      int64
	Format      PixelFormat
	Order       string
	Endian      Endian
	IgnoreAlpha bool
	Layout      Layout
	Palette     *PaletteInfo // required for the indexed layouts
	Tile        *TileInfo    // required for the tiled layouts
}

// readFull fills b from r, mapping a short read to ErrBufferUnderrun so an
// undersized source never yields a truncated canvas.
func readFull(r io.Reader, b []byte) error {
	if _, err := io.ReadFull(r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: failed to fill %d byte buffer", ErrBufferUnderrun, len(b))
		}
		return err
	}
	return nil
}

// Decode reads raw pixel data from r according to req and reconstructs the
// image. Validation runs before any read, in order: geometry, component
// order, palette information, tile divisibility. Any failure aborts the
// whole decode; there is no partial result.
func Decode(r io.ReadSeeker, req *Request) (*Canvas, error) {
	if req.Width <= 0 || req.Height <= 0 {
		return nil, ErrZeroDimension
	}

	ord, err := resolveOrder(req.Format, req.Order)
	if err != nil {
		return nil, err
	}

	if req.Layout.UsesPalette() {
		if req.Palette == nil || req.Palette.Offset < 0 {
			return nil, fmt.Errorf("%w: palette information is missing", ErrPaletteOffsetInvalid)
		}
	}

	if req.Layout.UsesTiles() {
		if req.Tile == nil || req.Tile.Width <= 0 || req.Tile.Height <= 0 {
			return nil, fmt.Errorf("%w: tile size is missing", ErrInvalidGeometry)
		}
		if req.Width%req.Tile.Width != 0 || req.Height%req.Tile.Height != 0 {
			return nil, ErrTileMismatch
		}
	}

	fill := req.Format.filler(ord, req.Endian, req.IgnoreAlpha)

	// render turns one chunk of source bytes into RGBA and pixelBytes
	// sizes the chunk, so the linear and tiled paths share the same
	// decode logic whether or not a palette is involved.
	render := fill
	pixelBytes := func(n int) int { return n * req.Format.BytesPerPixel() }

	if req.Layout.UsesPalette() {
		palette, err := decodePalette(r, req.Format, fill, req.Palette)
		if err != nil {
			return nil, err
		}
		depth := req.Palette.Depth
		render = func(rgba, data []byte) {
			expandIndices(rgba, data, palette, depth)
		}
		pixelBytes = depth.indexBytes
	}

	if req.Layout.UsesTiles() {
		return decodeTiled(r, req, render, pixelBytes(req.Tile.Width*req.Tile.Height))
	}

	data := make([]byte, pixelBytes(req.Width*req.Height))
	if _, err := r.Seek(req.Offset, io.SeekStart); err != nil {
		return nil, err
	}
	if err := readFull(r, data); err != nil {
		return nil, err
	}

	c := NewCanvas(req.Width, req.Height)
	render(c.Pix, data)

	return c, nil
}

// DecodeFile decodes the file at path according to req.
func DecodeFile(path string, req *Request) (*Canvas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceOpenFailed, err)
	}
	defer f.Close()

	return Decode(f, req)
}
