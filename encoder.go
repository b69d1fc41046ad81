package rawimg

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

// EncodeOptions selects the on-disk encoding for Encode. Tile is required
// for the tiled layouts and Depth for the indexed ones. Indexed output is
// written as the color table immediately followed by the index stream, so a
// matching Request uses palette offset 0 and an image offset of the table
// size.
type EncodeOptions struct {
	Format PixelFormat
	Order  string
	Endian Endian
	Layout Layout
	Depth  IndexDepth
	Tile   *TileInfo
}

// packFunc packs one RGBA color into the format's byte width.
type packFunc func(dst []byte, r, g, b, a uint8)

// packer returns the inverse of the format's fill function: channel values
// are truncated to the field width by shifting and placed at the position
// the component order dictates.
func (f PixelFormat) packer(ord componentOrder, endian Endian) packFunc {
	put := binary.LittleEndian.PutUint16
	if endian == BigEndian {
		put = binary.BigEndian.PutUint16
	}

	pack16 := func(shifts, widths []uint) packFunc {
		return func(dst []byte, r, g, b, a uint8) {
			var pixel uint16
			for i, c := range []uint8{r, g, b, a} {
				var p int
				switch i {
				case 0:
					p = ord.r
				case 1:
					p = ord.g
				case 2:
					p = ord.b
				case 3:
					p = ord.a
				}
				if p < 0 || p >= len(shifts) {
					continue
				}
				pixel |= uint16(c>>(8-widths[p])) << shifts[p]
			}
			put(dst, pixel)
		}
	}

	switch f {
	case RGBA8888:
		return func(dst []byte, r, g, b, a uint8) {
			dst[ord.r], dst[ord.g], dst[ord.b], dst[ord.a] = r, g, b, a
		}
	case RGB888:
		return func(dst []byte, r, g, b, _ uint8) {
			dst[ord.r], dst[ord.g], dst[ord.b] = r, g, b
		}
	case RGBA4444:
		return pack16([]uint{0, 4, 8, 12}, []uint{4, 4, 4, 4})
	case RGBA5551:
		return pack16([]uint{0, 5, 10, 15}, []uint{5, 5, 5, 1})
	case RGB565:
		return pack16([]uint{0, 5, 11}, []uint{5, 6, 5})
	case R8:
		return func(dst []byte, r, _, _, _ uint8) { dst[0] = r }
	case G8:
		return func(dst []byte, _, g, _, _ uint8) { dst[0] = g }
	case B8:
		return func(dst []byte, _, _, b, _ uint8) { dst[0] = b }
	default: // L8
		return func(dst []byte, r, g, b, _ uint8) {
			dst[0] = color.GrayModel.Convert(color.NRGBA{r, g, b, 255}).(color.Gray).Y
		}
	}
}

// tileOrder returns the pixel coordinates of the image in stream order: the
// whole image row-major for the linear layouts, or tile by tile in
// row-major tile order for the tiled ones.
func tileOrder(w, h int, tile *TileInfo) []image.Point {
	pts := make([]image.Point, 0, w*h)
	if tile == nil {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				pts = append(pts, image.Point{X: x, Y: y})
			}
		}
		return pts
	}
	for ty := 0; ty < h/tile.Height; ty++ {
		for tx := 0; tx < w/tile.Width; tx++ {
			for y := 0; y < tile.Height; y++ {
				for x := 0; x < tile.Width; x++ {
					pts = append(pts, image.Point{X: tx*tile.Width + x, Y: ty*tile.Height + y})
				}
			}
		}
	}
	return pts
}

// Encode writes m to w as raw pixel data, the exact inverse of Decode.
// Images with more colors than an indexed layout's table holds are
// quantized down first.
func Encode(w io.Writer, m image.Image, opts *EncodeOptions) error {
	ord, err := resolveOrder(opts.Format, opts.Order)
	if err != nil {
		return err
	}

	bounds := m.Bounds()
	var tile *TileInfo
	if opts.Layout.UsesTiles() {
		tile = opts.Tile
		if tile == nil || tile.Width <= 0 || tile.Height <= 0 {
			return ErrInvalidGeometry
		}
		if bounds.Dx()%tile.Width != 0 || bounds.Dy()%tile.Height != 0 {
			return ErrTileMismatch
		}
	}

	pack := opts.Format.packer(ord, opts.Endian)
	order := tileOrder(bounds.Dx(), bounds.Dy(), tile)

	if opts.Layout.UsesPalette() {
		return encodeIndexed(w, m, opts, pack, order)
	}

	bpp := opts.Format.BytesPerPixel()
	data := make([]byte, len(order)*bpp)
	for i, pt := range order {
		r, g, b, a := m.At(bounds.Min.X+pt.X, bounds.Min.Y+pt.Y).RGBA()
		pack(data[i*bpp:(i+1)*bpp], uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
	}

	_, err = w.Write(data)
	return err
}

// paletted reduces m to a paletted image of at most max colors, quantizing
// when the source palette is missing or too big.
func paletted(m image.Image, max int) *image.Paletted {
	b := m.Bounds()

	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > max {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, max), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}
	return pm
}

func encodeIndexed(w io.Writer, m image.Image, opts *EncodeOptions, pack packFunc, order []image.Point) error {
	count := opts.Depth.ColorCount()
	pm := paletted(m, count)

	// Color table first, padded to the full table size.
	bpp := opts.Format.BytesPerPixel()
	table := make([]byte, count*bpp)
	for i, c := range pm.Palette {
		r, g, b, a := c.RGBA()
		pack(table[i*bpp:(i+1)*bpp], uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
	}
	if _, err := w.Write(table); err != nil {
		return err
	}

	bounds := pm.Bounds()
	index := func(pt image.Point) uint8 {
		return pm.ColorIndexAt(bounds.Min.X+pt.X, bounds.Min.Y+pt.Y)
	}

	var data []byte
	switch opts.Depth {
	case Depth4:
		// Two pixels per byte, earlier pixel in the low nibble.
		data = make([]byte, len(order)/2)
		for i := range data {
			data[i] = index(order[i*2])&0x0f | index(order[i*2+1])&0x0f<<4
		}
	case Depth8:
		data = make([]byte, len(order))
		for i, pt := range order {
			data[i] = index(pt)
		}
	}

	_, err := w.Write(data)
	return err
}
