package rawimg

import "io"

// TileInfo is the tile size in pixels for the tiled layouts. The image
// dimensions must be exact multiples of the tile dimensions.
type TileInfo struct {
	Width  int
	Height int
}

// decodeTiled reads the whole tile stream in one read, decodes each tile
// independently through render and scatters the tiles into the canvas in
// row-major tile order: tile k covers tile row k/tilesPerRow, tile column
// k%tilesPerRow.
func decodeTiled(r io.ReadSeeker, req *Request, render fillFunc, bytesPerTile int) (*Canvas, error) {
	tw, th := req.Tile.Width, req.Tile.Height
	tilesPerRow := req.Width / tw
	tileCount := tilesPerRow * (req.Height / th)

	data := make([]byte, tileCount*bytesPerTile)
	if _, err := r.Seek(req.Offset, io.SeekStart); err != nil {
		return nil, err
	}
	if err := readFull(r, data); err != nil {
		return nil, err
	}

	tiles := make([][]byte, tileCount)
	for k := range tiles {
		tiles[k] = make([]byte, tw*th*4)
		render(tiles[k], data[k*bytesPerTile:(k+1)*bytesPerTile])
	}

	c := NewCanvas(req.Width, req.Height)
	for y := 0; y < req.Height; y++ {
		ty := y / th
		for tx := 0; tx < tilesPerRow; tx++ {
			tile := tiles[ty*tilesPerRow+tx]

			src := (y % th) * tw * 4
			dst := (y*req.Width + tx*tw) * 4

			copy(c.Pix[dst:dst+tw*4], tile[src:src+tw*4])
		}
	}

	return c, nil
}
