package rawimg

import (
	"database/sql"
	"encoding/xml"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// PresetDB stores named decode presets, each a full set of Request
// parameters, plus file checksums so known dumps resolve their geometry
// automatically.
type PresetDB struct {
	db *sql.DB
}

// NewPresetDB opens (creating if necessary) the preset database at file.
func NewPresetDB(file string) (*PresetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS preset (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL, offset INTEGER NOT NULL, format TEXT NOT NULL, component_order TEXT NOT NULL, endian TEXT NOT NULL, ignore_alpha INTEGER NOT NULL, layout TEXT NOT NULL, palette_offset INTEGER, palette_depth INTEGER, tile_width INTEGER, tile_height INTEGER)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS checksum (preset_id INTEGER NOT NULL, crc TEXT NOT NULL UNIQUE, FOREIGN KEY(preset_id) REFERENCES preset(id))"); err != nil {
		return nil, err
	}

	return &PresetDB{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (db *PresetDB) Close() error {
	return db.db.Close()
}

// Save stores req under name, replacing any existing preset with that name.
// The preset row is updated in place so its checksum associations survive.
func (db *PresetDB) Save(name string, req *Request) error {
	var paletteOffset, paletteDepth, tileWidth, tileHeight sql.NullInt64
	if req.Palette != nil {
		paletteOffset = sql.NullInt64{Int64: req.Palette.Offset, Valid: true}
		paletteDepth = sql.NullInt64{Int64: int64(req.Palette.Depth), Valid: true}
	}
	if req.Tile != nil {
		tileWidth = sql.NullInt64{Int64: int64(req.Tile.Width), Valid: true}
		tileHeight = sql.NullInt64{Int64: int64(req.Tile.Height), Valid: true}
	}

	_, err := db.db.Exec("INSERT INTO preset (name, width, height, offset, format, component_order, endian, ignore_alpha, layout, palette_offset, palette_depth, tile_width, tile_height) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) ON CONFLICT (name) DO UPDATE SET width = excluded.width, height = excluded.height, offset = excluded.offset, format = excluded.format, component_order = excluded.component_order, endian = excluded.endian, ignore_alpha = excluded.ignore_alpha, layout = excluded.layout, palette_offset = excluded.palette_offset, palette_depth = excluded.palette_depth, tile_width = excluded.tile_width, tile_height = excluded.tile_height",
		name, req.Width, req.Height, req.Offset, req.Format.String(), req.Order, req.Endian.String(), req.IgnoreAlpha, req.Layout.String(), paletteOffset, paletteDepth, tileWidth, tileHeight)
	return err
}

// AddChecksum associates a file CRC with the named preset.
func (db *PresetDB) AddChecksum(name, crc string) error {
	var id int64
	if err := db.db.QueryRow("SELECT id FROM preset WHERE name = ?", name).Scan(&id); err != nil {
		return err
	}

	_, err := db.db.Exec("INSERT OR REPLACE INTO checksum (preset_id, crc) VALUES (?, ?)", id, strings.ToUpper(crc))
	return err
}

func scanPreset(row *sql.Row) (*Request, error) {
	var req Request
	var format, order, endian, layout string
	var paletteOffset, paletteDepth, tileWidth, tileHeight sql.NullInt64

	switch err := row.Scan(&req.Width, &req.Height, &req.Offset, &format, &order, &endian, &req.IgnoreAlpha, &layout, &paletteOffset, &paletteDepth, &tileWidth, &tileHeight); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
	default:
		return nil, err
	}

	var err error
	if req.Format, err = ParsePixelFormat(format); err != nil {
		return nil, err
	}
	req.Order = order
	if req.Endian, err = ParseEndian(endian); err != nil {
		return nil, err
	}
	if req.Layout, err = ParseLayout(layout); err != nil {
		return nil, err
	}
	if paletteOffset.Valid && paletteDepth.Valid {
		req.Palette = &PaletteInfo{
			Offset: paletteOffset.Int64,
			Depth:  IndexDepth(paletteDepth.Int64),
		}
	}
	if tileWidth.Valid && tileHeight.Valid {
		req.Tile = &TileInfo{
			Width:  int(tileWidth.Int64),
			Height: int(tileHeight.Int64),
		}
	}

	return &req, nil
}

// Find returns the preset stored under name, or nil if there is none.
func (db *PresetDB) Find(name string) (*Request, error) {
	return scanPreset(db.db.QueryRow("SELECT width, height, offset, format, component_order, endian, ignore_alpha, layout, palette_offset, palette_depth, tile_width, tile_height FROM preset WHERE name = ?", name))
}

// FindByCRC returns the name and preset associated with a file CRC, or an
// empty name if there is none.
func (db *PresetDB) FindByCRC(crc string) (string, *Request, error) {
	var name string
	switch err := db.db.QueryRow("SELECT p.name FROM checksum AS c JOIN preset AS p ON c.preset_id = p.id WHERE c.crc = ?", strings.ToUpper(crc)).Scan(&name); err {
	case sql.ErrNoRows:
		return "", nil, nil
	case nil:
	default:
		return "", nil, err
	}

	req, err := db.Find(name)
	return name, req, err
}

// List returns the names of every stored preset.
func (db *PresetDB) List() ([]string, error) {
	rows, err := db.db.Query("SELECT name FROM preset ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

type xmlCatalog struct {
	XMLName   xml.Name      `xml:"PresetDB"`
	Presets   []xmlPreset   `xml:"Preset"`
	Checksums []xmlChecksum `xml:"PresetCk"`
}

type xmlPreset struct {
	XMLName       xml.Name `xml:"Preset"`
	Name          string   `xml:"Name"`
	Width         string   `xml:"Width"`
	Height        string   `xml:"Height"`
	Offset        string   `xml:"Offset"`
	Format        string   `xml:"Format"`
	Order         string   `xml:"Order"`
	Endian        string   `xml:"Endian"`
	IgnoreAlpha   bool     `xml:"IgnoreAlpha"`
	Layout        string   `xml:"Layout"`
	PaletteOffset string   `xml:"PaletteOffset"`
	PaletteDepth  string   `xml:"PaletteDepth"`
	TileWidth     string   `xml:"TileWidth"`
	TileHeight    string   `xml:"TileHeight"`
}

type xmlChecksum struct {
	XMLName  xml.Name `xml:"PresetCk"`
	Checksum string   `xml:"Checksum"`
	Preset   string   `xml:"Preset"`
}

func (p *xmlPreset) request() (*Request, error) {
	geometry, err := ParseGeometry(p.Width, p.Height, p.Offset)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Width:       geometry.Width,
		Height:      geometry.Height,
		Offset:      geometry.Offset,
		Order:       p.Order,
		IgnoreAlpha: p.IgnoreAlpha,
	}

	if req.Format, err = ParsePixelFormat(p.Format); err != nil {
		return nil, err
	}
	if req.Order == "" {
		req.Order = req.Format.DefaultOrder()
	}
	if p.Endian != "" {
		if req.Endian, err = ParseEndian(p.Endian); err != nil {
			return nil, err
		}
	}
	if req.Layout, err = ParseLayout(p.Layout); err != nil {
		return nil, err
	}

	if req.Layout.UsesPalette() {
		offset, err := ParsePaletteOffset(p.PaletteOffset)
		if err != nil {
			return nil, err
		}
		depth, err := ParseIndexDepth(p.PaletteDepth)
		if err != nil {
			return nil, err
		}
		req.Palette = &PaletteInfo{Offset: offset, Depth: depth}
	}

	if req.Layout.UsesTiles() {
		tile, err := ParseTileSize(p.TileWidth, p.TileHeight)
		if err != nil {
			return nil, err
		}
		req.Tile = &tile
	}

	return req, nil
}

// ImportXML loads a preset catalog from an XML file, replacing the current
// contents of the database.
func (db *PresetDB) ImportXML(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := ioutil.ReadAll(f)
	if err != nil {
		return err
	}

	var catalog xmlCatalog
	if err := xml.Unmarshal(b, &catalog); err != nil {
		return err
	}

	if _, err = db.db.Exec("DELETE FROM checksum"); err != nil {
		return err
	}

	if _, err = db.db.Exec("DELETE FROM preset"); err != nil {
		return err
	}

	for _, p := range catalog.Presets {
		req, err := p.request()
		if err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
		if err := db.Save(p.Name, req); err != nil {
			return err
		}
	}

	for _, c := range catalog.Checksums {
		if err := db.AddChecksum(c.Preset, c.Checksum); err != nil {
			return err
		}
	}

	return nil
}
