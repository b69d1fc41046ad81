package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/rawimg"
	"github.com/urfave/cli/v2"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const defaultDB = "rawimg.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	if file := c.String("log-file"); file != "" {
		logger.SetOutput(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
	}
	return logger
}

func openDB(c *cli.Context) (*rawimg.PresetDB, error) {
	return rawimg.NewPresetDB(c.String("db"))
}

var requestFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "width",
		Usage: "image width in pixels",
	},
	&cli.StringFlag{
		Name:  "height",
		Usage: "image height in pixels",
	},
	&cli.StringFlag{
		Name:  "offset",
		Value: "0",
		Usage: "byte offset of the pixel data",
	},
	&cli.StringFlag{
		Name:  "format",
		Value: "RGBA8888",
		Usage: "pixel format",
	},
	&cli.StringFlag{
		Name:  "order",
		Usage: "component order, e.g. rgba or bgr",
	},
	&cli.StringFlag{
		Name:  "endian",
		Value: "LE",
		Usage: "byte order for 2-byte formats, LE or BE",
	},
	&cli.BoolFlag{
		Name:  "ignore-alpha",
		Usage: "force alpha to opaque",
	},
	&cli.StringFlag{
		Name:  "layout",
		Value: "linear",
		Usage: "data layout: linear, indexed, tiled or tiled-indexed",
	},
	&cli.StringFlag{
		Name:  "palette-offset",
		Usage: "byte offset of the color table",
	},
	&cli.StringFlag{
		Name:  "palette-depth",
		Value: "8",
		Usage: "palette index depth, 4 or 8",
	},
	&cli.StringFlag{
		Name:  "tile-width",
		Usage: "tile width in pixels",
	},
	&cli.StringFlag{
		Name:  "tile-height",
		Usage: "tile height in pixels",
	},
}

// buildRequest assembles a decode request from the command line flags. The
// numeric fields stay strings all the way here so validation happens in one
// place.
func buildRequest(c *cli.Context) (*rawimg.Request, error) {
	geometry, err := rawimg.ParseGeometry(c.String("width"), c.String("height"), c.String("offset"))
	if err != nil {
		return nil, err
	}

	format, err := rawimg.ParsePixelFormat(c.String("format"))
	if err != nil {
		return nil, err
	}

	order := c.String("order")
	if order == "" {
		order = format.DefaultOrder()
	}

	endian, err := rawimg.ParseEndian(c.String("endian"))
	if err != nil {
		return nil, err
	}

	layout, err := rawimg.ParseLayout(c.String("layout"))
	if err != nil {
		return nil, err
	}

	req := &rawimg.Request{
		Width:       geometry.Width,
		Height:      geometry.Height,
		Offset:      geometry.Offset,
		Format:      format,
		Order:       order,
		Endian:      endian,
		IgnoreAlpha: c.Bool("ignore-alpha"),
		Layout:      layout,
	}

	if layout.UsesPalette() {
		offset, err := rawimg.ParsePaletteOffset(c.String("palette-offset"))
		if err != nil {
			return nil, err
		}
		depth, err := rawimg.ParseIndexDepth(c.String("palette-depth"))
		if err != nil {
			return nil, err
		}
		req.Palette = &rawimg.PaletteInfo{Offset: offset, Depth: depth}
	}

	if layout.UsesTiles() {
		tile, err := rawimg.ParseTileSize(c.String("tile-width"), c.String("tile-height"))
		if err != nil {
			return nil, err
		}
		req.Tile = &tile
	}

	return req, nil
}

func writeCanvas(canvas *rawimg.Canvas, output string, raw bool) error {
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if raw {
		_, err := w.Write(canvas.Pix)
		return err
	}

	return png.Encode(w, canvas.Image())
}

func main() {
	app := cli.NewApp()

	app.Name = "rawimg"
	app.Usage = "raw binary image decoding utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"RAWIMG_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to preset database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "append logs to a rotating file",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "decode",
			Usage:       "Decode a raw binary file to an image",
			Description: "Reads raw pixel data from FILE at the given geometry and writes a PNG (or raw RGBA with --raw).",
			ArgsUsage:   "FILE",
			Flags: append(append([]cli.Flag{}, requestFlags...),
				&cli.StringFlag{
					Name:  "preset",
					Usage: "load the decode parameters from a stored preset",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output file, defaults to stdout",
				},
				&cli.BoolFlag{
					Name:  "raw",
					Usage: "write raw RGBA bytes instead of PNG",
				},
			),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				var req *rawimg.Request
				if name := c.String("preset"); name != "" {
					db, err := openDB(c)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					defer db.Close()

					req, err = db.Find(name)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					if req == nil {
						return cli.NewExitError(fmt.Errorf("no preset named %q", name), 1)
					}
				} else {
					var err error
					req, err = buildRequest(c)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				canvas, err := rawimg.DecodeFile(c.Args().First(), req)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writeCanvas(canvas, c.String("output"), c.Bool("raw")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "encode",
			Usage:       "Encode an image to raw binary pixel data",
			Description: "Reads a PNG/GIF/JPEG image from FILE and writes it back out as raw pixel data.",
			ArgsUsage:   "FILE",
			Flags: append(append([]cli.Flag{}, requestFlags...),
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output file, defaults to stdout",
				},
			),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				m, _, err := image.Decode(f)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				format, err := rawimg.ParsePixelFormat(c.String("format"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				order := c.String("order")
				if order == "" {
					order = format.DefaultOrder()
				}

				endian, err := rawimg.ParseEndian(c.String("endian"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				layout, err := rawimg.ParseLayout(c.String("layout"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				opts := &rawimg.EncodeOptions{
					Format: format,
					Order:  order,
					Endian: endian,
					Layout: layout,
				}

				if layout.UsesPalette() {
					opts.Depth, err = rawimg.ParseIndexDepth(c.String("palette-depth"))
					if err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				if layout.UsesTiles() {
					tile, err := rawimg.ParseTileSize(c.String("tile-width"), c.String("tile-height"))
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					opts.Tile = &tile
				}

				var w io.Writer = os.Stdout
				if output := c.String("output"); output != "" {
					out, err := os.Create(output)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					defer out.Close()
					w = out
				}

				if err := rawimg.Encode(w, m, opts); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "preset",
			Usage: "Manage the decode preset database",
			Subcommands: []*cli.Command{
				{
					Name:      "save",
					Usage:     "Store the given decode parameters under NAME",
					ArgsUsage: "NAME [FILE]",
					Flags:     requestFlags,
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						req, err := buildRequest(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						db, err := openDB(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						name := c.Args().First()
						if err := db.Save(name, req); err != nil {
							return cli.NewExitError(err, 1)
						}

						// Associating a file records its checksum so a
						// later scan can recognize it.
						if c.NArg() > 1 {
							crc, err := rawimg.ChecksumFile(c.Args().Get(1))
							if err != nil {
								return cli.NewExitError(err, 1)
							}
							if err := db.AddChecksum(name, crc); err != nil {
								return cli.NewExitError(err, 1)
							}
						}

						return nil
					},
				},
				{
					Name:  "list",
					Usage: "List stored presets",
					Action: func(c *cli.Context) error {
						db, err := openDB(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						names, err := db.List()
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						for _, name := range names {
							fmt.Println(name)
						}

						return nil
					},
				},
				{
					Name:      "import",
					Usage:     "Import a preset catalog from XML",
					ArgsUsage: "FILE",
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						db, err := openDB(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						if err := db.ImportXML(c.Args().First()); err != nil {
							return cli.NewExitError(err, 1)
						}

						return nil
					},
				},
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan a directory tree for files matching stored presets",
			Description: "Checksums every file under DIRECTORY and reports the ones a preset recognizes.",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				m := rawimg.NewMatcher(db, newLogger(c))

				matches, err := m.Scan(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, match := range matches {
					fmt.Printf("%s: %s (%dx%d %s %s)\n", match.File, match.Preset, match.Request.Width, match.Request.Height, match.Request.Format, match.Request.Layout)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
