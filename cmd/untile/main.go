package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/bodgit/untile"
	imageio "github.com/bodgit/untile/image"
	"github.com/bodgit/untile/order"
	"github.com/bodgit/untile/tile"
	"github.com/urfave/cli/v2"
)

const (
	defaultDB   = "untile.db"
	defaultTile = "20x20"
)

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
	return logger
}

func tileSize(c *cli.Context) (tile.Size, error) {
	size, err := tile.ParseSize(c.String("tile"))
	if err != nil {
		return tile.Size{}, cli.NewExitError(err, 1)
	}
	return size, nil
}

func imageOptions(c *cli.Context) *imageio.Options {
	return &imageio.Options{
		Quality: c.Int("quality"),
		Colors:  c.Int("colors"),
	}
}

var errNotPossible = errors.New("Reformation not possible")

// check returns errNotPossible unless the image in file can be rearranged
// with size and the ordering in orderFile.
func check(file, orderFile string, size tile.Size, logger *log.Logger) error {
	m, err := imageio.Load(file)
	if err != nil {
		return err
	}

	o, err := order.ReadFile(orderFile)
	if err != nil {
		return err
	}

	b := m.Bounds()
	logger.Printf("Image is %dx%d, %d tiles of %s\n", b.Dy(), b.Dx(), tile.Count(b.Dy(), b.Dx(), size), size)

	if !tile.ValidImage(m, size, o) {
		return errNotPossible
	}

	return nil
}

var (
	tileFlag = &cli.StringFlag{
		Name:    "tile",
		Aliases: []string{"t"},
		Value:   defaultTile,
		Usage:   "tile size as HEIGHTxWIDTH",
	}
	qualityFlag = &cli.IntFlag{
		Name:  "quality",
		Value: 95,
		Usage: "JPEG output quality",
	}
	colorsFlag = &cli.IntFlag{
		Name:  "colors",
		Usage: "reduce output to at most this many colors",
	}
)

func main() {
	app := cli.NewApp()

	app.Name = "untile"
	app.Usage = "Restore images scrambled by shuffling tiles"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"UNTILE_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "check",
			Usage:     "Check an image can be restored with an ordering",
			ArgsUsage: "IMAGE ORDER",
			Flags:     []cli.Flag{tileFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				size, err := tileSize(c)
				if err != nil {
					return err
				}

				if err := check(c.Args().Get(0), c.Args().Get(1), size, newLogger(c)); err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Println("Reformation possible")

				return nil
			},
		},
		{
			Name:      "rearrange",
			Usage:     "Rearrange the tiles of an image",
			ArgsUsage: "IMAGE ORDER OUTPUT",
			Flags:     []cli.Flag{tileFlag, qualityFlag, colorsFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				size, err := tileSize(c)
				if err != nil {
					return err
				}

				m, err := imageio.Load(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				o, err := order.ReadFile(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				r, err := tile.Rearrange(m, size, o)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := imageio.Save(r, c.Args().Get(2), imageOptions(c)); err != nil {
					return cli.NewExitError(err, 1)
				}
				newLogger(c).Printf("Saved \"%s\"\n", c.Args().Get(2))

				return nil
			},
		},
		{
			Name:        "scramble",
			Usage:       "Scramble the tiles of an image",
			Description: "Writes the scrambled image and the ordering that restores it",
			ArgsUsage:   "IMAGE OUTPUT ORDER",
			Flags: []cli.Flag{
				tileFlag,
				qualityFlag,
				colorsFlag,
				&cli.Int64Flag{
					Name:  "seed",
					Usage: "random seed, defaults to the current time",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				size, err := tileSize(c)
				if err != nil {
					return err
				}

				m, err := imageio.Load(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				seed := c.Int64("seed")
				if !c.IsSet("seed") {
					seed = time.Now().UnixNano()
				}

				b := m.Bounds()
				p := tile.Shuffle(tile.Count(b.Dy(), b.Dx(), size), rand.New(rand.NewSource(seed)))

				r, err := tile.Rearrange(m, size, p)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				inv, err := tile.Inverse(p)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := imageio.Save(r, c.Args().Get(1), imageOptions(c)); err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := order.WriteFile(c.Args().Get(2), inv); err != nil {
					return cli.NewExitError(err, 1)
				}
				newLogger(c).Printf("Scrambled %d tiles with seed %d\n", len(p), seed)

				return nil
			},
		},
		{
			Name:      "add",
			Usage:     "Add a scrambled image and its ordering to the database",
			ArgsUsage: "IMAGE ORDER",
			Flags:     []cli.Flag{tileFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				size, err := tileSize(c)
				if err != nil {
					return err
				}

				u, err := untile.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer u.Close()

				if err := u.Add(c.Args().Get(0), c.Args().Get(1), size); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Import a YAML manifest of scrambled images",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				u, err := untile.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer u.Close()

				if err := u.ImportManifest(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and restore known images",
			Description: "Images found in the database are restored under OUTPUT keeping their relative path",
			ArgsUsage:   "DIRECTORY OUTPUT",
			Flags: []cli.Flag{
				qualityFlag,
				colorsFlag,
				&cli.IntFlag{
					Name:  "workers",
					Value: untile.DefaultWorkers,
					Usage: "number of images to restore concurrently",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				u, err := untile.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer u.Close()

				if err := u.Scan(c.Args().Get(0), c.Args().Get(1), c.Int("workers"), imageOptions(c)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
