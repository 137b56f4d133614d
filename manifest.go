package untile

import (
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/bodgit/untile/order"
	"github.com/bodgit/untile/tile"
	"gopkg.in/yaml.v3"
)

type yamlTile struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
}

func (t *yamlTile) size() tile.Size {
	return tile.Size{Height: t.Height, Width: t.Width}
}

type yamlImage struct {
	Image string    `yaml:"image"`
	Order string    `yaml:"order"`
	Tile  *yamlTile `yaml:"tile"`
}

// yamlManifest lists scrambled images. Paths are relative to the manifest
// and an image without a tile size uses the top-level one.
type yamlManifest struct {
	Tile   *yamlTile   `yaml:"tile"`
	Images []yamlImage `yaml:"images"`
}

func resolve(base, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, filepath.FromSlash(file))
}

// ImportManifest adds every image listed in the YAML manifest file and
// returns how many were added. It stops at the first image that can't be
// added.
func (c *Catalog) ImportManifest(file string) (int, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return 0, err
	}

	var m yamlManifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return 0, fmt.Errorf("%s: %w", file, err)
	}

	base := filepath.Dir(file)

	for i, img := range m.Images {
		if img.Image == "" || img.Order == "" {
			return i, fmt.Errorf("%s: image %d: image and order are required", file, i)
		}

		t := img.Tile
		if t == nil {
			t = m.Tile
		}
		if t == nil {
			return i, fmt.Errorf("%s: image %d: no tile size", file, i)
		}

		o, err := order.ReadFile(resolve(base, img.Order))
		if err != nil {
			return i, err
		}

		if _, err := c.Add(resolve(base, img.Image), t.size(), o); err != nil {
			return i, err
		}
	}

	return len(m.Images), nil
}
