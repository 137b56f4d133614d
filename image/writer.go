package image

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const (
	defaultQuality = 95
	maxColors      = 256
)

// Options control how an image is saved.
type Options struct {
	// Quality is the JPEG quality, 1 to 100. Zero means 95.
	Quality int
	// Colors, when non-zero, reduces the image to at most that many
	// colors.
	Colors int
}

func (o *Options) quality() int {
	if o == nil || o.Quality <= 0 || o.Quality > 100 {
		return defaultQuality
	}
	return o.Quality
}

func (o *Options) colors() int {
	if o == nil || o.Colors <= 0 {
		return 0
	}
	if o.Colors > maxColors {
		return maxColors
	}
	return o.Colors
}

// reduce returns m as a paletted image of at most n colors. Images that
// already fit are converted without quantizing.
func reduce(m image.Image, n int) *image.Paletted {
	b := m.Bounds()

	if pm, ok := m.(*image.Paletted); ok && len(pm.Palette) <= n {
		return pm
	}

	if cp, ok := m.ColorModel().(color.Palette); ok && len(cp) <= n {
		pm := image.NewPaletted(b, cp)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				pm.Set(x, y, cp.Convert(m.At(x, y)))
			}
		}
		return pm
	}

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm
}

func encode(w io.Writer, m image.Image, format string, o *Options) error {
	if n := o.colors(); n > 0 {
		m = reduce(m, n)
	}

	switch format {
	case "png":
		return png.Encode(w, m)
	case "jpeg":
		return jpeg.Encode(w, m, &jpeg.Options{Quality: o.quality()})
	case "gif":
		// GIF is always paletted
		return gif.Encode(w, reduce(m, maxColors), nil)
	case "bmp":
		return bmp.Encode(w, m)
	case "tiff":
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	case "qoi":
		return qoi.Encode(w, m)
	default:
		return ErrUnsupportedFormat
	}
}

// Save encodes m to file using the format implied by its extension. The
// image is written to a temporary file first so a failed encode never
// leaves a partial file behind.
func Save(m image.Image, file string, o *Options) error {
	if !CanSave(file) {
		return ErrUnsupportedFormat
	}
	format := extensions[strings.ToLower(filepath.Ext(file))]

	f, err := ioutil.TempFile(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := encode(f, m, format, o); err != nil {
		f.Close()
		return err
	}

	if err := f.Chmod(0644); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), file)
}
