package tile

import (
	"image"
	"image/color"
	"image/draw"
)

// newImage returns a zeroed image with bounds r and, where possible, the
// same pixel layout as m.
func newImage(m image.Image, r image.Rectangle) draw.Image {
	switch m := m.(type) {
	case *image.RGBA:
		return image.NewRGBA(r)
	case *image.NRGBA:
		return image.NewNRGBA(r)
	case *image.RGBA64:
		return image.NewRGBA64(r)
	case *image.NRGBA64:
		return image.NewNRGBA64(r)
	case *image.Gray:
		return image.NewGray(r)
	case *image.Gray16:
		return image.NewGray16(r)
	case *image.Alpha:
		return image.NewAlpha(r)
	case *image.Alpha16:
		return image.NewAlpha16(r)
	case *image.CMYK:
		return image.NewCMYK(r)
	case *image.Paletted:
		return image.NewPaletted(r, append(color.Palette(nil), m.Palette...))
	default:
		return image.NewRGBA64(r)
	}
}

// copyTile copies the tile at sp in src to the rectangle r in dst.
func copyTile(dst draw.Image, r image.Rectangle, src image.Image, sp image.Point) {
	dpm, dok := dst.(*image.Paletted)
	spm, sok := src.(*image.Paletted)
	if dok && sok {
		// Copy indices so duplicate palette entries survive untouched
		for y := 0; y < r.Dy(); y++ {
			for x := 0; x < r.Dx(); x++ {
				dpm.SetColorIndex(r.Min.X+x, r.Min.Y+y, spm.ColorIndexAt(sp.X+x, sp.Y+y))
			}
		}
		return
	}
	draw.Draw(dst, r, src, sp, draw.Src)
}

// Rearrange splits m into tiles of the given size and returns a new image
// where the tile at position i is the tile at position ordering[i] of m.
//
// The configuration is always validated first; if Valid would return false
// ErrInvalidConfiguration is returned and no image is allocated.
func Rearrange(m image.Image, size Size, ordering []int) (draw.Image, error) {
	if !ValidImage(m, size, ordering) {
		return nil, ErrInvalidConfiguration
	}

	b := m.Bounds()

	// Top-left corner of each tile, in scan order
	tiles := make([]image.Point, 0, len(ordering))
	for y := b.Min.Y; y < b.Max.Y; y += size.Height {
		for x := b.Min.X; x < b.Max.X; x += size.Width {
			tiles = append(tiles, image.Pt(x, y))
		}
	}

	rearranged := make([]image.Point, len(ordering))
	for i, o := range ordering {
		rearranged[i] = tiles[o]
	}

	out := newImage(m, b)

	x, y := b.Min.X, b.Min.Y
	for _, sp := range rearranged {
		copyTile(out, image.Rect(x, y, x+size.Width, y+size.Height), m, sp)
		x += size.Width
		if x >= b.Max.X {
			x = b.Min.X
			y += size.Height
		}
	}

	return out, nil
}
