/*
Package image loads and saves the images that are rearranged.

Decoding supports PNG, JPEG and GIF from the standard library, BMP, TIFF and
WebP from golang.org/x/image and QOI. Encoding picks the format from the
file extension; WebP is decode only.

Saved images can optionally be reduced to a palette of at most Options.Colors
colors using a median cut quantizer.
*/
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "github.com/xfmoulet/qoi" // register QOI decoder
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrUnsupportedFormat is returned when saving to a file extension with no
// known encoder.
var ErrUnsupportedFormat = errors.New("image: unsupported format")

var extensions = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".qoi":  "qoi",
	".webp": "webp",
}

// IsImage reports whether file has an extension of a decodable image.
func IsImage(file string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(file))]
	return ok
}

// CanSave reports whether file has an extension Save can encode.
func CanSave(file string) bool {
	format, ok := extensions[strings.ToLower(filepath.Ext(file))]
	return ok && format != "webp"
}

// Load decodes the image stored in file.
func Load(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("image: %s: %w", file, err)
	}

	return m, nil
}
