package untile

import (
	"crypto/sha1"
	"fmt"
	"image"
	"io"
	"os"
)

func sha1File(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err = io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

// sha1Config returns the SHA-1 of file along with the dimensions of the
// image it contains.
func sha1Config(file string) (string, image.Config, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", image.Config{}, err
	}
	defer f.Close()

	h := sha1.New()
	c, _, err := image.DecodeConfig(io.TeeReader(f, h))
	if err != nil {
		return "", image.Config{}, fmt.Errorf("%s: %w", file, err)
	}

	// Whatever the decoder didn't need
	if _, err = io.Copy(h, f); err != nil {
		return "", image.Config{}, err
	}

	return fmt.Sprintf("%X", h.Sum(nil)), c, nil
}
