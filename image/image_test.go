package image

import (
	"errors"
	"image"
	"image/color"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestImage(w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 17) ^ (y * 31)),
				G: uint8((x * 43) + (y * 13)),
				B: uint8((x * 7) ^ (y * 11)),
				A: 255,
			})
		}
	}
	return m
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "image")
	require.Nil(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func samePixels(t *testing.T, want, got image.Image) {
	require.Equal(t, want.Bounds(), got.Bounds())
	b := want.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			wr, wg, wb, wa := want.At(x, y).RGBA()
			gr, gg, gb, ga := got.At(x, y).RGBA()
			if !assert.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{gr, gg, gb, ga}, "pixel (%d, %d)", x, y) {
				return
			}
		}
	}
}

func TestLossless(t *testing.T) {
	dir := tempDir(t)
	m := makeTestImage(40, 20)

	for _, ext := range []string{".png", ".bmp", ".tiff", ".qoi"} {
		t.Run(ext, func(t *testing.T) {
			file := filepath.Join(dir, "test"+ext)
			require.Nil(t, Save(m, file, nil))

			got, err := Load(file)
			require.Nil(t, err)
			samePixels(t, m, got)
		})
	}
}

func TestJPEG(t *testing.T) {
	dir := tempDir(t)
	file := filepath.Join(dir, "test.jpg")

	require.Nil(t, Save(makeTestImage(40, 20), file, &Options{Quality: 50}))

	got, err := Load(file)
	require.Nil(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), got.Bounds())
}

func TestColors(t *testing.T) {
	dir := tempDir(t)

	for _, ext := range []string{".png", ".gif"} {
		t.Run(ext, func(t *testing.T) {
			file := filepath.Join(dir, "test"+ext)
			require.Nil(t, Save(makeTestImage(40, 20), file, &Options{Colors: 16}))

			got, err := Load(file)
			require.Nil(t, err)

			p, ok := got.ColorModel().(color.Palette)
			require.True(t, ok)
			assert.True(t, len(p) <= 16)
		})
	}
}

func TestReduce(t *testing.T) {
	pm := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	assert.Equal(t, pm, reduce(pm, 16))

	reduced := reduce(makeTestImage(16, 16), 8)
	assert.True(t, len(reduced.Palette) <= 8)
	assert.Equal(t, image.Rect(0, 0, 16, 16), reduced.Bounds())
}

func TestUnsupported(t *testing.T) {
	dir := tempDir(t)

	for _, name := range []string{"test.webp", "test.xyz", "test"} {
		assert.Equal(t, ErrUnsupportedFormat, Save(makeTestImage(4, 4), filepath.Join(dir, name), nil))
	}

	files, err := ioutil.ReadDir(dir)
	require.Nil(t, err)
	assert.Len(t, files, 0)
}

func TestLoadInvalid(t *testing.T) {
	dir := tempDir(t)
	file := filepath.Join(dir, "test.png")
	require.Nil(t, ioutil.WriteFile(file, []byte("not an image"), 0644))

	_, err := Load(file)
	assert.Equal(t, image.ErrFormat, errors.Unwrap(err))

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("a/b.PNG"))
	assert.True(t, IsImage("b.webp"))
	assert.False(t, IsImage("b.txt"))
	assert.False(t, IsImage("png"))
}

func TestCanSave(t *testing.T) {
	assert.True(t, CanSave("a/b.PNG"))
	assert.True(t, CanSave("b.qoi"))
	assert.False(t, CanSave("b.webp"))
	assert.False(t, CanSave("b.txt"))
}
