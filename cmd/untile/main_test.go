package main

import (
	"image"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	imageio "github.com/bodgit/untile/image"
	"github.com/bodgit/untile/order"
	"github.com/bodgit/untile/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	dir, err := ioutil.TempDir("", "untile")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	logger := log.New(ioutil.Discard, "", 0)
	size := tile.Size{Height: 20, Width: 20}

	even := filepath.Join(dir, "even.png")
	require.Nil(t, imageio.Save(image.NewRGBA(image.Rect(0, 0, 40, 40)), even, nil))
	odd := filepath.Join(dir, "odd.png")
	require.Nil(t, imageio.Save(image.NewRGBA(image.Rect(0, 0, 40, 41)), odd, nil))

	swap := filepath.Join(dir, "swap.txt")
	require.Nil(t, order.WriteFile(swap, order.Ordering{2, 3, 0, 1}))
	dup := filepath.Join(dir, "dup.txt")
	require.Nil(t, order.WriteFile(dup, order.Ordering{0, 0, 1, 2}))

	tables := []struct {
		name      string
		file      string
		orderFile string
		err       error
	}{
		{"valid", even, swap, nil},
		{"odd height", odd, swap, errNotPossible},
		{"duplicate", even, dup, errNotPossible},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.err, check(table.file, table.orderFile, size, logger))
		})
	}

	assert.Equal(t, "Reformation not possible", errNotPossible.Error())

	err = check(filepath.Join(dir, "missing.png"), swap, size, logger)
	assert.True(t, os.IsNotExist(err))
}
