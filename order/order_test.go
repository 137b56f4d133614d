package order

import (
	"bytes"
	"encoding/binary"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tables := []struct {
		name  string
		input string
		want  Ordering
	}{
		{"simple", "2\n3\n0\n1\n", Ordering{2, 3, 0, 1}},
		{"no trailing newline", "2\n3\n0\n1", Ordering{2, 3, 0, 1}},
		{"whitespace", "  2 \r\n\t3\n\n0\n1\n\n", Ordering{2, 3, 0, 1}},
		{"negative", "-1\n", Ordering{-1}},
		{"empty", "", nil},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			o, err := Read(strings.NewReader(table.input))
			require.Nil(t, err)
			assert.Equal(t, table.want, o)
		})
	}
}

func TestReadInvalid(t *testing.T) {
	_, err := Read(strings.NewReader("1\n2\nx\n"))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestWriteFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "order")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "order.txt")
	require.Nil(t, WriteFile(file, Ordering{2, 3, 0, 1}))

	b, err := ioutil.ReadFile(file)
	require.Nil(t, err)
	assert.Equal(t, "2\n3\n0\n1\n", string(b))

	o, err := ReadFile(file)
	require.Nil(t, err)
	assert.Equal(t, Ordering{2, 3, 0, 1}, o)

	_, err = ReadFile(filepath.Join(dir, "missing.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestBinary(t *testing.T) {
	o := make(Ordering, 4096)
	for i := range o {
		o[i] = len(o) - 1 - i
	}

	b, err := o.MarshalBinary()
	require.Nil(t, err)

	var got Ordering
	require.Nil(t, got.UnmarshalBinary(b))
	assert.Equal(t, o, got)

	_, err = Ordering{0, -1}.MarshalBinary()
	assert.NotNil(t, err)

	assert.NotNil(t, got.UnmarshalBinary([]byte("not zstd")))

	var buf bytes.Buffer
	buf.Write(encoder.EncodeAll([]byte{0x05, 0x01}, nil))
	assert.Equal(t, errCorrupt, got.UnmarshalBinary(buf.Bytes()))

	// Index too large for an int on any platform
	raw := binary.AppendUvarint([]byte{0x01}, 1<<40)
	assert.Equal(t, errCorrupt, got.UnmarshalBinary(encoder.EncodeAll(raw, nil)))
}
