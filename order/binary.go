package order

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
)

// Orderings are tiny compared to the images they describe so memory is
// favoured over speed. Both are safe for concurrent use with EncodeAll and
// DecodeAll.
var (
	encoder = mustNewEncoder()
	decoder = mustNewDecoder()
)

var errCorrupt = errors.New("order: corrupt binary ordering")

func mustNewEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		panic(err)
	}
	return enc
}

func mustNewDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		panic(err)
	}
	return dec
}

// MarshalBinary encodes the ordering into compressed binary form.
func (o Ordering) MarshalBinary() ([]byte, error) {
	raw := make([]byte, 0, (len(o)+1)*binary.MaxVarintLen32)
	raw = binary.AppendUvarint(raw, uint64(len(o)))
	for _, i := range o {
		if i < 0 {
			return nil, errors.New("order: negative index")
		}
		raw = binary.AppendUvarint(raw, uint64(i))
	}
	return encoder.EncodeAll(raw, nil), nil
}

// UnmarshalBinary decodes an ordering produced by MarshalBinary.
func (o *Ordering) UnmarshalBinary(b []byte) error {
	raw, err := decoder.DecodeAll(b, nil)
	if err != nil {
		return err
	}

	r := bytes.NewReader(raw)

	n, err := binary.ReadUvarint(r)
	if err != nil {
		return errCorrupt
	}
	// Every index needs at least a byte
	if n > uint64(r.Len()) {
		return errCorrupt
	}

	dup := make(Ordering, n)
	for i := range dup {
		v, err := binary.ReadUvarint(r)
		if err != nil || v > math.MaxInt32 {
			return errCorrupt
		}
		dup[i] = int(v)
	}

	if _, err := r.ReadByte(); err != io.EOF {
		return errCorrupt
	}

	*o = dup

	return nil
}
