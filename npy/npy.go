// Package npy reads and writes tensors in the numpy .npy binary format,
// the wire format spoken on an exchange socket and the at-rest format
// used by the model store.
package npy

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"

	"tensord/tensor"
)

// DefaultMaxElements bounds decode memory use against hostile headers.
// 2^24 float64 elements is 128 MiB.
const DefaultMaxElements = 1 << 24

var ErrTooManyElements = errors.New("npy: element count exceeds limit")

// Encode writes t to w as a version 1.0 .npy stream with dtype <f8.
// The output is loadable with numpy's np.load.
func Encode(w io.Writer, t *tensor.Tensor) error {
	h := &header{
		descr: Float64,
		shape: t.Shape(),
	}
	if _, err := w.Write(h.encode()); err != nil {
		return errors.Wrap(err, "npy: error writing header")
	}

	buf := make([]byte, 8*len(t.Data()))
	for i, v := range t.Data() {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	if _, err := w.Write(buf); err != nil {
		return errors.Wrap(err, "npy: error writing element data")
	}
	return nil
}

// Decode reads one array from r with the default element limit.
func Decode(r io.Reader) (*tensor.Tensor, error) {
	return DecodeLimit(r, DefaultMaxElements)
}

// DecodeLimit reads one array from r, rejecting headers that declare
// more than maxElements elements. All supported dtypes widen to float64.
func DecodeLimit(r io.Reader, maxElements int) (*tensor.Tensor, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if h.fortranOrder {
		return nil, ErrFortranOrder
	}

	// multiply dimensions without overflowing past the limit
	count := 1
	for _, dim := range h.shape {
		if dim > 0 && count > maxElements/dim {
			return nil, ErrTooManyElements
		}
		count *= dim
	}

	size := h.descr.Size()
	raw := make([]byte, count*size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, errors.Wrap(err, "npy: error reading element data")
	}

	data := make([]float64, count)
	for i := range data {
		data[i] = h.descr.decodeElem(raw[i*size:])
	}
	return tensor.New(h.shape, data)
}

// EncodeBytes is Encode into a fresh buffer.
func EncodeBytes(t *tensor.Tensor) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBytes is Decode over an in-memory buffer.
func DecodeBytes(b []byte) (*tensor.Tensor, error) {
	return Decode(bytes.NewReader(b))
}
