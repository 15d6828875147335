package tensor

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Tensor is a dense n-dimensional array of float64 values stored in
// row-major order. The zero-dimensional tensor has shape () and holds a
// single element.
type Tensor struct {
	shape []int
	data  []float64
}

// New wraps data in a tensor of the given shape. The data slice is not
// copied.
func New(shape []int, data []float64) (*Tensor, error) {
	n := 1
	for _, dim := range shape {
		if dim < 0 {
			return nil, errors.Errorf("tensor: negative dimension in shape %s", ShapeString(shape))
		}
		n *= dim
	}
	if len(data) != n {
		return nil, errors.Errorf(
			"tensor: shape %s requires %d elements, got %d",
			ShapeString(shape), n, len(data),
		)
	}
	return &Tensor{
		shape: append([]int(nil), shape...),
		data:  data,
	}, nil
}

func Zeros(shape ...int) *Tensor {
	return Full(0, shape...)
}

func Ones(shape ...int) *Tensor {
	return Full(1, shape...)
}

func Full(value float64, shape ...int) *Tensor {
	n := 1
	for _, dim := range shape {
		n *= dim
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = value
	}
	t, err := New(shape, data)
	if err != nil {
		panic(err)
	}
	return t
}

// Eye returns the n-by-n identity matrix.
func Eye(n int) *Tensor {
	t := Zeros(n, n)
	for i := 0; i < n; i++ {
		t.data[i*n+i] = 1
	}
	return t
}

// FromRows builds a 2-d tensor from equally sized rows.
func FromRows(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 {
		return New([]int{0, 0}, nil)
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Errorf("tensor: row %d has %d elements, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return New([]int{len(rows), cols}, data)
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() []int {
	return append([]int(nil), t.shape...)
}

func (t *Tensor) Dims() int {
	return len(t.shape)
}

// Dim returns the size of the i-th dimension.
func (t *Tensor) Dim(i int) int {
	return t.shape[i]
}

func (t *Tensor) ElemCount() int {
	n := 1
	for _, dim := range t.shape {
		n *= dim
	}
	return n
}

// Data returns the tensor's backing slice. Callers must not modify it.
func (t *Tensor) Data() []float64 {
	return t.data
}

// At returns the element at the given indices, one per dimension.
func (t *Tensor) At(indices ...int) float64 {
	return t.data[t.offset(indices)]
}

// Set assigns the element at the given indices.
func (t *Tensor) Set(value float64, indices ...int) {
	t.data[t.offset(indices)] = value
}

func (t *Tensor) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf(
			"tensor: %d indices for shape %s",
			len(indices), ShapeString(t.shape),
		))
	}
	off := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf(
				"tensor: index %d out of range for dimension %d of shape %s",
				idx, i, ShapeString(t.shape),
			))
		}
		off = off*t.shape[i] + idx
	}
	return off
}

// SameShape reports whether both tensors have identical shapes.
func (t *Tensor) SameShape(other *Tensor) bool {
	if len(t.shape) != len(other.shape) {
		return false
	}
	for i, dim := range t.shape {
		if other.shape[i] != dim {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	out, err := New(t.shape, data)
	if err != nil {
		panic(err)
	}
	return out
}

// Flatten returns a 1-d view over the same data.
func (t *Tensor) Flatten() *Tensor {
	out, err := New([]int{len(t.data)}, t.data)
	if err != nil {
		panic(err)
	}
	return out
}

func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%s", ShapeString(t.shape))
}

// ShapeString renders a shape the way numpy prints one, e.g. (2, 3).
func ShapeString(shape []int) string {
	parts := make([]string, len(shape))
	for i, dim := range shape {
		parts[i] = fmt.Sprintf("%d", dim)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
