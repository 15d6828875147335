package tensor

import (
	"math"

	"github.com/pkg/errors"
)

// Tolerances match numpy's allclose defaults.
const (
	DefaultRelTolerance = 1e-5
	DefaultAbsTolerance = 1e-8
)

// Add returns the element-wise sum of two same-shaped tensors.
func (t *Tensor) Add(other *Tensor) (*Tensor, error) {
	if !t.SameShape(other) {
		return nil, errors.Errorf(
			"tensor: cannot add shape %s to shape %s",
			ShapeString(other.shape), ShapeString(t.shape),
		)
	}
	data := make([]float64, len(t.data))
	for i, v := range t.data {
		data[i] = v + other.data[i]
	}
	return New(t.shape, data)
}

// Sub returns the element-wise difference t - other.
func (t *Tensor) Sub(other *Tensor) (*Tensor, error) {
	if !t.SameShape(other) {
		return nil, errors.Errorf(
			"tensor: cannot subtract shape %s from shape %s",
			ShapeString(other.shape), ShapeString(t.shape),
		)
	}
	data := make([]float64, len(t.data))
	for i, v := range t.data {
		data[i] = v - other.data[i]
	}
	return New(t.shape, data)
}

// MatMul multiplies two 2-d tensors.
func (t *Tensor) MatMul(other *Tensor) (*Tensor, error) {
	if t.Dims() != 2 || other.Dims() != 2 {
		return nil, errors.Errorf(
			"tensor: matmul requires 2-d operands, got %s and %s",
			ShapeString(t.shape), ShapeString(other.shape),
		)
	}
	rows, inner := t.shape[0], t.shape[1]
	if other.shape[0] != inner {
		return nil, errors.Errorf(
			"tensor: matmul shape mismatch: %s x %s",
			ShapeString(t.shape), ShapeString(other.shape),
		)
	}
	cols := other.shape[1]
	data := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for k := 0; k < inner; k++ {
			v := t.data[i*inner+k]
			if v == 0 {
				continue
			}
			for j := 0; j < cols; j++ {
				data[i*cols+j] += v * other.data[k*cols+j]
			}
		}
	}
	return New([]int{rows, cols}, data)
}

// BroadcastAdd adds a row vector to every row of a 2-d tensor. The vector
// may have shape (c) or (1, c).
func (t *Tensor) BroadcastAdd(row *Tensor) (*Tensor, error) {
	if t.Dims() != 2 {
		return nil, errors.Errorf("tensor: broadcast add requires a 2-d receiver, got %s", ShapeString(t.shape))
	}
	vec := row.data
	switch {
	case row.Dims() == 1 && row.shape[0] == t.shape[1]:
	case row.Dims() == 2 && row.shape[0] == 1 && row.shape[1] == t.shape[1]:
	default:
		return nil, errors.Errorf(
			"tensor: cannot broadcast %s over %s",
			ShapeString(row.shape), ShapeString(t.shape),
		)
	}
	cols := t.shape[1]
	data := make([]float64, len(t.data))
	for i, v := range t.data {
		data[i] = v + vec[i%cols]
	}
	return New(t.shape, data)
}

// Relu returns max(0, x) applied element-wise.
func (t *Tensor) Relu() *Tensor {
	data := make([]float64, len(t.data))
	for i, v := range t.data {
		if v > 0 {
			data[i] = v
		}
	}
	out, err := New(t.shape, data)
	if err != nil {
		panic(err)
	}
	return out
}

// AllClose reports whether both tensors have the same shape and every
// element pair satisfies |a-b| <= atol + rtol*|b|.
func (t *Tensor) AllClose(other *Tensor) bool {
	return t.AllCloseTol(other, DefaultRelTolerance, DefaultAbsTolerance)
}

func (t *Tensor) AllCloseTol(other *Tensor, rtol, atol float64) bool {
	if !t.SameShape(other) {
		return false
	}
	for i, a := range t.data {
		b := other.data[i]
		if math.IsNaN(a) || math.IsNaN(b) {
			return false
		}
		if math.Abs(a-b) > atol+rtol*math.Abs(b) {
			return false
		}
	}
	return true
}
