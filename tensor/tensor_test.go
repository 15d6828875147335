package tensor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tr, err := New([]int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, tr.Shape())
	require.Equal(t, 6, tr.ElemCount())
	require.Equal(t, 2, tr.Dims())

	_, err = New([]int{2, 3}, []float64{1, 2, 3})
	require.Error(t, err)

	_, err = New([]int{-1}, nil)
	require.Error(t, err)
}

func TestNew_Scalar(t *testing.T) {
	tr, err := New(nil, []float64{42})
	require.NoError(t, err)
	require.Equal(t, 0, tr.Dims())
	require.Equal(t, 1, tr.ElemCount())
	require.Equal(t, 42.0, tr.At())
}

func TestConstructors(t *testing.T) {
	require.Equal(t, []float64{0, 0, 0, 0}, Zeros(2, 2).Data())
	require.Equal(t, []float64{1, 1, 1, 1}, Ones(2, 2).Data())
	require.Equal(t, []float64{2.5, 2.5}, Full(2.5, 2).Data())
	require.Equal(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, Eye(3).Data())
}

func TestFromRows(t *testing.T) {
	tr, err := FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, tr.Shape())
	require.Equal(t, []float64{1, 2, 3, 4}, tr.Data())

	_, err = FromRows([][]float64{{1, 2}, {3}})
	require.Error(t, err)
}

func TestAtSet(t *testing.T) {
	tr := Zeros(2, 3)
	tr.Set(9, 1, 2)
	require.Equal(t, 9.0, tr.At(1, 2))
	require.Equal(t, 0.0, tr.At(0, 2))

	require.Panics(t, func() {
		tr.At(2, 0)
	})
	require.Panics(t, func() {
		tr.At(1)
	})
}

func TestSameShape(t *testing.T) {
	require.True(t, Zeros(2, 2).SameShape(Ones(2, 2)))
	require.False(t, Zeros(2, 2).SameShape(Zeros(2, 3)))
	require.False(t, Zeros(4).SameShape(Zeros(2, 2)))
}

func TestCloneIsDeep(t *testing.T) {
	tr := Ones(2, 2)
	cl := tr.Clone()
	cl.Set(5, 0, 0)
	require.Equal(t, 1.0, tr.At(0, 0))
	require.Equal(t, 5.0, cl.At(0, 0))
}

func TestFlatten(t *testing.T) {
	tr := Eye(2)
	flat := tr.Flatten()
	require.Equal(t, []int{4}, flat.Shape())
	require.Equal(t, tr.Data(), flat.Data())
}

func TestRandnFrom_Deterministic(t *testing.T) {
	a := RandnFrom(rand.New(rand.NewSource(42)), 2, 3)
	b := RandnFrom(rand.New(rand.NewSource(42)), 2, 3)
	require.Equal(t, a.Data(), b.Data())
	require.Equal(t, []int{2, 3}, a.Shape())
}

func TestShapeString(t *testing.T) {
	require.Equal(t, "(2, 3)", ShapeString([]int{2, 3}))
	require.Equal(t, "(5)", ShapeString([]int{5}))
	require.Equal(t, "()", ShapeString(nil))
}
