package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	sum, err := Eye(2).Add(Ones(2, 2))
	require.NoError(t, err)
	require.Equal(t, []float64{2, 1, 1, 2}, sum.Data())

	_, err = Eye(2).Add(Zeros(3, 3))
	require.Error(t, err)
}

func TestSub(t *testing.T) {
	diff, err := Ones(2, 2).Sub(Eye(2))
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 1, 0}, diff.Data())

	_, err = Ones(2, 2).Sub(Zeros(2))
	require.Error(t, err)
}

func TestMatMul(t *testing.T) {
	a, err := FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	b, err := FromRows([][]float64{{5, 6}, {7, 8}})
	require.NoError(t, err)

	prod, err := a.MatMul(b)
	require.NoError(t, err)
	require.Equal(t, []float64{19, 22, 43, 50}, prod.Data())

	ident, err := a.MatMul(Eye(2))
	require.NoError(t, err)
	require.Equal(t, a.Data(), ident.Data())

	_, err = a.MatMul(Zeros(3, 2))
	require.Error(t, err)
	_, err = a.MatMul(Zeros(4))
	require.Error(t, err)
}

func TestMatMul_NonSquare(t *testing.T) {
	a, err := FromRows([][]float64{{1, 2, 3}})
	require.NoError(t, err)
	b, err := FromRows([][]float64{{1, 0}, {0, 1}, {1, 1}})
	require.NoError(t, err)

	prod, err := a.MatMul(b)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, prod.Shape())
	require.Equal(t, []float64{4, 5}, prod.Data())
}

func TestBroadcastAdd(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	row, err := New([]int{2}, []float64{10, 20})
	require.NoError(t, err)

	sum, err := m.BroadcastAdd(row)
	require.NoError(t, err)
	require.Equal(t, []float64{11, 22, 13, 24}, sum.Data())

	rowMat, err := New([]int{1, 2}, []float64{10, 20})
	require.NoError(t, err)
	sum, err = m.BroadcastAdd(rowMat)
	require.NoError(t, err)
	require.Equal(t, []float64{11, 22, 13, 24}, sum.Data())

	_, err = m.BroadcastAdd(Zeros(3))
	require.Error(t, err)
	_, err = Zeros(2).BroadcastAdd(row)
	require.Error(t, err)
}

func TestRelu(t *testing.T) {
	in, err := New([]int{4}, []float64{-1, 0, 0.5, 3})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0.5, 3}, in.Relu().Data())
}

func TestAllClose(t *testing.T) {
	a := Ones(2, 2)
	b := Full(1+1e-9, 2, 2)
	require.True(t, a.AllClose(b))
	require.True(t, a.AllClose(a))

	c := Full(1.1, 2, 2)
	require.False(t, a.AllClose(c))
	require.False(t, a.AllClose(Ones(4)))

	nan := Full(math.NaN(), 2, 2)
	require.False(t, nan.AllClose(nan))
}

func TestAllCloseTol(t *testing.T) {
	a := Ones(2, 2)
	c := Full(1.1, 2, 2)
	require.True(t, a.AllCloseTol(c, 0.2, 0))
	require.False(t, a.AllCloseTol(c, 0.01, 0))
}
