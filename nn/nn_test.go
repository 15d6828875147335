package nn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tensord/tensor"
)

func TestAffine_Forward(t *testing.T) {
	m := NewAffine(tensor.Ones(2, 2))

	out, err := m.Forward(tensor.Eye(2))
	require.NoError(t, err)
	require.Equal(t, []float64{2, 1, 1, 2}, out.Data())

	_, err = m.Forward(tensor.Zeros(3, 3))
	require.Error(t, err)
}

func TestBuiltinOnes_AddsOnes(t *testing.T) {
	m := BuiltinOnes()
	in := tensor.Randn(2, 2)
	out, err := m.Forward(in)
	require.NoError(t, err)

	diff, err := out.Sub(in)
	require.NoError(t, err)
	require.True(t, diff.AllClose(tensor.Ones(2, 2)))
}

func TestLinear_Forward(t *testing.T) {
	w, err := tensor.FromRows([][]float64{{1, 0}, {0, 2}})
	require.NoError(t, err)
	b, err := tensor.New([]int{2}, []float64{10, 20})
	require.NoError(t, err)
	l := NewLinear(w, b)

	x, err := tensor.FromRows([][]float64{{3, 4}})
	require.NoError(t, err)
	out, err := l.Forward(x)
	require.NoError(t, err)
	require.Equal(t, []float64{13, 28}, out.Data())
}

func TestBuiltinMLP_MapsToZeros(t *testing.T) {
	m := BuiltinMLP()
	out, err := m.Forward(tensor.Randn(1, 32))
	require.NoError(t, err)
	require.Equal(t, []int{1, 10}, out.Shape())
	require.True(t, out.AllClose(tensor.Zeros(1, 10)))
}

func TestMLP_ShapeMismatch(t *testing.T) {
	_, err := BuiltinMLP().Forward(tensor.Randn(1, 16))
	require.Error(t, err)
}

func TestFromParams_RoundTrip(t *testing.T) {
	for name, m := range Builtins() {
		rebuilt, err := FromParams(m.Kind(), m.Params())
		require.NoError(t, err, name)
		require.Equal(t, m.Kind(), rebuilt.Kind(), name)

		var in *tensor.Tensor
		if m.Kind() == KindMLP {
			in = tensor.Randn(1, 32)
		} else {
			in = tensor.Randn(2, 2)
		}
		want, err := m.Forward(in)
		require.NoError(t, err, name)
		got, err := rebuilt.Forward(in)
		require.NoError(t, err, name)
		require.Equal(t, want.Data(), got.Data(), name)
	}
}

func TestFromParams_Errors(t *testing.T) {
	_, err := FromParams("transformer", nil)
	require.Error(t, err)

	_, err = FromParams(KindAffine, nil)
	require.Error(t, err)

	params := BuiltinMLP().Params()
	delete(params, "second.bias")
	_, err = FromParams(KindMLP, params)
	require.Error(t, err)
}
