package tensor

import "math/rand"

// Randn returns a tensor of samples drawn from the standard normal
// distribution using the shared math/rand source.
func Randn(shape ...int) *Tensor {
	n := 1
	for _, dim := range shape {
		n *= dim
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = rand.NormFloat64()
	}
	t, err := New(shape, data)
	if err != nil {
		panic(err)
	}
	return t
}

// RandnFrom is Randn with an explicit source, for deterministic tests.
func RandnFrom(rng *rand.Rand, shape ...int) *Tensor {
	n := 1
	for _, dim := range shape {
		n *= dim
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	t, err := New(shape, data)
	if err != nil {
		panic(err)
	}
	return t
}
