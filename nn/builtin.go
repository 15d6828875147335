package nn

import "tensord/tensor"

// Builtin model names seeded into a fresh store by tensord init.
const (
	BuiltinOnesName = "ones"
	BuiltinMLPName  = "mlp"
)

// BuiltinOnes adds an all-ones 2x2 matrix to its input.
func BuiltinOnes() Model {
	return NewAffine(tensor.Ones(2, 2))
}

// BuiltinMLP is a zero-initialized 32-32-10 perceptron; any (1, 32)
// input maps to (1, 10) zeros.
func BuiltinMLP() Model {
	return NewMLP(
		NewLinear(tensor.Zeros(32, 32), tensor.Zeros(32)),
		NewLinear(tensor.Zeros(32, 10), tensor.Zeros(10)),
	)
}

// Builtins enumerates the seeded models by name.
func Builtins() map[string]Model {
	return map[string]Model{
		BuiltinOnesName: BuiltinOnes(),
		BuiltinMLPName:  BuiltinMLP(),
	}
}
