package nn

import "tensord/tensor"

// Linear is a fully connected layer: y = x·W + b. The bias is broadcast
// over the input's rows.
type Linear struct {
	Weight *tensor.Tensor
	Bias   *tensor.Tensor
}

func NewLinear(weight, bias *tensor.Tensor) *Linear {
	return &Linear{
		Weight: weight,
		Bias:   bias,
	}
}

func (l *Linear) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	y, err := x.MatMul(l.Weight)
	if err != nil {
		return nil, err
	}
	return y.BroadcastAdd(l.Bias)
}

// MLP is a two-layer perceptron: Linear, ReLU, Linear.
type MLP struct {
	First  *Linear
	Second *Linear
}

var _ Model = (*MLP)(nil)

func NewMLP(first, second *Linear) *MLP {
	return &MLP{
		First:  first,
		Second: second,
	}
}

func (m *MLP) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	y, err := m.First.Forward(x)
	if err != nil {
		return nil, err
	}
	return m.Second.Forward(y.Relu())
}

func (m *MLP) Kind() string {
	return KindMLP
}

func (m *MLP) Params() map[string]*tensor.Tensor {
	return map[string]*tensor.Tensor{
		"first.weight":  m.First.Weight,
		"first.bias":    m.First.Bias,
		"second.weight": m.Second.Weight,
		"second.bias":   m.Second.Bias,
	}
}
