package nn

import "tensord/tensor"

// Affine adds a fixed weight tensor to its input: y = W + x. The input
// must match the weight's shape.
type Affine struct {
	Weight *tensor.Tensor
}

var _ Model = (*Affine)(nil)

func NewAffine(weight *tensor.Tensor) *Affine {
	return &Affine{Weight: weight}
}

func (a *Affine) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	return a.Weight.Add(x)
}

func (a *Affine) Kind() string {
	return KindAffine
}

func (a *Affine) Params() map[string]*tensor.Tensor {
	return map[string]*tensor.Tensor{
		"weight": a.Weight,
	}
}
