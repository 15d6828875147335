// Package nn holds the models a tensord daemon can serve. A model maps
// one input tensor to one output tensor per exchange.
package nn

import (
	"github.com/pkg/errors"

	"tensord/tensor"
)

type Model interface {
	// Forward runs one pass over the input.
	Forward(x *tensor.Tensor) (*tensor.Tensor, error)
	// Kind identifies the architecture for storage and rebuilds.
	Kind() string
	// Params enumerates the model's parameter tensors by name.
	Params() map[string]*tensor.Tensor
}

const (
	KindAffine = "affine"
	KindMLP    = "mlp"
)

// FromParams reconstructs a model of the given kind from stored
// parameters.
func FromParams(kind string, params map[string]*tensor.Tensor) (Model, error) {
	switch kind {
	case KindAffine:
		w, ok := params["weight"]
		if !ok {
			return nil, errors.New("nn: affine model missing weight parameter")
		}
		return NewAffine(w), nil
	case KindMLP:
		first, err := linearFromParams(params, "first")
		if err != nil {
			return nil, err
		}
		second, err := linearFromParams(params, "second")
		if err != nil {
			return nil, err
		}
		return &MLP{First: first, Second: second}, nil
	default:
		return nil, errors.Errorf("nn: unknown model kind %q", kind)
	}
}

func linearFromParams(params map[string]*tensor.Tensor, prefix string) (*Linear, error) {
	w, ok := params[prefix+".weight"]
	if !ok {
		return nil, errors.Errorf("nn: mlp model missing %s.weight parameter", prefix)
	}
	b, ok := params[prefix+".bias"]
	if !ok {
		return nil, errors.Errorf("nn: mlp model missing %s.bias parameter", prefix)
	}
	return NewLinear(w, b), nil
}
