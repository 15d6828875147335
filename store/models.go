package store

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/vmihailenco/msgpack/v5"

	"tensord/nn"
	"tensord/npy"
	"tensord/tensor"
)

var (
	manifestPrefix = Prefixer("models/manifest")
	paramsPrefix   = Prefixer("models/params")
)

var ErrModelNotFound = errors.New("store: model not found")

// ModelManifest records a stored model's architecture and parameter
// names. Parameter tensors live under separate keys as .npy bytes.
type ModelManifest struct {
	Name      string    `msgpack:"name"`
	Kind      string    `msgpack:"kind"`
	Params    []string  `msgpack:"params"`
	CreatedAt time.Time `msgpack:"created_at"`
}

// PutModel writes the manifest and every parameter tensor in one
// transaction, replacing any model previously stored under name.
func PutModel(db *leveldb.DB, name string, model nn.Model) error {
	params := model.Params()
	names := make([]string, 0, len(params))
	for p := range params {
		names = append(names, p)
	}
	sort.Strings(names)

	manifest := &ModelManifest{
		Name:      name,
		Kind:      model.Kind(),
		Params:    names,
		CreatedAt: time.Now(),
	}
	manifestB, err := msgpack.Marshal(manifest)
	if err != nil {
		return errors.Wrap(err, "error marshaling model manifest")
	}

	return WithTx(db, func(tx *leveldb.Transaction) error {
		if err := tx.Put(manifestPrefix(name), manifestB, nil); err != nil {
			return errors.Wrap(err, "error writing model manifest")
		}
		for _, p := range names {
			valB, err := npy.EncodeBytes(params[p])
			if err != nil {
				return errors.Wrapf(err, "error encoding parameter %s", p)
			}
			if err := tx.Put(paramsPrefix(name, p), valB, nil); err != nil {
				return errors.Wrapf(err, "error writing parameter %s", p)
			}
		}
		return nil
	})
}

// GetManifest returns the manifest stored under name.
func GetManifest(db *leveldb.DB, name string) (*ModelManifest, error) {
	manifestB, err := db.Get(manifestPrefix(name), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "error getting model manifest")
	}
	manifest := new(ModelManifest)
	if err := msgpack.Unmarshal(manifestB, manifest); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling model manifest")
	}
	return manifest, nil
}

// GetModel rebuilds the model stored under name.
func GetModel(db *leveldb.DB, name string) (nn.Model, error) {
	manifest, err := GetManifest(db, name)
	if err != nil {
		return nil, err
	}

	params := make(map[string]*tensor.Tensor, len(manifest.Params))
	for _, p := range manifest.Params {
		valB, err := db.Get(paramsPrefix(name, p), nil)
		if err != nil {
			return nil, errors.Wrapf(err, "error getting parameter %s", p)
		}
		t, err := npy.DecodeBytes(valB)
		if err != nil {
			return nil, errors.Wrapf(err, "error decoding parameter %s", p)
		}
		params[p] = t
	}
	return nn.FromParams(manifest.Kind, params)
}

// ListManifests returns every stored manifest ordered by model name.
func ListManifests(db *leveldb.DB) ([]*ModelManifest, error) {
	var out []*ModelManifest
	iter := db.NewIterator(util.BytesPrefix(manifestPrefix()), nil)
	defer iter.Release()
	for iter.Next() {
		manifest := new(ModelManifest)
		if err := msgpack.Unmarshal(iter.Value(), manifest); err != nil {
			return nil, errors.Wrap(err, "error unmarshaling model manifest")
		}
		out = append(out, manifest)
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "error iterating model manifests")
	}
	return out, nil
}

// DeleteModel removes the manifest and all parameters for name.
func DeleteModel(db *leveldb.DB, name string) error {
	manifest, err := GetManifest(db, name)
	if err != nil {
		return err
	}
	return WithTx(db, func(tx *leveldb.Transaction) error {
		if err := tx.Delete(manifestPrefix(name), nil); err != nil {
			return errors.Wrap(err, "error deleting model manifest")
		}
		for _, p := range manifest.Params {
			if err := tx.Delete(paramsPrefix(name, p), nil); err != nil {
				return errors.Wrapf(err, "error deleting parameter %s", p)
			}
		}
		return nil
	})
}
