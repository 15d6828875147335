package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tensord/nn"
	"tensord/store"
	"tensord/tensor"
	"tensord/testutil/teststore"
)

func TestPutGetModel(t *testing.T) {
	db, done := teststore.NewTempDB(t)
	defer done()

	m := nn.NewAffine(tensor.Eye(3))
	require.NoError(t, store.PutModel(db, "my-affine", m))

	got, err := store.GetModel(db, "my-affine")
	require.NoError(t, err)
	require.Equal(t, nn.KindAffine, got.Kind())

	out, err := got.Forward(tensor.Ones(3, 3))
	require.NoError(t, err)
	require.Equal(t, []float64{2, 1, 1, 1, 2, 1, 1, 1, 2}, out.Data())
}

func TestPutModel_Replaces(t *testing.T) {
	db, done := teststore.NewTempDB(t)
	defer done()

	require.NoError(t, store.PutModel(db, "m", nn.NewAffine(tensor.Ones(2, 2))))
	require.NoError(t, store.PutModel(db, "m", nn.NewAffine(tensor.Zeros(2, 2))))

	got, err := store.GetModel(db, "m")
	require.NoError(t, err)
	out, err := got.Forward(tensor.Eye(2))
	require.NoError(t, err)
	require.Equal(t, tensor.Eye(2).Data(), out.Data())
}

func TestGetModel_NotFound(t *testing.T) {
	db, done := teststore.NewTempDB(t)
	defer done()

	_, err := store.GetModel(db, "missing")
	require.Equal(t, store.ErrModelNotFound, err)
}

func TestGetModel_MLP(t *testing.T) {
	db, done := teststore.NewTempDB(t)
	defer done()

	require.NoError(t, store.PutModel(db, "mlp", nn.BuiltinMLP()))

	got, err := store.GetModel(db, "mlp")
	require.NoError(t, err)
	out, err := got.Forward(tensor.Randn(1, 32))
	require.NoError(t, err)
	require.Equal(t, []int{1, 10}, out.Shape())
	require.True(t, out.AllClose(tensor.Zeros(1, 10)))
}

func TestListManifests(t *testing.T) {
	db, done := teststore.NewTempDB(t)
	defer done()

	manifests, err := store.ListManifests(db)
	require.NoError(t, err)
	require.Empty(t, manifests)

	require.NoError(t, store.PutModel(db, "b-model", nn.NewAffine(tensor.Ones(2, 2))))
	require.NoError(t, store.PutModel(db, "a-model", nn.BuiltinMLP()))

	manifests, err = store.ListManifests(db)
	require.NoError(t, err)
	require.Len(t, manifests, 2)
	require.Equal(t, "a-model", manifests[0].Name)
	require.Equal(t, nn.KindMLP, manifests[0].Kind)
	require.Equal(t, []string{"first.bias", "first.weight", "second.bias", "second.weight"}, manifests[0].Params)
	require.Equal(t, "b-model", manifests[1].Name)
	require.Equal(t, nn.KindAffine, manifests[1].Kind)
}

func TestDeleteModel(t *testing.T) {
	db, done := teststore.NewTempDB(t)
	defer done()

	require.NoError(t, store.PutModel(db, "m", nn.NewAffine(tensor.Ones(2, 2))))
	require.NoError(t, store.DeleteModel(db, "m"))

	_, err := store.GetModel(db, "m")
	require.Equal(t, store.ErrModelNotFound, err)

	require.Equal(t, store.ErrModelNotFound, store.DeleteModel(db, "m"))
}
