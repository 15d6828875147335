package teststore

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"

	"tensord/store"
)

// NewTempDB opens a throwaway leveldb database in a temp dir.
func NewTempDB(t *testing.T) (*leveldb.DB, func()) {
	dir, err := os.MkdirTemp("", "tensordtest_db_")
	require.NoError(t, err)
	db, err := store.Open(dir)
	require.NoError(t, err)
	return db, func() {
		require.NoError(t, db.Close())
		require.NoError(t, os.RemoveAll(dir))
	}
}
