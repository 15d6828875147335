package config_test

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"

	"tensord/config"
	"tensord/testutil/testfs"
)

func TestInitHomeDir(t *testing.T) {
	dir, done := testfs.NewTempDir(t)
	defer done()
	home := path.Join(dir, "home")

	require.Error(t, config.EnsureHomeDir(home))

	require.NoError(t, config.InitHomeDir(home))
	require.NoError(t, config.EnsureHomeDir(home))

	stat, err := os.Stat(config.ExpandDBPath(home))
	require.NoError(t, err)
	require.True(t, stat.IsDir())

	cfg, err := config.ReadConfigFile(home)
	require.NoError(t, err)
	require.EqualValues(t, config.DefaultConfig, *cfg)
}

func TestHomeDirExists_File(t *testing.T) {
	f, done := testfs.NewTempFile(t)
	defer done()

	_, err := config.HomeDirExists(f.Name())
	require.Error(t, err)
}
