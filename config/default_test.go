package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateDefaultConfigFile(t *testing.T) {
	generatedCfg := GenerateDefaultConfigFile()
	cfg, err := ReadConfig(bytes.NewReader(generatedCfg))
	require.NoError(t, err)
	require.EqualValues(t, DefaultConfig, *cfg)
}

func TestReadConfig_Partial(t *testing.T) {
	in := strings.NewReader(`
log_level = "debug"

[serve]
  port = 9090
`)
	cfg, err := ReadConfig(in)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 9090, cfg.Serve.Port)
	// unset sections default to zero values
	require.Equal(t, "", cfg.Model.Name)
}

func TestReadConfig_Invalid(t *testing.T) {
	_, err := ReadConfig(strings.NewReader("log_level = [broken"))
	require.Error(t, err)
}
