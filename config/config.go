package config

import (
	"io"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	Serve     ServeConfig     `mapstructure:"serve"`
	Model     ModelConfig     `mapstructure:"model"`
	Heartbeat HeartbeatConfig `mapstructure:"heartbeat"`
}

type ServeConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	MaxInboundConns int    `mapstructure:"max_inbound_conns"`
	IdleTimeoutMS   int    `mapstructure:"idle_timeout_ms"`
	MaxElements     int    `mapstructure:"max_elements"`
	AcceptRate      int    `mapstructure:"accept_rate"`
	AcceptBurst     int    `mapstructure:"accept_burst"`
}

type ModelConfig struct {
	Name string `mapstructure:"name"`
}

type HeartbeatConfig struct {
	Moniker    string `mapstructure:"moniker"`
	URL        string `mapstructure:"url"`
	IntervalMS int    `mapstructure:"interval_ms"`
	TimeoutMS  int    `mapstructure:"timeout_ms"`
}

func ReadConfig(r io.Reader) (*Config, error) {
	decoder := toml.NewDecoder(r)
	decoder.SetTagName("mapstructure")
	config := &Config{}
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrap(err, "error decoding config file")
	}
	return config, nil
}

func ConvertDuration(base int, unit time.Duration) time.Duration {
	return time.Duration(base) * unit
}
