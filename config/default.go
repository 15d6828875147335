package config

import (
	"bytes"
	"io"
	"os"
	"path"
	"text/template"

	"github.com/pkg/errors"

	"tensord/log"
)

var DefaultConfig = Config{
	LogLevel: log.LevelInfo.String(),
	Serve: ServeConfig{
		Host:            "127.0.0.1",
		Port:            8080,
		MaxInboundConns: 64,
		IdleTimeoutMS:   10000,
		MaxElements:     1 << 24,
		AcceptRate:      64,
		AcceptBurst:     192,
	},
	Model: ModelConfig{
		Name: "ones",
	},
	Heartbeat: HeartbeatConfig{
		Moniker:    "",
		URL:        "",
		IntervalMS: 30000,
		TimeoutMS:  10000,
	},
}

var defaultConfigTemplateData = `# Sets the daemon's log level. Valid values: trace, debug, info, warn,
# error, fatal.
log_level = "{{.LogLevel}}"

# Configures which stored model the daemon serves.
[model]
  name = "{{.Model.Name}}"

# Configures the exchange listener.
[serve]
  # Sets the address the listener binds to.
  host = "{{.Serve.Host}}"
  port = {{.Serve.Port}}
  # Sets how many connections are served concurrently.
  max_inbound_conns = {{.Serve.MaxInboundConns}}
  # Sets how long a connection may sit idle mid-exchange.
  idle_timeout_ms = {{.Serve.IdleTimeoutMS}}
  # Sets the maximum element count accepted in one array.
  max_elements = {{.Serve.MaxElements}}
  # Sets the accepted connection rate and burst.
  accept_rate = {{.Serve.AcceptRate}}
  accept_burst = {{.Serve.AcceptBurst}}

# Configures periodic liveness reports. Disabled when url is empty.
[heartbeat]
  moniker = "{{.Heartbeat.Moniker}}"
  url = "{{.Heartbeat.URL}}"
  interval_ms = {{.Heartbeat.IntervalMS}}
  timeout_ms = {{.Heartbeat.TimeoutMS}}
`

var defaultConfigTemplate *template.Template

func init() {
	defaultConfigTemplate = template.Must(template.New("config").Parse(defaultConfigTemplateData))
}

func GenerateDefaultConfigFile() []byte {
	buf := new(bytes.Buffer)
	if err := defaultConfigTemplate.Execute(buf, DefaultConfig); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func ReadConfigFile(homeDir string) (*Config, error) {
	f, err := os.OpenFile(path.Join(homeDir, "config.toml"), os.O_RDONLY, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "error opening config file for reading")
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func WriteDefaultConfigFile(homeDir string) error {
	f, err := os.OpenFile(path.Join(homeDir, "config.toml"), os.O_CREATE|os.O_WRONLY, 0755)
	if err != nil {
		return errors.Wrap(err, "error opening config file for writing")
	}
	defer f.Close()
	if _, err := io.Copy(f, bytes.NewReader(GenerateDefaultConfigFile())); err != nil {
		return errors.Wrap(err, "error writing config file")
	}
	return nil
}
