package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defAddr      = "localhost:8200"
	defOutputDir = "/tmp/gofer"
)

// TLS holds optional cert paths for serving the API over HTTPS.
type TLS struct {
	CACert string `yaml:"ca_cert"`
	Cert   string `yaml:"cert"`
	Key    string `yaml:"key"`
}

// Config is the server's file-based configuration. Flags / env vars
// set on the command line win over values loaded from file.
type Config struct {
	// Addr the HTTP API binds to.
	Addr string `yaml:"addr"`

	// OutputDir is where per-job output logs are written.
	OutputDir string `yaml:"output_dir"`

	// ScriptExtensions whitelists script file extensions accepted by
	// the validator (eg. ".sh"). Empty accepts any executable file.
	ScriptExtensions []string `yaml:"script_extensions"`

	// Debug enables per-request logging.
	Debug bool `yaml:"debug"`

	TLS TLS `yaml:"tls"`
}

// Default returns a config with sane local defaults.
func Default() *Config {
	return &Config{
		Addr:      defAddr,
		OutputDir: defOutputDir,
	}
}

// Load reads a YAML config file. A blank path returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Addr == "" {
		cfg.Addr = defAddr
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defOutputDir
	}
	return cfg, nil
}
