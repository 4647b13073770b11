package main

import (
	"github.com/voidshard/gofer/pkg/api"
	"github.com/voidshard/gofer/pkg/api/http/server"
	"github.com/voidshard/gofer/pkg/config"
	"github.com/voidshard/gofer/pkg/structs"
)

const (
	docServer = `Run the gofer server`
)

type optsServer struct {
	optsGeneral

	ConfigFile string `long:"config" env:"GOFER_CONFIG" description:"Path to YAML config file"`

	Addr      string `long:"addr" env:"GOFER_ADDR" description:"Address to bind to"`
	OutputDir string `long:"output-dir" env:"GOFER_OUTPUT_DIR" description:"Directory for per-job output logs"`

	TLSCert string `long:"cert" env:"GOFER_CERT" description:"Path to TLS certificate"`
	TLSKey  string `long:"key" env:"GOFER_KEY" description:"Path to TLS key"`
}

func (c *optsServer) Execute(args []string) error {
	// This main runs the scheduler itself plus an HTTP server so callers
	// can start, inspect and cancel jobs over the network. Anyone who
	// wants gofer embedded in-process can import pkg/api instead and
	// skip this binary entirely.
	cfg, err := config.Load(c.ConfigFile)
	if err != nil {
		return err
	}

	// flags / env win over the config file
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if c.OutputDir != "" {
		cfg.OutputDir = c.OutputDir
	}
	if c.TLSCert != "" {
		cfg.TLS.Cert = c.TLSCert
	}
	if c.TLSKey != "" {
		cfg.TLS.Key = c.TLSKey
	}
	if c.Debug {
		cfg.Debug = true
	}

	svc, err := api.NewDefault(cfg.OutputDir, &structs.Options{
		ScriptExtensions: cfg.ScriptExtensions,
	})
	if err != nil {
		return err
	}
	defer svc.Close()

	s := server.NewServer(cfg.Addr, cfg.TLS.Cert, cfg.TLS.Key, cfg.Debug)
	return s.ServeForever(svc)
}
