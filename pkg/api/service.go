package api

import (
	"github.com/voidshard/gofer/internal/core"
	"github.com/voidshard/gofer/pkg/runner"
	"github.com/voidshard/gofer/pkg/sink"
	"github.com/voidshard/gofer/pkg/structs"
)

// New returns the gofer API over the given runner and sink.
func New(rnr runner.Runner, snk sink.Sink, opts *structs.Options) (API, error) {
	return core.NewService(rnr, snk, nil, opts), nil
}

// NewDefault returns the API with the os/exec runner and a filesystem
// sink writing per-job logs under outputDir.
func NewDefault(outputDir string, opts *structs.Options) (API, error) {
	snk, err := sink.NewFS(outputDir)
	if err != nil {
		return nil, err
	}
	return New(runner.NewExec(nil), snk, opts)
}
