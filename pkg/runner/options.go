package runner

import (
	"time"
)

const (
	defGracePeriod = 5 * time.Second
	defChunkSize   = 4096
)

// Options configure the exec runner.
type Options struct {
	// GracePeriod is how long Terminate waits after SIGTERM before
	// escalating to SIGKILL.
	GracePeriod time.Duration

	// ChunkSize is the read buffer size for output streaming.
	ChunkSize int

	// WorkDir, if set, is the working directory for spawned scripts.
	// Defaults to the scheduler process's working directory.
	WorkDir string
}

func (o *Options) sanitize() {
	if o.GracePeriod <= 0 {
		o.GracePeriod = defGracePeriod
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = defChunkSize
	}
}
