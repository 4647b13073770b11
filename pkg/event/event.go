package event

import (
	"github.com/voidshard/gofer/pkg/structs"
)

type Kind string

const (
	// KindJobCreated fires when a job is accepted into the registry.
	KindJobCreated Kind = "job_created"

	// KindJobFinished fires when a job enters a final status
	// (completed, failed, cancelled or skipped).
	KindJobFinished Kind = "job_finished"

	// KindJobOutput fires for every chunk of output captured from a
	// job's process.
	KindJobOutput Kind = "job_output"
)

// Event is delivered to subscribers. Job is a snapshot; mutating it
// has no effect on the registry.
type Event struct {
	Kind Kind

	// Job is set for job_created / job_finished events.
	Job *structs.Job

	// JobID, IsErr and Text are set for job_output events.
	// IsErr marks chunks captured from stderr.
	JobID int64
	IsErr bool
	Text  string
}
