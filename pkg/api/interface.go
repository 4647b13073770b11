package api

import (
	"github.com/voidshard/gofer/pkg/event"
	"github.com/voidshard/gofer/pkg/structs"
)

// API represents the functions gofer servers should expose.
type API interface {
	// Implemented in gofer/internal/core.Service

	StartJob(req *structs.StartJobRequest) (*structs.Job, error)
	CancelJob(id int64) error

	Job(id int64) (*structs.Job, error)
	Jobs(q *structs.Query) ([]*structs.Job, error)
	ReadyJobs() ([]*structs.Job, error)
	Output(id int64) (string, error)

	AddDependency(jobID, dependsOn int64) error
	RemoveDependency(jobID, dependsOn int64) error
	Dependencies(jobID int64) (*structs.JobDependencies, error)

	DeleteJob(id int64) error
	ClearFinished() (int64, error)

	Subscribe(kind event.Kind, fn event.Handler) string
	Unsubscribe(token string)

	Close() error
}

type Server interface {
	ServeForever(api API) error
	Close() error
}
