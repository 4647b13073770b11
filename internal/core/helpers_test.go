package core

import (
	"fmt"

	gomock "go.uber.org/mock/gomock"

	"github.com/voidshard/gofer/internal/mocks/pkg/runner_mock"
	"github.com/voidshard/gofer/pkg/runner"
	"github.com/voidshard/gofer/pkg/sink"
	"github.com/voidshard/gofer/pkg/structs"
)

func init() {
	timeNow = func() int64 { return 1000000 }
}

// okValidator accepts anything; script checking has its own tests.
type okValidator struct{}

func (okValidator) Validate(string) error { return nil }

func newTestService(rnr runner.Runner) *Service {
	return NewService(rnr, sink.NewMemory(), okValidator{}, nil)
}

// seedJob inserts a job directly, bypassing StartJob, so tests can
// arrange arbitrary statuses without runner choreography.
func seedJob(c *Service, status structs.Status) *structs.Job {
	c.nextID++
	j := &structs.Job{
		JobSpec: structs.JobSpec{
			Script: fmt.Sprintf("/scripts/%d.sh", c.nextID),
			Name:   fmt.Sprintf("%d.sh", c.nextID),
		},
		ID:        c.nextID,
		Status:    status,
		CreatedAt: timeNow(),
	}
	if status == structs.RUNNING {
		j.StartedAt = timeNow()
	}
	if structs.IsFinalStatus(status) {
		j.EndedAt = timeNow()
	}
	j.Sink = c.sink.NewRef(j.ID)
	c.jobs[j.ID] = j
	return j
}

// seedEdge wires both halves of an edge directly.
func seedEdge(c *Service, jobID, dependsOn int64) {
	c.jobs[jobID].DependsOn = append(c.jobs[jobID].DependsOn, dependsOn)
	c.jobs[dependsOn].Dependents = append(c.jobs[dependsOn].Dependents, jobID)
}

// expectSpawn stores the callbacks Spawn receives so a test can later
// play the process's output / exit back into the service.
func expectSpawn(rnr *runner_mock.MockRunner, into **runner.Callbacks) *gomock.Call {
	return rnr.EXPECT().Spawn(gomock.Any(), gomock.Any()).DoAndReturn(
		func(script string, cb *runner.Callbacks) (runner.Handle, error) {
			*into = cb
			return &struct{}{}, nil
		},
	)
}

func intptr(i int) *int { return &i }
