package core

import (
	"fmt"
	"log"

	"github.com/voidshard/gofer/pkg/errors"
	"github.com/voidshard/gofer/pkg/event"
	"github.com/voidshard/gofer/pkg/runner"
	"github.com/voidshard/gofer/pkg/structs"
)

// stderrMarker prefixes each captured stderr chunk in the output sink
// so the two streams can be told apart after the fact.
const stderrMarker = "[stderr] "

// StartJob creates a job for the given script and either hands it to
// the process runner (no dependencies) or leaves it PENDING for
// propagation. The job is returned either way so callers can see which.
//
// Dependency edges are registered all-or-nothing: the first bad edge
// rolls the whole job back and its error is returned.
func (c *Service) StartJob(req *structs.StartJobRequest) (*structs.Job, error) {
	if req == nil {
		return nil, fmt.Errorf("%w nil request", errors.ErrInvalidArg)
	}
	evts := &eventQueue{}

	c.mu.Lock()
	j, err := c.startJob(req, evts)
	c.mu.Unlock()

	c.publish(evts)
	return j, err
}

func (c *Service) startJob(req *structs.StartJobRequest, evts *eventQueue) (*structs.Job, error) {
	deps := req.DependsOn
	j, err := c.createJob(&req.JobSpec)
	if err != nil {
		return nil, err
	}

	for _, depID := range deps {
		if err = c.addEdge(j.ID, depID); err != nil {
			// never leave a partial dependency set attached
			for _, added := range append([]int64{}, j.DependsOn...) {
				c.removeEdge(j.ID, added)
			}
			delete(c.jobs, j.ID)
			return nil, err
		}
	}

	evts.add(&event.Event{Kind: event.KindJobCreated, Job: copyJob(j)})

	if len(j.DependsOn) == 0 {
		if err = c.startProcess(j, evts); err != nil {
			return copyJob(j), err
		}
		return copyJob(j), nil
	}

	j.Status = structs.PENDING
	// dependencies may already be settled, eg. depending on a job
	// that completed before we were asked to start this one
	c.evaluate(j, evts)
	return copyJob(j), nil
}

// CancelJob requests termination of a running job's process and marks
// the job CANCELLED at once. We do not wait for the process to die;
// cancellation is authoritative and a later exit notification for this
// job is discarded.
func (c *Service) CancelJob(id int64) error {
	evts := &eventQueue{}

	c.mu.Lock()
	err := func() error {
		j, ok := c.jobs[id]
		if !ok {
			return fmt.Errorf("%w job %d", errors.ErrNotFound, id)
		}
		if j.Status != structs.RUNNING {
			return fmt.Errorf("%w job %d is %s", errors.ErrNotRunning, id, j.Status)
		}
		if h, held := c.handles[id]; held {
			if terr := c.runner.Terminate(h); terr != nil {
				log.Println("[Executor] terminate job", id, ":", terr)
			}
		}
		c.finish(j, structs.CANCELLED, "", evts)
		c.propagate(id, evts)
		return nil
	}()
	c.mu.Unlock()

	c.publish(evts)
	return err
}

// Output returns everything captured from the job's process so far.
func (c *Service) Output(id int64) (string, error) {
	c.mu.Lock()
	j, ok := c.jobs[id]
	var ref string
	if ok {
		ref = j.Sink
	}
	c.mu.Unlock()

	if !ok {
		return "", fmt.Errorf("%w job %d", errors.ErrNotFound, id)
	}
	if !c.sink.Exists(ref) {
		return "", nil
	}
	return c.sink.Read(ref)
}

// startProcess hands a job to the process runner. Callers hold the
// mutex. On spawn failure the job is marked FAILED (the error text
// lands in its output sink) and the error is returned so callers can
// cascade or surface it.
func (c *Service) startProcess(j *structs.Job, evts *eventQueue) error {
	j.Status = structs.RUNNING
	j.StartedAt = timeNow()

	id := j.ID
	h, err := c.runner.Spawn(j.Script, &runner.Callbacks{
		OnStdout: func(text string) { c.onOutput(id, text, false) },
		OnStderr: func(text string) { c.onOutput(id, text, true) },
		OnExit:   func(code *int) { c.onExit(id, code) },
	})
	if err != nil {
		c.sink.Append(j.Sink, stderrMarker+err.Error()+"\n")
		c.finish(j, structs.FAILED, "", evts)
		return err
	}

	c.handles[id] = h
	return nil
}

// onOutput is called from runner goroutines with a captured chunk.
// Chunks for jobs no longer running (cancelled) are dropped.
func (c *Service) onOutput(id int64, text string, isErr bool) {
	c.mu.Lock()
	j, ok := c.jobs[id]
	if !ok || j.Status != structs.RUNNING {
		c.mu.Unlock()
		return
	}
	chunk := text
	if isErr {
		chunk = stderrMarker + text
	}
	err := c.sink.Append(j.Sink, chunk)
	c.mu.Unlock()

	if err != nil {
		log.Println("[Executor] append output job", id, ":", err)
		return
	}
	c.bus.Publish(&event.Event{Kind: event.KindJobOutput, JobID: id, IsErr: isErr, Text: text})
}

// onExit is called once from a runner goroutine when the process ends.
// Exit code 0 completes the job; anything else, including a code the
// runner could not resolve, fails it. Exits for jobs already in a final
// state (ie. cancelled) are discarded.
func (c *Service) onExit(id int64, code *int) {
	evts := &eventQueue{}

	c.mu.Lock()
	j, ok := c.jobs[id]
	if ok && j.Status == structs.RUNNING {
		status := structs.FAILED
		if code != nil && *code == 0 {
			status = structs.COMPLETED
		}
		c.finish(j, status, "", evts)
		c.propagate(id, evts)
	}
	c.mu.Unlock()

	c.publish(evts)
}
