package core

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/voidshard/gofer/pkg/errors"
	"github.com/voidshard/gofer/pkg/event"
	"github.com/voidshard/gofer/pkg/structs"
)

// createJob validates the script, allocates an ID and inserts the job
// QUEUED. Callers hold the mutex; the job_created event is queued by
// the caller once it knows the job will be kept (StartJob rolls the
// job back if a dependency edge is rejected).
func (c *Service) createJob(spec *structs.JobSpec) (*structs.Job, error) {
	err := c.validator.Validate(spec.Script)
	if err != nil {
		return nil, err
	}

	c.nextID++
	j := &structs.Job{
		JobSpec:   *spec,
		ID:        c.nextID,
		Status:    structs.QUEUED,
		CreatedAt: timeNow(),
	}
	if j.Name == "" {
		j.Name = filepath.Base(spec.Script)
	}
	j.DependsOn = nil // edges only via addEdge
	j.Sink = c.sink.NewRef(j.ID)

	c.jobs[j.ID] = j
	return j, nil
}

// Job returns a snapshot of the job with the given id.
func (c *Service) Job(id int64) (*structs.Job, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	j, ok := c.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w job %d", errors.ErrNotFound, id)
	}
	return copyJob(j), nil
}

// Jobs returns snapshots of jobs matching the query, ordered by ID.
func (c *Service) Jobs(q *structs.Query) ([]*structs.Job, error) {
	if q == nil {
		q = &structs.Query{}
	}
	q.Sanitize()

	c.mu.Lock()
	matched := []*structs.Job{}
	for _, j := range c.jobs {
		if q.Matches(j) {
			matched = append(matched, copyJob(j))
		}
	}
	c.mu.Unlock()

	sortJobs(matched)
	if q.Offset >= len(matched) {
		return []*structs.Job{}, nil
	}
	matched = matched[q.Offset:]
	if len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

// DeleteJob removes a job from the registry. Running jobs must be
// cancelled first. Edges pointing at the deleted job are left in place:
// a dependent still waiting on it can never leave PENDING, which is
// accepted scheduler behaviour (we log about it rather than auto-heal).
func (c *Service) DeleteJob(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	j, ok := c.jobs[id]
	if !ok {
		return fmt.Errorf("%w job %d", errors.ErrNotFound, id)
	}
	if j.Status == structs.RUNNING {
		return fmt.Errorf("%w job %d must be cancelled before delete", errors.ErrJobRunning, id)
	}

	for _, depID := range j.Dependents {
		if dep, found := c.jobs[depID]; found && dep.Status == structs.PENDING {
			log.Println("[Service] deleting job", id, "strands pending dependent", depID)
		}
	}

	delete(c.jobs, id)
	delete(c.handles, id)
	return nil
}

// ClearFinished removes every job in a final status and returns how
// many were removed. Queued, pending and running jobs are untouched.
func (c *Service) ClearFinished() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int64
	for id, j := range c.jobs {
		if structs.IsFinalStatus(j.Status) {
			delete(c.jobs, id)
			count++
		}
	}
	return count, nil
}

// MarkCompleted transitions a running job to COMPLETED and propagates.
func (c *Service) MarkCompleted(id int64) error {
	return c.mark(id, structs.COMPLETED)
}

// MarkFailed transitions a running job to FAILED and propagates.
func (c *Service) MarkFailed(id int64) error {
	return c.mark(id, structs.FAILED)
}

// MarkCancelled transitions a running job to CANCELLED and propagates.
// This records the state only; CancelJob is what signals the process.
func (c *Service) MarkCancelled(id int64) error {
	return c.mark(id, structs.CANCELLED)
}

func (c *Service) mark(id int64, status structs.Status) error {
	evts := &eventQueue{}

	c.mu.Lock()
	err := func() error {
		j, ok := c.jobs[id]
		if !ok {
			return fmt.Errorf("%w job %d", errors.ErrNotFound, id)
		}
		if structs.IsFinalStatus(j.Status) {
			// already settled; a late notification changes nothing
			return nil
		}
		c.finish(j, status, "", evts)
		c.propagate(j.ID, evts)
		return nil
	}()
	c.mu.Unlock()

	c.publish(evts)
	return err
}

// finish applies a terminal transition. Callers hold the mutex.
func (c *Service) finish(j *structs.Job, status structs.Status, skipReason string, evts *eventQueue) {
	j.Status = status
	j.EndedAt = timeNow()
	j.SkipReason = skipReason
	delete(c.handles, j.ID)
	evts.add(&event.Event{Kind: event.KindJobFinished, Job: copyJob(j)})
}

// propagate walks the finished job's dependents; runnable ones start,
// ones blocked by a failed or cancelled dependency are skipped, and a
// skip is itself a finish so it cascades down the subgraph. Recursion
// terminates because the graph is acyclic. A dependent still waiting
// on some other job is left alone; it is revisited when that job ends.
func (c *Service) propagate(id int64, evts *eventQueue) {
	j, ok := c.jobs[id]
	if !ok {
		return
	}

	for _, depID := range append([]int64{}, j.Dependents...) {
		dep, found := c.jobs[depID]
		if !found || dep.Status != structs.PENDING {
			continue
		}
		c.evaluate(dep, evts)
	}
}

// evaluate settles a PENDING job whose dependencies may have resolved:
// start it, skip it, or leave it waiting. Callers hold the mutex.
func (c *Service) evaluate(j *structs.Job, evts *eventQueue) {
	ok, blocked, _ := c.canRun(j)
	if ok {
		err := c.startProcess(j, evts)
		if err != nil {
			// startProcess marked the job failed; cascade
			c.propagate(j.ID, evts)
		}
		return
	}
	if blocked != nil {
		reason := fmt.Sprintf("dependency %d (%s) %s", blocked.ID, blocked.Name, lower(blocked.Status))
		c.finish(j, structs.SKIPPED, reason, evts)
		c.propagate(j.ID, evts)
	}
}

func sortJobs(jobs []*structs.Job) {
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].ID < jobs[k].ID })
}

func lower(s structs.Status) string {
	return strings.ToLower(string(s))
}
