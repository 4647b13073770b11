package core

import (
	"fmt"
	"log"

	"github.com/voidshard/gofer/pkg/errors"
	"github.com/voidshard/gofer/pkg/structs"
)

// The dependency graph is the two mirrored edge lists on each job
// (DependsOn / Dependents). Both sides are always mutated together,
// under the service mutex, and only after every check has passed, so
// the graph is never cyclic or half-updated, even transiently.

// AddDependency adds the edge (jobID depends on dependsOn).
func (c *Service) AddDependency(jobID, dependsOn int64) error {
	evts := &eventQueue{}

	c.mu.Lock()
	err := c.addEdge(jobID, dependsOn)
	if err == nil {
		// an already-resolved dependency may settle the job at once
		if j, ok := c.jobs[jobID]; ok && j.Status == structs.PENDING {
			c.evaluate(j, evts)
		}
	}
	c.mu.Unlock()

	c.publish(evts)
	return err
}

// RemoveDependency removes the edge (jobID depends on dependsOn).
func (c *Service) RemoveDependency(jobID, dependsOn int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeEdge(jobID, dependsOn)
}

// addEdge validates then mutates; callers hold the mutex.
func (c *Service) addEdge(jobID, dependsOn int64) error {
	j, ok := c.jobs[jobID]
	if !ok {
		return fmt.Errorf("%w job %d", errors.ErrNotFound, jobID)
	}
	dep, ok := c.jobs[dependsOn]
	if !ok {
		return fmt.Errorf("%w job %d", errors.ErrNotFound, dependsOn)
	}
	if jobID == dependsOn {
		return fmt.Errorf("%w job %d", errors.ErrSelfDependency, jobID)
	}
	if j.HasDependency(dependsOn) {
		return fmt.Errorf("%w %d -> %d", errors.ErrDuplicateEdge, jobID, dependsOn)
	}
	if !j.CanDependOnMore(c.opts.MaxDependencies) {
		return fmt.Errorf("%w job %d already has %d dependencies", errors.ErrLimitExceeded, jobID, len(j.DependsOn))
	}
	if c.wouldCycle(jobID, dependsOn) {
		return fmt.Errorf("%w %d -> %d", errors.ErrCycleDetected, jobID, dependsOn)
	}

	j.DependsOn = append(j.DependsOn, dependsOn)
	dep.Dependents = append(dep.Dependents, jobID)

	if len(j.DependsOn) >= c.opts.WarnDependencies {
		log.Println("[Service] job", jobID, "has", len(j.DependsOn), "dependencies")
	}
	return nil
}

// removeEdge drops both halves of an existing edge; callers hold the mutex.
func (c *Service) removeEdge(jobID, dependsOn int64) error {
	j, ok := c.jobs[jobID]
	if !ok || !j.HasDependency(dependsOn) {
		return fmt.Errorf("%w edge %d -> %d", errors.ErrNotFound, jobID, dependsOn)
	}

	j.DependsOn = without(j.DependsOn, dependsOn)
	if dep, ok := c.jobs[dependsOn]; ok {
		dep.Dependents = without(dep.Dependents, jobID)
	}
	return nil
}

// wouldCycle reports whether adding (jobID depends on proposed) would
// close a cycle. Depth first walk from jobID over existing DependsOn
// edges with the proposed edge included, tracking the recursion stack;
// revisiting a node still on the stack means a cycle. The real graph is
// never touched.
func (c *Service) wouldCycle(jobID, proposed int64) bool {
	onStack := map[int64]bool{}
	visited := map[int64]bool{}

	var visit func(id int64) bool
	visit = func(id int64) bool {
		if onStack[id] {
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		onStack[id] = true
		defer delete(onStack, id)

		j, ok := c.jobs[id]
		if !ok {
			return false
		}
		edges := j.DependsOn
		if id == jobID {
			edges = append(append([]int64{}, edges...), proposed)
		}
		for _, next := range edges {
			if visit(next) {
				return true
			}
		}
		return false
	}
	return visit(jobID)
}

// canRun reports whether every dependency of j is completed.
// A failed, cancelled or skipped dependency is returned as blocked (the
// job can never run; this is what makes skips cascade). A missing or
// still in-flight dependency simply leaves reason set (still waiting).
func (c *Service) canRun(j *structs.Job) (ok bool, blocked *structs.Job, reason string) {
	for _, depID := range j.DependsOn {
		dep, found := c.jobs[depID]
		if !found {
			return false, nil, fmt.Sprintf("dependency %d not found", depID)
		}
		switch dep.Status {
		case structs.COMPLETED:
			continue
		case structs.FAILED, structs.CANCELLED, structs.SKIPPED:
			return false, dep, fmt.Sprintf("dependency %d (%s) %s", dep.ID, dep.Name, dep.Status)
		default:
			return false, nil, fmt.Sprintf("dependency %d (%s) is %s", dep.ID, dep.Name, dep.Status)
		}
	}
	return true, nil, ""
}

// ReadyJobs returns pending jobs whose every dependency is completed.
// Diagnostics; propagation is event driven and does not poll this.
func (c *Service) ReadyJobs() ([]*structs.Job, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := []*structs.Job{}
	for _, j := range c.jobs {
		if j.Status != structs.PENDING {
			continue
		}
		if ok, _, _ := c.canRun(j); ok {
			out = append(out, copyJob(j))
		}
	}
	sortJobs(out)
	return out, nil
}

// Dependencies describes a job's edges, with the current status of
// each dependency. Deleted dependencies are reported with a blank
// status so callers can see the job is permanently stuck.
func (c *Service) Dependencies(jobID int64) (*structs.JobDependencies, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	j, ok := c.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("%w job %d", errors.ErrNotFound, jobID)
	}

	out := &structs.JobDependencies{
		JobID:      jobID,
		DependsOn:  []*structs.DependencyInfo{},
		Dependents: append([]int64{}, j.Dependents...),
	}
	for _, depID := range j.DependsOn {
		info := &structs.DependencyInfo{ID: depID}
		if dep, found := c.jobs[depID]; found {
			info.Name = dep.Name
			info.Status = dep.Status
		}
		out.DependsOn = append(out.DependsOn, info)
	}
	return out, nil
}

func without(ids []int64, drop int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}
