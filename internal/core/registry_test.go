package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/voidshard/gofer/internal/mocks/pkg/runner_mock"
	"github.com/voidshard/gofer/pkg/errors"
	"github.com/voidshard/gofer/pkg/event"
	"github.com/voidshard/gofer/pkg/structs"
)

func TestCreateJobQueuedWithNoStartTime(t *testing.T) {
	svc := newTestService(nil)

	svc.mu.Lock()
	j, err := svc.createJob(&structs.JobSpec{Script: "/scripts/build.sh"})
	svc.mu.Unlock()

	assert.Nil(t, err)
	assert.Equal(t, structs.QUEUED, j.Status)
	assert.Equal(t, "build.sh", j.Name)
	assert.Equal(t, int64(1), j.ID)
	assert.Equal(t, timeNow(), j.CreatedAt)
	assert.Zero(t, j.StartedAt)
	assert.Zero(t, j.EndedAt)
}

func TestJobIDsNeverReused(t *testing.T) {
	svc := newTestService(nil)
	a := seedJob(svc, structs.COMPLETED)
	assert.Nil(t, svc.DeleteJob(a.ID))

	b := seedJob(svc, structs.PENDING)

	assert.Greater(t, b.ID, a.ID)
}

func TestJobNotFound(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.Job(404)

	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestJobReturnsSnapshot(t *testing.T) {
	svc := newTestService(nil)
	a := seedJob(svc, structs.PENDING)
	b := seedJob(svc, structs.PENDING)
	seedEdge(svc, a.ID, b.ID)

	got, err := svc.Job(a.ID)
	assert.Nil(t, err)

	got.Status = structs.FAILED
	got.DependsOn[0] = 999

	assert.Equal(t, structs.PENDING, svc.jobs[a.ID].Status)
	assert.Equal(t, []int64{b.ID}, svc.jobs[a.ID].DependsOn)
}

func TestJobsQuery(t *testing.T) {
	svc := newTestService(nil)
	a := seedJob(svc, structs.COMPLETED)
	b := seedJob(svc, structs.RUNNING)
	c := seedJob(svc, structs.PENDING)
	d := seedJob(svc, structs.FAILED)

	cases := []struct {
		Name   string
		Given  *structs.Query
		Expect []int64
	}{
		{"All", nil, []int64{a.ID, b.ID, c.ID, d.ID}},
		{"ByStatus", &structs.Query{Statuses: []structs.Status{structs.RUNNING, structs.PENDING}}, []int64{b.ID, c.ID}},
		{"ByID", &structs.Query{JobIDs: []int64{d.ID, a.ID}}, []int64{a.ID, d.ID}},
		{"Limit", &structs.Query{Limit: 2}, []int64{a.ID, b.ID}},
		{"Offset", &structs.Query{Offset: 3}, []int64{d.ID}},
		{"OffsetPastEnd", &structs.Query{Offset: 10}, []int64{}},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := svc.Jobs(tc.Given)

			assert.Nil(t, err)
			ids := []int64{}
			for _, j := range got {
				ids = append(ids, j.ID)
			}
			assert.Equal(t, tc.Expect, ids)
		})
	}
}

func TestDeleteRunningJobRefused(t *testing.T) {
	svc := newTestService(nil)
	j := seedJob(svc, structs.RUNNING)

	err := svc.DeleteJob(j.ID)

	assert.ErrorIs(t, err, errors.ErrJobRunning)
	_, found := svc.jobs[j.ID]
	assert.True(t, found)
}

func TestDeleteFinishedJob(t *testing.T) {
	svc := newTestService(nil)
	j := seedJob(svc, structs.COMPLETED)

	err := svc.DeleteJob(j.ID)

	assert.Nil(t, err)
	jobs, _ := svc.Jobs(nil)
	assert.Empty(t, jobs)
}

func TestDeleteDependencyStrandsDependent(t *testing.T) {
	svc := newTestService(nil)
	dep := seedJob(svc, structs.COMPLETED)
	j := seedJob(svc, structs.PENDING)
	seedEdge(svc, j.ID, dep.ID)

	assert.Nil(t, svc.DeleteJob(dep.ID))

	// the dependent is not auto-skipped; it waits forever
	assert.Equal(t, structs.PENDING, svc.jobs[j.ID].Status)
	ready, _ := svc.ReadyJobs()
	assert.Empty(t, ready)
}

func TestClearFinished(t *testing.T) {
	svc := newTestService(nil)
	seedJob(svc, structs.COMPLETED)
	seedJob(svc, structs.FAILED)
	seedJob(svc, structs.CANCELLED)
	seedJob(svc, structs.SKIPPED)
	queued := seedJob(svc, structs.QUEUED)
	pending := seedJob(svc, structs.PENDING)
	running := seedJob(svc, structs.RUNNING)

	count, err := svc.ClearFinished()

	assert.Nil(t, err)
	assert.Equal(t, int64(4), count)
	jobs, _ := svc.Jobs(nil)
	assert.Len(t, jobs, 3)
	for _, id := range []int64{queued.ID, pending.ID, running.ID} {
		_, found := svc.jobs[id]
		assert.True(t, found)
	}
}

func TestMarkNotFound(t *testing.T) {
	svc := newTestService(nil)

	assert.ErrorIs(t, svc.MarkCompleted(404), errors.ErrNotFound)
	assert.ErrorIs(t, svc.MarkFailed(404), errors.ErrNotFound)
	assert.ErrorIs(t, svc.MarkCancelled(404), errors.ErrNotFound)
}

func TestMarkCompletedStartsDependent(t *testing.T) {
	rnr := runner_mock.NewMockRunner(gomock.NewController(t))
	svc := newTestService(rnr)

	a := seedJob(svc, structs.RUNNING)
	b := seedJob(svc, structs.PENDING)
	seedEdge(svc, b.ID, a.ID)

	rnr.EXPECT().Spawn(b.Script, gomock.Any()).Return(&struct{}{}, nil)

	err := svc.MarkCompleted(a.ID)

	assert.Nil(t, err)
	assert.Equal(t, structs.COMPLETED, svc.jobs[a.ID].Status)
	assert.Equal(t, timeNow(), svc.jobs[a.ID].EndedAt)
	assert.Equal(t, structs.RUNNING, svc.jobs[b.ID].Status)
	assert.Equal(t, timeNow(), svc.jobs[b.ID].StartedAt)
}

func TestChainPropagation(t *testing.T) {
	// 1 <- 2 <- 3; completing each link starts the next
	rnr := runner_mock.NewMockRunner(gomock.NewController(t))
	svc := newTestService(rnr)

	j1 := seedJob(svc, structs.RUNNING)
	j2 := seedJob(svc, structs.PENDING)
	j3 := seedJob(svc, structs.PENDING)
	seedEdge(svc, j2.ID, j1.ID)
	seedEdge(svc, j3.ID, j2.ID)

	rnr.EXPECT().Spawn(j2.Script, gomock.Any()).Return(&struct{}{}, nil)
	assert.Nil(t, svc.MarkCompleted(j1.ID))
	assert.Equal(t, structs.RUNNING, svc.jobs[j2.ID].Status)
	assert.Equal(t, structs.PENDING, svc.jobs[j3.ID].Status)

	rnr.EXPECT().Spawn(j3.Script, gomock.Any()).Return(&struct{}{}, nil)
	assert.Nil(t, svc.MarkCompleted(j2.ID))
	assert.Equal(t, structs.RUNNING, svc.jobs[j3.ID].Status)
}

func TestFailureSkipsTransitively(t *testing.T) {
	svc := newTestService(nil)

	j1 := seedJob(svc, structs.RUNNING)
	j2 := seedJob(svc, structs.PENDING)
	j3 := seedJob(svc, structs.PENDING)
	seedEdge(svc, j2.ID, j1.ID)
	seedEdge(svc, j3.ID, j2.ID)

	finished := []int64{}
	svc.Subscribe(event.KindJobFinished, func(evt *event.Event) {
		finished = append(finished, evt.Job.ID)
	})

	err := svc.MarkFailed(j1.ID)

	assert.Nil(t, err)
	assert.Equal(t, structs.FAILED, svc.jobs[j1.ID].Status)
	assert.Equal(t, structs.SKIPPED, svc.jobs[j2.ID].Status)
	assert.Equal(t, structs.SKIPPED, svc.jobs[j3.ID].Status)
	assert.Contains(t, svc.jobs[j2.ID].SkipReason, "failed")
	assert.NotEmpty(t, svc.jobs[j3.ID].SkipReason)
	assert.Equal(t, timeNow(), svc.jobs[j3.ID].EndedAt)
	// a skip is a finish: every job in the subgraph got an event
	assert.Equal(t, []int64{j1.ID, j2.ID, j3.ID}, finished)
}

func TestCancelledDependencySkips(t *testing.T) {
	svc := newTestService(nil)

	a := seedJob(svc, structs.RUNNING)
	b := seedJob(svc, structs.PENDING)
	seedEdge(svc, b.ID, a.ID)

	err := svc.MarkCancelled(a.ID)

	assert.Nil(t, err)
	assert.Equal(t, structs.SKIPPED, svc.jobs[b.ID].Status)
	assert.Contains(t, svc.jobs[b.ID].SkipReason, "cancelled")
}

func TestDiamondWaitsForBothSides(t *testing.T) {
	// b and c depend on a; d depends on both b and c
	rnr := runner_mock.NewMockRunner(gomock.NewController(t))
	svc := newTestService(rnr)

	a := seedJob(svc, structs.RUNNING)
	b := seedJob(svc, structs.PENDING)
	c := seedJob(svc, structs.PENDING)
	d := seedJob(svc, structs.PENDING)
	seedEdge(svc, b.ID, a.ID)
	seedEdge(svc, c.ID, a.ID)
	seedEdge(svc, d.ID, b.ID)
	seedEdge(svc, d.ID, c.ID)

	rnr.EXPECT().Spawn(b.Script, gomock.Any()).Return(&struct{}{}, nil)
	rnr.EXPECT().Spawn(c.Script, gomock.Any()).Return(&struct{}{}, nil)
	assert.Nil(t, svc.MarkCompleted(a.ID))
	assert.Equal(t, structs.PENDING, svc.jobs[d.ID].Status)

	assert.Nil(t, svc.MarkCompleted(b.ID))
	assert.Equal(t, structs.PENDING, svc.jobs[d.ID].Status)

	rnr.EXPECT().Spawn(d.Script, gomock.Any()).Return(&struct{}{}, nil)
	assert.Nil(t, svc.MarkCompleted(c.ID))
	assert.Equal(t, structs.RUNNING, svc.jobs[d.ID].Status)
}

func TestMarkAlreadyFinalIsNoop(t *testing.T) {
	svc := newTestService(nil)
	j := seedJob(svc, structs.CANCELLED)

	err := svc.MarkCompleted(j.ID)

	assert.Nil(t, err)
	assert.Equal(t, structs.CANCELLED, svc.jobs[j.ID].Status)
}
