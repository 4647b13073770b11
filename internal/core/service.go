package core

import (
	"sync"
	"time"

	"github.com/voidshard/gofer/pkg/event"
	"github.com/voidshard/gofer/pkg/runner"
	"github.com/voidshard/gofer/pkg/sink"
	"github.com/voidshard/gofer/pkg/structs"
)

const (
	// defMaxDependencies is the hard cap on outgoing edges per job
	defMaxDependencies = 10

	// defWarnDependencies is where we start logging that a job has
	// a suspicious number of dependencies (insertion still succeeds)
	defWarnDependencies = 5
)

// timeNow is a hook for tests
var timeNow = func() int64 { return time.Now().Unix() }

// Service owns the job registry, the dependency graph over it and the
// executor that drives external processes. All state lives behind one
// mutex: propagation touches many jobs at once, so fine grained locking
// would not be safe.
//
// Nothing here blocks; script execution happens in child processes and
// their output / exit arrive later as runner callbacks, which re-enter
// through the same mutex.
type Service struct {
	mu sync.Mutex

	jobs    map[int64]*structs.Job
	handles map[int64]runner.Handle
	nextID  int64

	bus       *event.Bus
	runner    runner.Runner
	sink      sink.Sink
	validator Validator
	opts      *structs.Options
}

// NewService returns a Service wired to the given runner and sink.
// A nil validator gets the default script validator; a nil opts gets
// default limits.
func NewService(rnr runner.Runner, snk sink.Sink, val Validator, opts *structs.Options) *Service {
	if opts == nil {
		opts = &structs.Options{}
	}
	if opts.MaxDependencies <= 0 {
		opts.MaxDependencies = defMaxDependencies
	}
	if opts.WarnDependencies <= 0 {
		opts.WarnDependencies = defWarnDependencies
	}
	if val == nil {
		val = NewScriptValidator(opts.ScriptExtensions)
	}
	return &Service{
		jobs:      map[int64]*structs.Job{},
		handles:   map[int64]runner.Handle{},
		bus:       event.NewBus(),
		runner:    rnr,
		sink:      snk,
		validator: val,
		opts:      opts,
	}
}

// Subscribe registers fn for events of the given kind.
func (c *Service) Subscribe(kind event.Kind, fn event.Handler) string {
	return c.bus.Subscribe(kind, fn)
}

// Unsubscribe drops a subscription made with Subscribe.
func (c *Service) Unsubscribe(token string) {
	c.bus.Unsubscribe(token)
}

func (c *Service) Close() error {
	return nil
}

// events collected during a locked mutation; published only after the
// lock is released so subscribers may call straight back into the API.
type eventQueue struct {
	pending []*event.Event
}

func (q *eventQueue) add(evt *event.Event) {
	q.pending = append(q.pending, evt)
}

func (c *Service) publish(q *eventQueue) {
	for _, evt := range q.pending {
		c.bus.Publish(evt)
	}
}

// copyJob snapshots a job so callers and subscribers never share memory
// with registry state.
func copyJob(j *structs.Job) *structs.Job {
	if j == nil {
		return nil
	}
	out := *j
	out.DependsOn = append([]int64{}, j.DependsOn...)
	out.Dependents = append([]int64{}, j.Dependents...)
	return &out
}
