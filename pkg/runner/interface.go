package runner

// Callbacks receive asynchronous process events. They are invoked from
// the runner's own goroutines; OnExit is called exactly once, after the
// final output chunk has been delivered.
type Callbacks struct {
	// OnStdout / OnStderr receive chunks of captured output.
	OnStdout func(text string)
	OnStderr func(text string)

	// OnExit receives the process exit code, or nil if the code could
	// not be resolved (eg. the process was killed by a signal).
	OnExit func(code *int)
}

// Handle identifies a live process to the runner that spawned it.
// Opaque to callers.
type Handle interface{}

// Runner spawns and supervises external script processes.
type Runner interface {
	// Spawn starts the given script and wires its output / exit into
	// the callbacks. It does not block on the process.
	Spawn(script string, cb *Callbacks) (Handle, error)

	// Terminate requests the process stop. Cooperative; the process
	// may take a moment (or a harder signal) to actually die.
	Terminate(h Handle) error
}
