package runner

import (
	"fmt"
	"io"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/voidshard/gofer/pkg/errors"
)

// Exec runs scripts as child processes via os/exec.
type Exec struct {
	opts *Options
}

// NewExec returns a Runner backed by os/exec.
func NewExec(opts *Options) *Exec {
	if opts == nil {
		opts = &Options{}
	}
	opts.sanitize()
	return &Exec{opts: opts}
}

type execHandle struct {
	cmd *exec.Cmd

	// closed once Wait has returned; stops the SIGKILL escalation
	done chan struct{}
}

func (e *Exec) Spawn(script string, cb *Callbacks) (Handle, error) {
	cmd := exec.Command(script)
	cmd.Dir = e.opts.WorkDir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w %v", errors.ErrSpawnFailed, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w %v", errors.ErrSpawnFailed, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w %v", errors.ErrSpawnFailed, err)
	}

	h := &execHandle{cmd: cmd, done: make(chan struct{})}
	go e.supervise(h, stdout, stderr, cb)
	return h, nil
}

// supervise drains both pipes, waits for the process and reports the
// exit code. Both pipes must be fully drained before Wait is called.
func (e *Exec) supervise(h *execHandle, stdout, stderr io.Reader, cb *Callbacks) {
	defer close(h.done)

	g := &errgroup.Group{}
	g.Go(func() error {
		return e.stream(stdout, cb.OnStdout)
	})
	g.Go(func() error {
		return e.stream(stderr, cb.OnStderr)
	})
	g.Wait()

	err := h.cmd.Wait()
	if cb.OnExit == nil {
		return
	}
	if err == nil {
		code := 0
		cb.OnExit(&code)
		return
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		if code := exitErr.ExitCode(); code >= 0 {
			cb.OnExit(&code)
			return
		}
	}
	// killed by signal or otherwise unresolvable
	cb.OnExit(nil)
}

func (e *Exec) stream(r io.Reader, fn func(string)) error {
	buf := make([]byte, e.opts.ChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 && fn != nil {
			fn(string(buf[:n]))
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func (e *Exec) Terminate(h Handle) error {
	eh, ok := h.(*execHandle)
	if !ok || eh.cmd.Process == nil {
		return fmt.Errorf("%w not an exec handle", errors.ErrInvalidArg)
	}

	err := eh.cmd.Process.Signal(syscall.SIGTERM)
	if err != nil {
		return err
	}

	go func() {
		select {
		case <-eh.done:
		case <-time.After(e.opts.GracePeriod):
			eh.cmd.Process.Kill()
		}
	}()
	return nil
}
