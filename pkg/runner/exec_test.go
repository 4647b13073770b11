package runner

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/voidshard/gofer/pkg/errors"
)

const exitWait = 10 * time.Second

// collector gathers runner callbacks for assertions.
type collector struct {
	mu     sync.Mutex
	stdout strings.Builder
	stderr strings.Builder
	exit   chan *int
}

func newCollector() (*collector, *Callbacks) {
	c := &collector{exit: make(chan *int, 1)}
	return c, &Callbacks{
		OnStdout: func(text string) {
			c.mu.Lock()
			c.stdout.WriteString(text)
			c.mu.Unlock()
		},
		OnStderr: func(text string) {
			c.mu.Lock()
			c.stderr.WriteString(text)
			c.mu.Unlock()
		},
		OnExit: func(code *int) { c.exit <- code },
	}
}

func (c *collector) waitExit(t *testing.T) *int {
	t.Helper()
	select {
	case code := <-c.exit:
		return code
	case <-time.After(exitWait):
		t.Fatal("timed out waiting for process exit")
		return nil
	}
}

func (c *collector) out() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stdout.String()
}

func (c *collector) err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stderr.String()
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.sh")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755)
	assert.Nil(t, err)
	return path
}

func TestSpawnExitZero(t *testing.T) {
	e := NewExec(nil)
	c, cb := newCollector()

	_, err := e.Spawn(writeScript(t, "echo hello\n"), cb)
	assert.Nil(t, err)

	code := c.waitExit(t)
	assert.NotNil(t, code)
	assert.Equal(t, 0, *code)
	assert.Contains(t, c.out(), "hello")
}

func TestSpawnExitCode(t *testing.T) {
	e := NewExec(nil)
	c, cb := newCollector()

	_, err := e.Spawn(writeScript(t, "exit 3\n"), cb)
	assert.Nil(t, err)

	code := c.waitExit(t)
	assert.NotNil(t, code)
	assert.Equal(t, 3, *code)
}

func TestSpawnSeparatesStreams(t *testing.T) {
	e := NewExec(nil)
	c, cb := newCollector()

	_, err := e.Spawn(writeScript(t, "echo good\necho bad >&2\n"), cb)
	assert.Nil(t, err)

	c.waitExit(t)
	assert.Contains(t, c.out(), "good")
	assert.NotContains(t, c.out(), "bad")
	assert.Contains(t, c.err(), "bad")
}

func TestSpawnMissingScript(t *testing.T) {
	e := NewExec(nil)
	_, cb := newCollector()

	_, err := e.Spawn("/no/such/script.sh", cb)

	assert.ErrorIs(t, err, errors.ErrSpawnFailed)
}

func TestTerminate(t *testing.T) {
	e := NewExec(nil)
	c, cb := newCollector()

	h, err := e.Spawn(writeScript(t, "sleep 2\n"), cb)
	assert.Nil(t, err)

	assert.Nil(t, e.Terminate(h))

	// killed by signal; the exit code is unresolvable
	code := c.waitExit(t)
	assert.Nil(t, code)
}

func TestTerminateBadHandle(t *testing.T) {
	e := NewExec(nil)

	err := e.Terminate("not a handle")

	assert.ErrorIs(t, err, errors.ErrInvalidArg)
}
