package sink

import (
	"fmt"
	"sync"

	"github.com/voidshard/gofer/pkg/errors"
)

// Memory keeps output in a map. Intended for tests and embedded use
// where nothing should touch the disk.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) NewRef(jobID int64) string {
	return fmt.Sprintf("mem://job-%d", jobID)
}

func (m *Memory) Append(ref, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[ref] += text
	return nil
}

func (m *Memory) Read(ref string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	got, ok := m.data[ref]
	if !ok {
		return "", fmt.Errorf("%w no output at %s", errors.ErrNotFound, ref)
	}
	return got, nil
}

func (m *Memory) Exists(ref string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[ref]
	return ok
}
