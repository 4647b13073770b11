package sink

import (
	"fmt"
	"os"
	"path/filepath"
)

// FS writes each job's output to its own file under a base directory.
type FS struct {
	dir string
}

// NewFS returns a filesystem sink rooted at dir, creating it if needed.
func NewFS(dir string) (*FS, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, err
	}
	return &FS{dir: dir}, nil
}

func (f *FS) NewRef(jobID int64) string {
	return filepath.Join(f.dir, fmt.Sprintf("job-%d.log", jobID))
}

func (f *FS) Append(ref, text string) error {
	fh, err := os.OpenFile(ref, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer fh.Close()

	_, err = fh.WriteString(text)
	return err
}

func (f *FS) Read(ref string) (string, error) {
	data, err := os.ReadFile(ref)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *FS) Exists(ref string) bool {
	_, err := os.Stat(ref)
	return err == nil
}
