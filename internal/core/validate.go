package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/voidshard/gofer/pkg/errors"
)

// Validator decides whether a script path is something we're willing
// to run. Consulted once, at job creation.
type Validator interface {
	Validate(path string) error
}

// scriptValidator is the default Validator: the path must be absolute,
// exist, be a regular file and either carry an allowed extension or be
// executable.
type scriptValidator struct {
	extensions []string
}

// NewScriptValidator returns the default validator. With no extensions
// given, any executable regular file is accepted.
func NewScriptValidator(extensions []string) Validator {
	return &scriptValidator{extensions: extensions}
}

func (v *scriptValidator) Validate(path string) error {
	if path == "" {
		return fmt.Errorf("%w no script given", errors.ErrScriptInvalid)
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%w %s is not an absolute path", errors.ErrScriptInvalid, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w %s: %v", errors.ErrScriptInvalid, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w %s is not a regular file", errors.ErrScriptInvalid, path)
	}

	if len(v.extensions) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		for _, allowed := range v.extensions {
			if ext == strings.ToLower(allowed) {
				return nil
			}
		}
		return fmt.Errorf("%w %s has extension %q, want one of %v", errors.ErrScriptInvalid, path, ext, v.extensions)
	}

	if info.Mode().Perm()&0111 == 0 {
		return fmt.Errorf("%w %s is not executable", errors.ErrScriptInvalid, path)
	}
	return nil
}
