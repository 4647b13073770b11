package errors

import (
	"fmt"
)

var (
	ErrNotFound       = fmt.Errorf("not found")
	ErrSelfDependency = fmt.Errorf("job cannot depend on itself")
	ErrDuplicateEdge  = fmt.Errorf("dependency already exists")
	ErrCycleDetected  = fmt.Errorf("dependency would create a cycle")
	ErrLimitExceeded  = fmt.Errorf("max dependencies exceeded")
	ErrJobRunning     = fmt.Errorf("job is running")
	ErrNotRunning     = fmt.Errorf("job is not running")
	ErrScriptInvalid  = fmt.Errorf("script invalid")
	ErrSpawnFailed    = fmt.Errorf("failed to spawn process")
	ErrInvalidArg     = fmt.Errorf("invalid arg")
)
