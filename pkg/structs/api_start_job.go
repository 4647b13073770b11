package structs

type StartJobRequest struct {
	JobSpec `json:",inline"`
}

// DependencyRequest asks for the edge (JobID depends on DependsOn)
// to be added or removed.
type DependencyRequest struct {
	JobID     int64 `json:"job_id"`
	DependsOn int64 `json:"depends_on"`
}

// DependencyInfo describes one dependency of a job along with its
// current status, for display.
type DependencyInfo struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status Status `json:"status"`
}

// JobDependencies is the response to a show-dependencies call.
type JobDependencies struct {
	JobID      int64             `json:"job_id"`
	DependsOn  []*DependencyInfo `json:"depends_on"`
	Dependents []int64           `json:"dependents"`
}
