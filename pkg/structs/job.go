package structs

// JobSpec are fields that can be set when a job is started.
type JobSpec struct {
	// Script is the absolute path of the script to execute.
	//
	// Required.
	Script string `json:"script"`

	// Name is an optional human readable name for this job.
	// If unset it defaults to the base name of the script.
	Name string `json:"name"`

	// DependsOn lists IDs of jobs that must complete before this job
	// may start. A job with dependencies is created PENDING rather
	// than QUEUED and is started (or skipped) by propagation.
	DependsOn []int64 `json:"depends_on"`

	// PipelineName is an optional label grouping related jobs.
	// Purely informational; scheduling never consults it.
	PipelineName string `json:"pipeline_name"`

	// PipelinePosition is this job's 1-based position within its pipeline.
	PipelinePosition int `json:"pipeline_position"`

	// PipelineTotal is the number of jobs in this job's pipeline.
	PipelineTotal int `json:"pipeline_total"`
}

// Job represents a single request to run an external script, tracked
// through its lifecycle.
type Job struct {
	// JobSpec are fields that can be set when a job is started
	JobSpec `json:",inline"`

	// ID is a unique identifier for this job. IDs are allocated in
	// increasing order and never reused.
	ID int64 `json:"id"`

	// Status is the current status of this job
	Status Status `json:"status"`

	// Dependents is the inverse of DependsOn: IDs of jobs that list
	// this job in their DependsOn. Both sides of an edge are updated
	// together; one is never changed without the other.
	Dependents []int64 `json:"dependents"`

	// CreatedAt is the time this job was created unix time in seconds
	CreatedAt int64 `json:"created_at"`

	// StartedAt is the time this job entered RUNNING, unix time in
	// seconds. Zero until the job has actually started; pre-execution
	// wait while QUEUED / PENDING is never counted.
	StartedAt int64 `json:"started_at"`

	// EndedAt is the time this job entered a final status, unix time
	// in seconds. Zero while the job is not final.
	EndedAt int64 `json:"ended_at"`

	// SkipReason says why this job was SKIPPED, naming the dependency
	// that failed. Empty unless Status is SKIPPED.
	SkipReason string `json:"skip_reason,omitempty"`

	// Sink is an opaque reference to where captured output is appended.
	Sink string `json:"sink,omitempty"`
}

// CanDependOnMore reports whether this job may accept another dependency.
func (j *Job) CanDependOnMore(max int) bool {
	return len(j.DependsOn) < max
}

// HasDependency reports whether the edge (j depends on id) already exists.
func (j *Job) HasDependency(id int64) bool {
	for _, d := range j.DependsOn {
		if d == id {
			return true
		}
	}
	return false
}
