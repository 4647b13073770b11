package common

const (
	// API_JOBS is used to list or start jobs
	API_JOBS = "/api/v1/jobs"

	// API_JOB is used to get or delete a single job
	API_JOB = "/api/v1/jobs/{id}"

	// API_CANCEL is used to cancel a running job
	API_CANCEL = "/api/v1/jobs/{id}/cancel"

	// API_OUTPUT is used to read a job's captured output
	API_OUTPUT = "/api/v1/jobs/{id}/output"

	// API_JOB_DEPS is used to show a job's dependencies
	API_JOB_DEPS = "/api/v1/jobs/{id}/dependencies"

	// API_DEPS is used to add or remove a dependency edge
	API_DEPS = "/api/v1/dependencies"

	// API_READY is used to list pending jobs whose dependencies are met
	API_READY = "/api/v1/ready"

	// API_FINISHED is used to clear finished jobs
	API_FINISHED = "/api/v1/finished"
)
