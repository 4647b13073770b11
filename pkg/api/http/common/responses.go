package common

// UpdateResponse is the response from an update operation, specific to HTTP.
type UpdateResponse struct {
	// Updated is the number of objects updated / removed.
	Updated int64 `json:"updated"`
}

// OutputResponse carries a job's captured output.
type OutputResponse struct {
	JobID  int64  `json:"job_id"`
	Output string `json:"output"`
}
