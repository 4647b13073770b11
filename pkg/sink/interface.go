package sink

// Sink is where captured job output ends up. The scheduler treats refs
// as opaque: it allocates one per job, appends chunks to it and hands
// it back to callers, but never parses the content.
type Sink interface {
	// NewRef allocates a ref for the given job. The same job always
	// yields the same ref.
	NewRef(jobID int64) string

	// Append adds text to the output held at ref, creating it if needed.
	Append(ref, text string) error

	// Read returns everything appended to ref so far.
	Read(ref string) (string, error)

	// Exists reports whether anything has been written to ref.
	Exists(ref string) bool
}
