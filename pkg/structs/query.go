package structs

const (
	queryLimitDefault = 1000
	queryLimitMax     = 10000
)

type Query struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	// Filters
	JobIDs   []int64  `json:"job_ids,omitempty"`
	Statuses []Status `json:"statuses,omitempty"`
}

func (q *Query) Sanitize() {
	if q.Limit <= 0 {
		q.Limit = queryLimitDefault
	}
	if q.Limit > queryLimitMax {
		q.Limit = queryLimitMax
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.JobIDs == nil || len(q.JobIDs) == 0 {
		q.JobIDs = nil
	}
	if q.Statuses == nil || len(q.Statuses) == 0 {
		q.Statuses = nil
	}
}

// Matches reports whether the given job passes the query's filters.
// Limit / Offset are applied by the caller.
func (q *Query) Matches(j *Job) bool {
	if q.JobIDs != nil {
		found := false
		for _, id := range q.JobIDs {
			if id == j.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Statuses != nil {
		found := false
		for _, s := range q.Statuses {
			if s == j.Status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
