package structs

import (
	"strings"
)

type Status string

const (
	// transient states
	QUEUED  Status = "QUEUED"
	PENDING Status = "PENDING"
	RUNNING Status = "RUNNING"

	// end states
	COMPLETED Status = "COMPLETED"
	FAILED    Status = "FAILED"
	CANCELLED Status = "CANCELLED"
	SKIPPED   Status = "SKIPPED"
)

func IsFinalStatus(status Status) bool {
	switch status {
	case COMPLETED, FAILED, CANCELLED, SKIPPED:
		return true
	default:
		return false
	}
}

func ToStatus(s string) Status {
	switch strings.ToUpper(s) {
	case "QUEUED":
		return QUEUED
	case "PENDING":
		return PENDING
	case "RUNNING":
		return RUNNING
	case "COMPLETED":
		return COMPLETED
	case "FAILED":
		return FAILED
	case "CANCELLED":
		return CANCELLED
	case "SKIPPED":
		return SKIPPED
	default:
		return ""
	}
}
