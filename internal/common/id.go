package common

import (
	"github.com/google/uuid"
)

// NewJobID generates a unique job ID with the "job_" prefix
// Format: job_<uuid>
func NewJobID() string {
	return "job_" + uuid.New().String()
}

// NewPageID generates a unique page-record ID with the "page_" prefix
func NewPageID() string {
	return "page_" + uuid.New().String()
}
