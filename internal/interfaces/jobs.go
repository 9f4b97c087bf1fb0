package interfaces

import (
	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

// JobStore parks pending jobs between submission and the start signal.
// Implementations must support concurrent Put/Take from independently
// scheduled pipeline runs; each job id's entry is logically independent.
type JobStore interface {
	// Put inserts a pending job. Overwriting an existing id is allowed (ids
	// are generated fresh per submission, last write wins).
	Put(job *models.Job)

	// Take atomically removes and returns the job for the id, or nil if the
	// id is unknown or already consumed. At-most-once consumption.
	Take(jobID string) *models.Job

	// Len reports the number of parked jobs.
	Len() int
}

// ProgressEmitter delivers ordered progress events for one job to its live
// connection, if any. Delivery is best-effort: the returned flag reports
// whether the event actually reached a connection, and a dropped event is
// never an error for the caller.
type ProgressEmitter interface {
	// Emit sends a step event to the job's registered connection. Returns
	// true when delivered, false when no connection is registered or the
	// write failed.
	Emit(jobID, step, detail string) bool

	// CloseAndUnregister tears down the job's connection after the terminal
	// event. Idempotent.
	CloseAndUnregister(jobID string)
}
