package models

import "time"

// JobStatus represents the lifecycle state of a pipeline job
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// Job is one document-to-published-page pipeline run. A job is created by the
// upload handler in pending state and parked until a start signal arrives on
// the job's progress connection. Job state is process-lifetime only.
type Job struct {
	ID         string    `json:"job_id"`
	Title      string    `json:"title"`
	RawContent string    `json:"-"` // extracted HTML body, not exposed over the API
	Status     JobStatus `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// StageOutcome records the result of one pipeline stage. Outcomes are produced
// in strict stage order and are immutable once produced.
type StageOutcome struct {
	Stage     string    `json:"stage"`
	Status    string    `json:"status"` // "ok" or "error"
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	StageStatusOK    = "ok"
	StageStatusError = "error"
)

// Pipeline stage names, in execution order.
const (
	StageSummarize = "summarize"
	StagePublish   = "publish"
	StageNotify    = "notify"
)

// ProgressEvent is the wire shape delivered over a job's live connection.
type ProgressEvent struct {
	Step      string    `json:"step"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

// Progress step names emitted over the live connection.
const (
	StepConnected       = "connected"
	StepExtractComplete = "extract-complete"
	StepSummarizing     = "summarizing"
	StepSummarized      = "summarized"
	StepPublishing      = "publishing"
	StepPublished       = "published"
	StepNotifying       = "notifying"
	StepNotified        = "notified"
	StepFailed          = "failed"
	StepError           = "error"
)
