package jobs

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/common"
	"github.com/duyenle1312/rila-ai-agent/internal/interfaces"
	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

// PipelineController owns one job's run end to end: it consumes the parked
// job, drives the stage runner, records the published page, and tears the
// progress connection down after the terminal event.
type PipelineController struct {
	store    interfaces.JobStore
	progress interfaces.ProgressEmitter
	runner   *StageRunner
	pages    interfaces.PageStorage
	logger   arbor.ILogger
}

// NewPipelineController wires the controller's collaborators. The page
// storage may be nil; the registry is then skipped.
func NewPipelineController(store interfaces.JobStore, progress interfaces.ProgressEmitter, runner *StageRunner, pages interfaces.PageStorage, logger arbor.ILogger) *PipelineController {
	return &PipelineController{
		store:    store,
		progress: progress,
		runner:   runner,
		pages:    pages,
		logger:   logger,
	}
}

// Run executes the pipeline for one job id. Take is at-most-once: a second
// start signal for the same id finds nothing and gets a single explicit
// job-not-found event instead of a silent no-op. A dropped connection mid-run
// never cancels side effects; emits simply stop being delivered.
func (c *PipelineController) Run(ctx context.Context, jobID string) {
	job := c.store.Take(jobID)
	if job == nil {
		c.logger.Warn().Str("job_id", jobID).Msg("Start signal for unknown or consumed job")
		c.progress.Emit(jobID, models.StepError, "job not found")
		return
	}

	job.Status = models.JobStatusRunning
	c.logger.Info().Str("job_id", jobID).Str("title", job.Title).Msg("Pipeline started")

	c.progress.Emit(jobID, models.StepExtractComplete, "Document content extracted")

	result := c.runner.Run(ctx, job.Title, job.RawContent, func(step, detail string) {
		c.progress.Emit(jobID, step, detail)
	})

	if result.Succeeded {
		job.Status = models.JobStatusSucceeded
		c.savePageRecord(ctx, job, result)
		c.logger.Info().
			Str("job_id", jobID).
			Str("url", result.URL).
			Bool("notify_sent", result.NotifySent).
			Msg("Pipeline succeeded")
	} else {
		job.Status = models.JobStatusFailed
		c.progress.Emit(jobID, models.StepFailed, result.FailureDetail())
		c.logger.Error().
			Str("job_id", jobID).
			Str("stage", result.FailedStage).
			Str("reason", result.Reason).
			Msg("Pipeline failed")
	}

	// Terminal event is out; the server side closes, not the client.
	c.progress.CloseAndUnregister(jobID)
}

func (c *PipelineController) savePageRecord(ctx context.Context, job *models.Job, result *PipelineResult) {
	if c.pages == nil || result.Meta == nil {
		return
	}

	record := &models.PageRecord{
		ID:          common.NewPageID(),
		JobID:       job.ID,
		Title:       job.Title,
		Slug:        result.Meta.Slug,
		URL:         result.URL,
		Keywords:    result.Meta.SEOKeywords,
		Summary:     result.Meta.Summary,
		CoverImgURL: result.Meta.CoverImgURL,
		NotifySent:  result.NotifySent,
	}
	if err := c.pages.SavePage(ctx, record); err != nil {
		c.logger.Warn().Err(err).Str("job_id", job.ID).Msg("Failed to record published page")
	}
}
