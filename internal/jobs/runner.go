package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/blocks"
	"github.com/duyenle1312/rila-ai-agent/internal/interfaces"
	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

// EmitFunc receives a progress step at each stage boundary. Delivery is the
// caller's concern; the runner never inspects the result.
type EmitFunc func(step, detail string)

// PipelineResult is the outcome of one full pipeline run.
type PipelineResult struct {
	Succeeded   bool
	URL         string
	Meta        *models.ArticleMeta
	NotifySent  bool
	FailedStage string
	Reason      string
	Outcomes    []models.StageOutcome
}

// StageRunner sequences summarize, publish, and notify for one job. It is
// stateless across jobs; all per-job state lives in the result.
type StageRunner struct {
	summarizer interfaces.Summarizer
	publisher  interfaces.Publisher
	notifier   interfaces.Notifier
	logger     arbor.ILogger
}

// NewStageRunner creates a runner over the three pipeline collaborators.
func NewStageRunner(summarizer interfaces.Summarizer, publisher interfaces.Publisher, notifier interfaces.Notifier, logger arbor.ILogger) *StageRunner {
	return &StageRunner{
		summarizer: summarizer,
		publisher:  publisher,
		notifier:   notifier,
		logger:     logger,
	}
}

// Run drives the stages in strict order. Summarize and publish failures end
// the run at that stage; a notify failure is recorded but the run still
// succeeds, since publishing is the success criterion.
func (r *StageRunner) Run(ctx context.Context, title, htmlContent string, emit EmitFunc) *PipelineResult {
	result := &PipelineResult{}

	// Summarize
	emit(models.StepSummarizing, "Summarizing content with AI")
	meta, err := r.summarizer.Summarize(ctx, title, htmlContent)
	if err != nil {
		r.recordOutcome(result, models.StageSummarize, models.StageStatusError, err.Error())
		result.FailedStage = models.StageSummarize
		result.Reason = err.Error()
		return result
	}
	result.Meta = meta
	r.recordOutcome(result, models.StageSummarize, models.StageStatusOK, "summary generated")
	emit(models.StepSummarized, "Summary ready")

	// Publish: block tree is built lazily here, from the revised HTML.
	emit(models.StepPublishing, "Publishing to content store")
	tree := blocks.Build(meta.HTMLContent)
	url, err := r.publisher.CreatePage(ctx, &interfaces.PageInput{
		Title:       title,
		Slug:        meta.Slug,
		Keywords:    meta.SEOKeywords,
		Summary:     meta.Summary,
		CoverImgURL: meta.CoverImgURL,
		Blocks:      tree,
	})
	if err != nil {
		r.recordOutcome(result, models.StagePublish, models.StageStatusError, err.Error())
		result.FailedStage = models.StagePublish
		result.Reason = err.Error()
		return result
	}
	result.URL = url
	r.recordOutcome(result, models.StagePublish, models.StageStatusOK, url)
	emit(models.StepPublished, url)

	// Notify: best-effort, never flips the outcome.
	result.Succeeded = true
	emit(models.StepNotifying, "Sending email notification")
	if err := r.notifier.NotifyPublished(ctx, title, url); err != nil {
		r.recordOutcome(result, models.StageNotify, models.StageStatusError, err.Error())
		r.logger.Warn().Err(err).Str("title", title).Msg("Notification failed, page is still published")
		emit(models.StepNotified, fmt.Sprintf("Email notification failed: %v (page is published)", err))
		return result
	}
	result.NotifySent = true
	r.recordOutcome(result, models.StageNotify, models.StageStatusOK, "notification sent")
	emit(models.StepNotified, "Email notification sent")

	return result
}

func (r *StageRunner) recordOutcome(result *PipelineResult, stage, status, detail string) {
	result.Outcomes = append(result.Outcomes, models.StageOutcome{
		Stage:     stage,
		Status:    status,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}

// FailureDetail formats the terminal failure message for progress delivery.
func (p *PipelineResult) FailureDetail() string {
	return fmt.Sprintf("%s: %s", p.FailedStage, p.Reason)
}
