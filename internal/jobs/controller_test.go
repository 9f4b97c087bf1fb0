package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

type fakeEmitter struct {
	events []models.ProgressEvent
	closed []string
}

func (f *fakeEmitter) Emit(jobID, step, detail string) bool {
	f.events = append(f.events, models.ProgressEvent{Step: step, Detail: detail})
	return true
}

func (f *fakeEmitter) CloseAndUnregister(jobID string) {
	f.closed = append(f.closed, jobID)
}

func (f *fakeEmitter) steps() []string {
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Step
	}
	return out
}

type fakePageStorage struct {
	saved []*models.PageRecord
	err   error
}

func (f *fakePageStorage) SavePage(_ context.Context, page *models.PageRecord) error {
	f.saved = append(f.saved, page)
	return f.err
}

func (f *fakePageStorage) GetPage(context.Context, string) (*models.PageRecord, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePageStorage) ListPages(context.Context, int, int) ([]*models.PageRecord, error) {
	return nil, nil
}

func (f *fakePageStorage) CountPages(context.Context) (int, error) { return len(f.saved), nil }

func newControllerFixture(t *testing.T, summarizer *fakeSummarizer, publisher *fakePublisher, notifier *fakeNotifier) (*PipelineController, *Store, *fakeEmitter, *fakePageStorage) {
	t.Helper()
	store := newTestStore(t, "15m")
	emitter := &fakeEmitter{}
	pages := &fakePageStorage{}
	logger := arbor.NewLogger()
	runner := NewStageRunner(summarizer, publisher, notifier, logger)
	controller := NewPipelineController(store, emitter, runner, pages, logger)
	return controller, store, emitter, pages
}

func TestController_SuccessfulRun(t *testing.T) {
	controller, store, emitter, pages := newControllerFixture(t,
		&fakeSummarizer{meta: testMeta()},
		&fakePublisher{url: "https://notion.so/p1"},
		&fakeNotifier{},
	)

	store.Put(&models.Job{
		ID:         "job_1",
		Title:      "My Report",
		RawContent: "<p>raw</p>",
		Status:     models.JobStatusPending,
	})

	controller.Run(context.Background(), "job_1")

	assert.Equal(t, []string{
		models.StepExtractComplete,
		models.StepSummarizing,
		models.StepSummarized,
		models.StepPublishing,
		models.StepPublished,
		models.StepNotifying,
		models.StepNotified,
	}, emitter.steps())
	assert.Equal(t, []string{"job_1"}, emitter.closed)

	require.Len(t, pages.saved, 1)
	record := pages.saved[0]
	assert.Equal(t, "job_1", record.JobID)
	assert.Equal(t, "My Report", record.Title)
	assert.Equal(t, "my-report", record.Slug)
	assert.Equal(t, "https://notion.so/p1", record.URL)
	assert.True(t, record.NotifySent)
	assert.NotEmpty(t, record.ID)

	assert.Nil(t, store.Take("job_1"), "job must be consumed")
}

func TestController_UnknownJob(t *testing.T) {
	controller, _, emitter, pages := newControllerFixture(t,
		&fakeSummarizer{meta: testMeta()},
		&fakePublisher{url: "u"},
		&fakeNotifier{},
	)

	controller.Run(context.Background(), "job_missing")

	require.Len(t, emitter.events, 1)
	assert.Equal(t, models.StepError, emitter.events[0].Step)
	assert.Equal(t, "job not found", emitter.events[0].Detail)
	assert.Empty(t, emitter.closed, "connection stays up for the client to retry or close")
	assert.Empty(t, pages.saved)
}

func TestController_SecondStartGetsJobNotFound(t *testing.T) {
	controller, store, emitter, _ := newControllerFixture(t,
		&fakeSummarizer{meta: testMeta()},
		&fakePublisher{url: "u"},
		&fakeNotifier{},
	)

	store.Put(&models.Job{ID: "job_1", Title: "t", RawContent: "<p>x</p>"})
	controller.Run(context.Background(), "job_1")
	firstCount := len(emitter.events)

	controller.Run(context.Background(), "job_1")

	require.Len(t, emitter.events, firstCount+1)
	assert.Equal(t, models.StepError, emitter.events[firstCount].Step)
}

func TestController_FailedRunEmitsTerminalFailure(t *testing.T) {
	controller, store, emitter, pages := newControllerFixture(t,
		&fakeSummarizer{err: errors.New("bad response")},
		&fakePublisher{},
		&fakeNotifier{},
	)

	store.Put(&models.Job{ID: "job_1", Title: "t", RawContent: "<p>x</p>"})
	controller.Run(context.Background(), "job_1")

	steps := emitter.steps()
	assert.Equal(t, models.StepFailed, steps[len(steps)-1])
	last := emitter.events[len(emitter.events)-1]
	assert.Contains(t, last.Detail, "summarize")
	assert.Contains(t, last.Detail, "bad response")

	assert.Equal(t, []string{"job_1"}, emitter.closed)
	assert.Empty(t, pages.saved, "no page record on failure")
}

func TestController_NotifyFailureStillRecordsPage(t *testing.T) {
	controller, store, _, pages := newControllerFixture(t,
		&fakeSummarizer{meta: testMeta()},
		&fakePublisher{url: "https://notion.so/p1"},
		&fakeNotifier{err: errors.New("smtp down")},
	)

	store.Put(&models.Job{ID: "job_1", Title: "t", RawContent: "<p>x</p>"})
	controller.Run(context.Background(), "job_1")

	require.Len(t, pages.saved, 1)
	assert.False(t, pages.saved[0].NotifySent)
}
