package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/models"
	"github.com/duyenle1312/rila-ai-agent/internal/services/convert"
)

type memoryJobStore struct {
	jobs map[string]*models.Job
}

func newMemoryJobStore() *memoryJobStore {
	return &memoryJobStore{jobs: make(map[string]*models.Job)}
}

func (s *memoryJobStore) Put(job *models.Job) { s.jobs[job.ID] = job }

func (s *memoryJobStore) Take(jobID string) *models.Job {
	job, ok := s.jobs[jobID]
	if !ok {
		return nil
	}
	delete(s.jobs, jobID)
	return job
}

func (s *memoryJobStore) Len() int { return len(s.jobs) }

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func newDocumentFixture() (*DocumentHandler, *memoryJobStore) {
	logger := arbor.NewLogger()
	store := newMemoryJobStore()
	handler := NewDocumentHandler(convert.NewService(logger), store, logger)
	return handler, store
}

func TestDocumentUpload_MarkdownAccepted(t *testing.T) {
	handler, store := newDocumentFixture()

	body, contentType := multipartUpload(t, "my-report.md", []byte("# My Report (Final)!!\n\nHello **world**.\n"))
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.HandleUpload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "processing", resp["status"])
	assert.NotEmpty(t, resp["job_id"])
	assert.Contains(t, resp["progress_channel_address"], resp["job_id"])

	job := store.Take(resp["job_id"])
	require.NotNil(t, job)
	assert.Equal(t, "My Report Final", job.Title, "title is sanitized to alphanumerics and spaces")
	assert.Equal(t, models.JobStatusPending, job.Status)
	assert.Contains(t, job.RawContent, "<strong>world</strong>")
}

func TestDocumentUpload_TitleFallsBackToFilename(t *testing.T) {
	handler, store := newDocumentFixture()

	body, contentType := multipartUpload(t, "release notes.txt", []byte("plain text, no heading"))
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.HandleUpload(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	job := store.Take(resp["job_id"])
	require.NotNil(t, job)
	assert.Equal(t, "release notes", job.Title)
}

func TestDocumentUpload_UnsupportedExtensionRejected(t *testing.T) {
	handler, store := newDocumentFixture()

	body, contentType := multipartUpload(t, "archive.zip", []byte("zzz"))
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.HandleUpload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, store.Len(), "no job is created for rejected uploads")
}

func TestDocumentUpload_MissingFile(t *testing.T) {
	handler, _ := newDocumentFixture()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	handler.HandleUpload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentUpload_MethodNotAllowed(t *testing.T) {
	handler, _ := newDocumentFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()

	handler.HandleUpload(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

type stubPageStorage struct {
	pages []*models.PageRecord
}

func (s *stubPageStorage) SavePage(_ context.Context, page *models.PageRecord) error {
	s.pages = append(s.pages, page)
	return nil
}

func (s *stubPageStorage) GetPage(context.Context, string) (*models.PageRecord, error) {
	return nil, nil
}

func (s *stubPageStorage) ListPages(_ context.Context, limit, offset int) ([]*models.PageRecord, error) {
	if offset >= len(s.pages) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.pages) {
		end = len(s.pages)
	}
	return s.pages[offset:end], nil
}

func (s *stubPageStorage) CountPages(context.Context) (int, error) { return len(s.pages), nil }

func TestPageHandler_List(t *testing.T) {
	storage := &stubPageStorage{pages: []*models.PageRecord{
		{ID: "page_1", Title: "One"},
		{ID: "page_2", Title: "Two"},
	}}
	handler := NewPageHandler(storage, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/pages", nil)
	rec := httptest.NewRecorder()
	handler.HandleList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Pages []models.PageRecord `json:"pages"`
		Total int                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Pages, 2)
	assert.Equal(t, 2, resp.Total)
}
