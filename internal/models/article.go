package models

import "time"

// ArticleMeta is the structured metadata returned by the summarization
// collaborator. The JSON tags match the exact response shape the model is
// instructed to produce; any deviation after fence stripping is a hard
// failure, enforced by the validate tags.
type ArticleMeta struct {
	Title       string `json:"title" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	SEOKeywords string `json:"seo_keywords" validate:"required"`
	CoverImgURL string `json:"cover_imgUrl" validate:"omitempty,url"`
	Summary     string `json:"plain_text_summary" validate:"required"`
	HTMLContent string `json:"html_content" validate:"required"`
}

// PageRecord is the durable audit record of a published page, persisted to
// the Badger registry when the publish stage succeeds.
type PageRecord struct {
	ID          string    `json:"id" badgerhold:"key"`
	JobID       string    `json:"job_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	URL         string    `json:"url"`
	Keywords    string    `json:"keywords"`
	Summary     string    `json:"summary"`
	CoverImgURL string    `json:"cover_img_url,omitempty"`
	NotifySent  bool      `json:"notify_sent"`
	PublishedAt time.Time `json:"published_at"`
}
