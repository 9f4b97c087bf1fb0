package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/common"
	"github.com/duyenle1312/rila-ai-agent/internal/interfaces"
)

const notionVersion = "2022-06-28"

// NotionPublisher implements interfaces.Publisher against the Notion REST
// API. Pages are created under a database parent, then content blocks are
// appended one per request in document order.
type NotionPublisher struct {
	config  *common.NotionConfig
	logger  arbor.ILogger
	client  *http.Client
	baseURL string
}

// NewNotionPublisher creates a publisher for the configured workspace.
func NewNotionPublisher(config *common.NotionConfig, logger arbor.ILogger) (*NotionPublisher, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Notion API key is required (set BLOGAGENT_NOTION_API_KEY or notion.api_key in config)")
	}
	if config.ParentPageID == "" {
		return nil, fmt.Errorf("Notion parent page ID is required (set BLOGAGENT_NOTION_PARENT_PAGE or notion.parent_page_id in config)")
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Timeout, err)
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.notion.com"
	}

	return &NotionPublisher{
		config:  config,
		logger:  logger,
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}, nil
}

type createPageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreatePage creates the page with its properties and cover, then appends
// the block tree. Append failures abort with the page partially written; the
// store's error detail is preserved for the caller.
func (p *NotionPublisher) CreatePage(ctx context.Context, page *interfaces.PageInput) (string, error) {
	today := time.Now().UTC().Format("2006-01-02")

	payload := map[string]any{
		"parent": map[string]any{
			// The configured parent is a Notion database; each article is a row.
			"database_id": p.config.ParentPageID,
		},
		"properties": map[string]any{
			"title": map[string]any{
				"title": []map[string]any{
					{"text": map[string]any{"content": page.Title}},
				},
			},
			"date":         dateProperty(today),
			"lastEditedAt": dateProperty(today),
			"slug":         richTextProperty(page.Slug),
			"keywords":     richTextProperty(page.Keywords),
			"summary":      richTextProperty(page.Summary),
		},
	}
	if page.CoverImgURL != "" {
		payload["cover"] = map[string]any{
			"type":     "external",
			"external": map[string]any{"url": page.CoverImgURL},
		}
	}

	var created createPageResponse
	if err := p.do(ctx, http.MethodPost, "/v1/pages", payload, &created); err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}

	p.logger.Info().
		Str("page_id", created.ID).
		Str("title", page.Title).
		Msg("Content page created, appending blocks")

	appendPath := fmt.Sprintf("/v1/blocks/%s/children", created.ID)
	for i, block := range page.Blocks {
		body := map[string]any{
			"children": []map[string]any{blockPayload(block)},
		}
		if err := p.do(ctx, http.MethodPatch, appendPath, body, nil); err != nil {
			return "", fmt.Errorf("failed to append block %d of %d: %w", i+1, len(page.Blocks), err)
		}
	}

	p.logger.Info().
		Str("url", created.URL).
		Int("blocks", len(page.Blocks)).
		Msg("Content page published")

	return created.URL, nil
}

func dateProperty(date string) map[string]any {
	return map[string]any{
		"date": map[string]any{"start": date},
	}
}

func richTextProperty(content string) map[string]any {
	return map[string]any{
		"rich_text": []map[string]any{
			{"text": map[string]any{"content": content}},
		},
	}
}

func (p *NotionPublisher) do(ctx context.Context, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("Notion API returned %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
