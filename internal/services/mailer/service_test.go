package mailer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/common"
)

func TestIsConfigured(t *testing.T) {
	logger := arbor.NewLogger()

	full := NewService(&common.MailConfig{
		Host:     "smtp.example.com",
		Username: "u",
		Password: "p",
		From:     "agent@example.com",
	}, logger)
	assert.True(t, full.IsConfigured())

	missing := NewService(&common.MailConfig{Host: "smtp.example.com"}, logger)
	assert.False(t, missing.IsConfigured())
}

func TestSendHTMLEmail_RequiresConfig(t *testing.T) {
	logger := arbor.NewLogger()

	s := NewService(&common.MailConfig{}, logger)
	err := s.SendHTMLEmail(context.Background(), "to@example.com", "subject", "<p>hi</p>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP host not configured")

	s = NewService(&common.MailConfig{Host: "smtp.example.com"}, logger)
	err = s.SendHTMLEmail(context.Background(), "to@example.com", "subject", "<p>hi</p>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}

func TestNotifyPublished_RequiresRecipient(t *testing.T) {
	s := NewService(&common.MailConfig{
		Host:     "smtp.example.com",
		Username: "u",
		Password: "p",
		From:     "agent@example.com",
	}, arbor.NewLogger())

	err := s.NotifyPublished(context.Background(), "Title", "https://notion.so/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipient")
}

func TestPublishedEmailHTML(t *testing.T) {
	body := publishedEmailHTML("My Report", "https://notion.so/page-1")

	assert.Contains(t, body, "My Report")
	assert.Contains(t, body, `href="https://notion.so/page-1"`)
	assert.Contains(t, body, "New Blog Created!")
}

func TestEncodeBase64WithLineBreaks(t *testing.T) {
	long := strings.Repeat("a", 300)
	encoded := encodeBase64WithLineBreaks(long)

	for _, line := range strings.Split(encoded, "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}
	assert.NotContains(t, encoded, "\n\n")
}

func TestGenerateBoundary_Unique(t *testing.T) {
	assert.NotEqual(t, generateBoundary(), generateBoundary())
}
