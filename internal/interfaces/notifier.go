package interfaces

import "context"

// Notifier is the email collaborator. NotifyPublished tells the stakeholder a
// page went live. Failures are reported to the caller but are never
// pipeline-fatal; publishing is the success criterion.
type Notifier interface {
	NotifyPublished(ctx context.Context, title, url string) error
}
