package chains

import "github.com/odyssey-erp/procuredesk/internal/platform/webhook"

// TimelineResponse wraps the timeline in the action envelope.
type TimelineResponse struct {
	webhook.Result
	Timeline []TimelineEvent `json:"timeline"`
}
