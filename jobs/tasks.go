package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/procuredesk/internal/procure/lookups"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLookupWarmup refreshes the cached lookup lists.
	TaskLookupWarmup = "lookups:warmup"
	// LookupWarmupSchedule is the cron expression of the periodic warmup.
	LookupWarmupSchedule = "@every 10m"
)

// LookupWarmupPayload names the lookup kinds to refresh. Empty means all.
type LookupWarmupPayload struct {
	Kinds []lookups.Kind `json:"kinds,omitempty"`
}

// NewLookupWarmupTask constructs an Asynq task.
func NewLookupWarmupTask(kinds ...lookups.Kind) (*asynq.Task, error) {
	data, err := json.Marshal(LookupWarmupPayload{Kinds: kinds})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLookupWarmup, data, asynq.Queue(QueueDefault), asynq.Unique(LookupWarmupUniqueFor)), nil
}
