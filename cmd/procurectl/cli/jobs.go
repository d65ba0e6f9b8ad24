package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/procuredesk/internal/procure/lookups"
	"github.com/odyssey-erp/procuredesk/jobs"
)

// Enqueuer submits lookup warmups.
type Enqueuer interface {
	EnqueueLookupWarmup(ctx context.Context, kinds ...lookups.Kind) (*asynq.TaskInfo, error)
}

// Inspector reads queue state.
type Inspector interface {
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
	ListScheduledTasks(queue string, opts ...asynq.ListOption) ([]*asynq.TaskInfo, error)
}

// JobsCLI wraps manual management helpers for Asynq jobs.
type JobsCLI struct {
	enqueuer  Enqueuer
	inspector Inspector
}

// NewJobsCLI wires the helpers. Either dependency may be nil when the
// commands using it are not needed.
func NewJobsCLI(enqueuer Enqueuer, inspector Inspector) *JobsCLI {
	return &JobsCLI{enqueuer: enqueuer, inspector: inspector}
}

// Output carries the shared output flags of every command.
type Output struct {
	JSON   bool
	Stdout io.Writer
	Stderr io.Writer
}

func (o Output) streams() (io.Writer, io.Writer) {
	stdout, stderr := o.Stdout, o.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}

// WarmupOptions defines the flags of the jobs warmup command.
type WarmupOptions struct {
	Output
	Kinds []string
}

// WarmupSummary is the JSON response of jobs warmup.
type WarmupSummary struct {
	TaskID    string         `json:"task_id,omitempty"`
	Queue     string         `json:"queue"`
	Kinds     []lookups.Kind `json:"kinds"`
	Duplicate bool           `json:"duplicate"`
}

// WarmupCommand enqueues a lookup warmup. A warmup already queued is not an
// error.
func (c *JobsCLI) WarmupCommand(ctx context.Context, opts WarmupOptions) int {
	stdout, stderr := opts.streams()
	if c == nil || c.enqueuer == nil {
		_, _ = fmt.Fprintln(stderr, "jobs warmup: client not configured")
		return 1
	}
	kinds := make([]lookups.Kind, 0, len(opts.Kinds))
	for _, name := range opts.Kinds {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		kind, ok := lookups.ParseKind(name)
		if !ok {
			_, _ = fmt.Fprintf(stderr, "jobs warmup: unknown lookup kind %q\n", name)
			return 1
		}
		kinds = append(kinds, kind)
	}

	summary := WarmupSummary{Queue: jobs.QueueDefault, Kinds: kinds}
	if len(summary.Kinds) == 0 {
		summary.Kinds = lookups.Kinds
	}
	info, err := c.enqueuer.EnqueueLookupWarmup(ctx, kinds...)
	switch {
	case errors.Is(err, asynq.ErrDuplicateTask):
		summary.Duplicate = true
	case err != nil:
		_, _ = fmt.Fprintf(stderr, "jobs warmup: %v\n", err)
		return 1
	case info != nil:
		summary.TaskID = info.ID
		summary.Queue = info.Queue
	}

	if opts.JSON {
		return encodeJSON(stdout, stderr, "jobs warmup", summary)
	}
	if summary.Duplicate {
		_, _ = fmt.Fprintln(stdout, "warmup already queued")
		return 0
	}
	_, _ = fmt.Fprintf(stdout, "enqueued %s on %s (%s)\n", summary.TaskID, summary.Queue, joinKinds(summary.Kinds))
	return 0
}

// QueueStats summarises the current queue state.
type QueueStats struct {
	Queue     string `json:"queue"`
	Pending   int    `json:"pending"`
	Active    int    `json:"active"`
	Scheduled int    `json:"scheduled"`
	Retry     int    `json:"retry"`
	Archived  int    `json:"archived"`
}

// InspectQueue reports the metrics of the default queue.
func (c *JobsCLI) InspectQueue() (QueueStats, error) {
	if c == nil || c.inspector == nil {
		return QueueStats{}, errors.New("jobs cli: inspector not configured")
	}
	info, err := c.inspector.GetQueueInfo(jobs.QueueDefault)
	if err != nil {
		return QueueStats{}, err
	}
	stats := QueueStats{Queue: jobs.QueueDefault}
	if info != nil {
		stats.Pending = info.Pending
		stats.Active = info.Active
		stats.Scheduled = info.Scheduled
		stats.Retry = info.Retry
		stats.Archived = info.Archived
	}
	return stats, nil
}

// StatsCommand prints the queue state.
func (c *JobsCLI) StatsCommand(opts Output) int {
	stdout, stderr := opts.streams()
	stats, err := c.InspectQueue()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "jobs stats: %v\n", err)
		return 1
	}
	if opts.JSON {
		return encodeJSON(stdout, stderr, "jobs stats", stats)
	}
	_, _ = fmt.Fprintf(stdout, "queue %s: pending=%d active=%d scheduled=%d retry=%d archived=%d\n",
		stats.Queue, stats.Pending, stats.Active, stats.Scheduled, stats.Retry, stats.Archived)
	return 0
}

// ScheduledTask is one entry of jobs scheduled.
type ScheduledTask struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Next string `json:"next_process_at"`
}

// ScheduledCommand lists the first size scheduled tasks.
func (c *JobsCLI) ScheduledCommand(opts Output, size int) int {
	stdout, stderr := opts.streams()
	if c == nil || c.inspector == nil {
		_, _ = fmt.Fprintln(stderr, "jobs scheduled: inspector not configured")
		return 1
	}
	if size <= 0 {
		size = 10
	}
	infos, err := c.inspector.ListScheduledTasks(jobs.QueueDefault, asynq.PageSize(size), asynq.Page(1))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "jobs scheduled: %v\n", err)
		return 1
	}
	tasks := make([]ScheduledTask, 0, len(infos))
	for _, info := range infos {
		if info == nil {
			continue
		}
		tasks = append(tasks, ScheduledTask{
			ID:   info.ID,
			Type: info.Type,
			Next: info.NextProcessAt.UTC().Format(time.RFC3339),
		})
	}
	if opts.JSON {
		return encodeJSON(stdout, stderr, "jobs scheduled", tasks)
	}
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(stdout, "no scheduled tasks")
		return 0
	}
	for _, task := range tasks {
		_, _ = fmt.Fprintf(stdout, "%s\t%s\t%s\n", task.ID, task.Type, task.Next)
	}
	return 0
}

func encodeJSON(stdout, stderr io.Writer, command string, v any) int {
	if err := json.NewEncoder(stdout).Encode(v); err != nil {
		_, _ = fmt.Fprintf(stderr, "%s: encode json: %v\n", command, err)
		return 1
	}
	return 0
}

func joinKinds(kinds []lookups.Kind) string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return strings.Join(names, ",")
}
