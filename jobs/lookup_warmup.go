package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/odyssey-erp/procuredesk/internal/jobs"
	"github.com/odyssey-erp/procuredesk/internal/procure/lookups"
)

// LookupWarmupUniqueFor keeps overlapping warmups from queueing twice.
const LookupWarmupUniqueFor = 5 * time.Minute

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// Warmer refreshes cached lookups.
type Warmer interface {
	Warm(ctx context.Context, kinds ...lookups.Kind) error
}

// LookupWarmupJob refreshes the lookup cache from the backend.
type LookupWarmupJob struct {
	Warmer  Warmer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	Timeout time.Duration
}

// NewLookupWarmupJob wires dependencies for the warmup handler.
func NewLookupWarmupJob(warmer Warmer, logger *slog.Logger, metrics *jobmetrics.Metrics) *LookupWarmupJob {
	return &LookupWarmupJob{Warmer: warmer, Logger: logger, Metrics: metrics, Timeout: time.Minute}
}

// Handle processes lookup warmup tasks. A malformed payload is not retried.
func (j *LookupWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Warmer == nil {
		return errors.New("lookup warmup: handler not configured")
	}
	var payload LookupWarmupPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("lookup warmup: decode payload: %v: %w", err, asynq.SkipRetry)
		}
	}
	for _, kind := range payload.Kinds {
		if _, ok := lookups.ParseKind(string(kind)); !ok {
			return fmt.Errorf("lookup warmup: unknown kind %q: %w", kind, asynq.SkipRetry)
		}
	}

	tracker := j.metrics().Track(TaskLookupWarmup)
	start := time.Now()
	logger := j.logger()
	logger.Info("starting lookup warmup", slog.Int("kinds", len(payload.Kinds)))

	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}
	if err := j.Warmer.Warm(ctx, payload.Kinds...); err != nil {
		logger.Error("lookup warmup failed", slog.Any("error", err))
		return tracker.End(err)
	}

	warmed := payload.Kinds
	if len(warmed) == 0 {
		warmed = lookups.Kinds
	}
	for _, kind := range warmed {
		j.metrics().AddWarmed(string(kind))
	}
	logger.Info("completed lookup warmup", slog.Int("kinds", len(warmed)), slog.Duration("duration", time.Since(start)))
	return tracker.End(nil)
}

func (j *LookupWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskLookupWarmup))
	}
	return slog.Default().With(slog.String("job", TaskLookupWarmup))
}

func (j *LookupWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
