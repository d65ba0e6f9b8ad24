package lookups

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/odyssey-erp/procuredesk/internal/platform/cache"
)

// DefaultLoadTimeout bounds a shared backend load.
const DefaultLoadTimeout = 30 * time.Second

// Cached serves lookups from Redis and coalesces concurrent misses for the
// same key into one backend call. The shared call is detached from any single
// caller, so a caller that goes away does not fail the others waiting on it.
type Cached struct {
	source      Source
	cache       *cache.JSON
	group       singleflight.Group
	logger      *slog.Logger
	LoadTimeout time.Duration
}

var _ Source = (*Cached)(nil)

// NewCached wraps source. A nil or disabled cache still coalesces calls.
func NewCached(source Source, c *cache.JSON, logger *slog.Logger) *Cached {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cached{source: source, cache: c, logger: logger, LoadTimeout: DefaultLoadTimeout}
}

// Departments lists departments.
func (c *Cached) Departments(ctx context.Context) ([]Option, error) {
	return fetch(ctx, c, []string{string(KindDepartments)}, c.source.Departments)
}

// Branches lists branches.
func (c *Cached) Branches(ctx context.Context) ([]Option, error) {
	return fetch(ctx, c, []string{string(KindBranches)}, c.source.Branches)
}

// Categories lists asset categories.
func (c *Cached) Categories(ctx context.Context) ([]Option, error) {
	return fetch(ctx, c, []string{string(KindCategories)}, c.source.Categories)
}

// Users lists users for role.
func (c *Cached) Users(ctx context.Context, role string) ([]User, error) {
	role = strings.TrimSpace(role)
	return fetch(ctx, c, []string{string(KindUsers), role}, func(ctx context.Context) ([]User, error) {
		return c.source.Users(ctx, role)
	})
}

// Warm bumps the cache version and reloads each kind. An empty kinds list
// warms every kind; users are warmed without a role filter.
func (c *Cached) Warm(ctx context.Context, kinds ...Kind) error {
	if len(kinds) == 0 {
		kinds = Kinds
	}
	if err := c.cache.Bump(ctx); err != nil {
		return err
	}
	for _, kind := range kinds {
		var err error
		switch kind {
		case KindDepartments:
			_, err = c.Departments(ctx)
		case KindBranches:
			_, err = c.Branches(ctx)
		case KindCategories:
			_, err = c.Categories(ctx)
		case KindUsers:
			_, err = c.Users(ctx, "")
		default:
			c.logger.Warn("unknown lookup kind", slog.String("kind", string(kind)))
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func fetch[T any](ctx context.Context, c *Cached, parts []string, load func(context.Context) ([]T, error)) ([]T, error) {
	key, err := c.cache.Key(ctx, parts...)
	if err != nil {
		c.logger.Warn("lookup cache unavailable", slog.String("key", strings.Join(parts, ":")), slog.Any("error", err))
		return load(ctx)
	}
	ch := c.group.DoChan(key, func() (any, error) {
		loadCtx := context.WithoutCancel(ctx)
		if c.LoadTimeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(loadCtx, c.LoadTimeout)
			defer cancel()
		}
		var out []T
		err := c.cache.FetchJSON(loadCtx, key, &out, func(ctx context.Context) (any, error) {
			return load(ctx)
		})
		return out, err
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		out := res.Val.([]T)
		if out == nil {
			out = []T{}
		}
		return out, nil
	}
}
