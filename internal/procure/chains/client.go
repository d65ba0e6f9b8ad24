// Package chains wraps the document chain endpoints and derives workflow
// progress from the chain snapshot.
package chains

import (
	"context"
	"strings"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
	"github.com/odyssey-erp/procuredesk/internal/workflow"
)

const (
	pathChain    = "/chain-api/chain"
	pathTimeline = "/chain-api/timeline"
	pathProgress = "/chain-api/progress"
)

// Client exposes chain operations.
type Client struct {
	caller webhook.Caller
}

// NewClient constructs a chain client.
func NewClient(caller webhook.Caller) *Client {
	return &Client{caller: caller}
}

// Get fetches the chain identified by chainUUID.
func (c *Client) Get(ctx context.Context, chainUUID string) (DocumentChain, error) {
	var chain DocumentChain
	if err := c.get(ctx, "chains.get", pathChain, chainUUID, &chain); err != nil {
		return DocumentChain{}, err
	}
	return chain, nil
}

// Timeline fetches the chain's events. A false success is returned as is.
func (c *Client) Timeline(ctx context.Context, chainUUID string) (TimelineResponse, error) {
	var resp TimelineResponse
	if err := c.get(ctx, "chains.timeline", pathTimeline, chainUUID, &resp); err != nil {
		return TimelineResponse{}, err
	}
	if resp.Timeline == nil {
		resp.Timeline = []TimelineEvent{}
	}
	return resp, nil
}

// Snapshot fetches the document counts and flags for a chain.
func (c *Client) Snapshot(ctx context.Context, chainUUID string) (workflow.Snapshot, error) {
	var snapshot workflow.Snapshot
	if err := c.get(ctx, "chains.snapshot", pathProgress, chainUUID, &snapshot); err != nil {
		return workflow.Snapshot{}, err
	}
	return snapshot, nil
}

// Progress fetches the snapshot and derives the stages of set.
func (c *Client) Progress(ctx context.Context, chainUUID string, set workflow.StageSet) ([]workflow.Stage, error) {
	snapshot, err := c.Snapshot(ctx, chainUUID)
	if err != nil {
		return nil, err
	}
	return workflow.Derive(snapshot, set), nil
}

func (c *Client) get(ctx context.Context, operation, path, chainUUID string, out any) error {
	chainUUID = strings.TrimSpace(chainUUID)
	if err := shared.RequireUUID("uuid", chainUUID); err != nil {
		return err
	}
	return c.caller.Get(ctx, operation, path, webhook.Query{"uuid": chainUUID}, out)
}
