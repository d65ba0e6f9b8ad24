// Package assets wraps the fixed asset endpoints.
package assets

import (
	"context"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
)

const (
	pathPending  = "/asset-api/pending"
	pathList     = "/asset-api/assets"
	pathPutToUse = "/asset-api/put-to-use"
)

// Client exposes asset operations.
type Client struct {
	caller webhook.Caller
}

// NewClient constructs an asset client.
func NewClient(caller webhook.Caller) *Client {
	return &Client{caller: caller}
}

// ListPending returns assets awaiting capitalisation.
func (c *Client) ListPending(ctx context.Context, filter Filter) ([]Asset, error) {
	filter.Status = ""
	return c.list(ctx, "assets.list_pending", pathPending, filter)
}

// List returns the asset register.
func (c *Client) List(ctx context.Context, filter Filter) ([]Asset, error) {
	return c.list(ctx, "assets.list", pathList, filter)
}

func (c *Client) list(ctx context.Context, operation, path string, filter Filter) ([]Asset, error) {
	var items []Asset
	if err := c.caller.Get(ctx, operation, path, filter.query(), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []Asset{}
	}
	return items, nil
}

// PutToUse marks an asset as in use from the given date.
func (c *Client) PutToUse(ctx context.Context, input PutToUseInput) (PutToUseResult, error) {
	if err := shared.Validate(input); err != nil {
		return PutToUseResult{}, err
	}
	var result PutToUseResult
	if err := c.caller.Post(ctx, "assets.put_to_use", pathPutToUse, input, &result); err != nil {
		return PutToUseResult{}, err
	}
	return result, nil
}
