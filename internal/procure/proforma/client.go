// Package proforma wraps the proforma invoice endpoints.
package proforma

import (
	"context"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
)

const (
	pathList   = "/proforma-api/proformas"
	pathUpload = "/proforma-api/upload"
	pathLink   = "/proforma-api/link"
)

// Client exposes proforma operations.
type Client struct {
	caller webhook.Caller
}

// NewClient constructs a proforma client.
func NewClient(caller webhook.Caller) *Client {
	return &Client{caller: caller}
}

// List returns proformas matching filter.
func (c *Client) List(ctx context.Context, filter Filter) ([]Proforma, error) {
	var items []Proforma
	if err := c.caller.Get(ctx, "proforma.list", pathList, filter.query(), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []Proforma{}
	}
	return items, nil
}

// Upload sends a proforma document. It is attempted once.
func (c *Client) Upload(ctx context.Context, input UploadInput) (UploadResult, error) {
	if err := shared.Validate(input); err != nil {
		return UploadResult{}, err
	}
	fields := webhook.Query{
		"lpoUuid":    input.LPOUUID,
		"uploadedBy": input.UploadedBy,
	}
	var result UploadResult
	if err := c.caller.Upload(ctx, "proforma.upload", pathUpload, input.File, fields, &result); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

// Link attaches a proforma to an invoice.
func (c *Client) Link(ctx context.Context, input LinkInput) (webhook.Result, error) {
	if err := shared.Validate(input); err != nil {
		return webhook.Result{}, err
	}
	var result webhook.Result
	if err := c.caller.Post(ctx, "proforma.link", pathLink, input, &result); err != nil {
		return webhook.Result{}, err
	}
	return result, nil
}
