// Package deliveryorders wraps the delivery order endpoints.
package deliveryorders

import (
	"context"
	"strings"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
)

const (
	pathList    = "/do-api/delivery-orders"
	pathUpload  = "/do-api/upload"
	pathReceive = "/do-api/receive"
)

// Client exposes delivery order operations.
type Client struct {
	caller webhook.Caller
}

// NewClient constructs a delivery order client.
func NewClient(caller webhook.Caller) *Client {
	return &Client{caller: caller}
}

// List returns delivery orders matching filter.
func (c *Client) List(ctx context.Context, filter Filter) ([]DeliveryOrder, error) {
	var orders []DeliveryOrder
	if err := c.caller.Get(ctx, "deliveryorders.list", pathList, filter.query(), &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []DeliveryOrder{}
	}
	return orders, nil
}

// Upload sends a delivery note. It is attempted once.
func (c *Client) Upload(ctx context.Context, input UploadInput) (UploadResult, error) {
	input.LPOUUID = strings.TrimSpace(input.LPOUUID)
	if err := shared.Validate(input); err != nil {
		return UploadResult{}, err
	}
	fields := webhook.Query{
		"lpoUuid":    input.LPOUUID,
		"uploadedBy": input.UploadedBy,
	}
	var result UploadResult
	if err := c.caller.Upload(ctx, "deliveryorders.upload", pathUpload, input.File, fields, &result); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

// Receive marks a delivery order as received.
func (c *Client) Receive(ctx context.Context, input ReceiveInput) (webhook.Result, error) {
	input.Notes = strings.TrimSpace(input.Notes)
	if err := shared.Validate(input); err != nil {
		return webhook.Result{}, err
	}
	var result webhook.Result
	if err := c.caller.Post(ctx, "deliveryorders.receive", pathReceive, input, &result); err != nil {
		return webhook.Result{}, err
	}
	return result, nil
}
