// Package vendors wraps the vendor endpoints of the invoice webhook group.
package vendors

import (
	"context"
	"strings"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
)

const (
	pathList   = "/invoice-api/vendors"
	pathCreate = "/invoice-api/vendor"
)

// Client exposes vendor operations.
type Client struct {
	caller webhook.Caller
}

// NewClient constructs a vendor client.
func NewClient(caller webhook.Caller) *Client {
	return &Client{caller: caller}
}

// List returns vendors matching filter.
func (c *Client) List(ctx context.Context, filter Filter) ([]Vendor, error) {
	var vendors []Vendor
	if err := c.caller.Get(ctx, "vendors.list", pathList, webhook.Query{"search": filter.Search}, &vendors); err != nil {
		return nil, err
	}
	if vendors == nil {
		vendors = []Vendor{}
	}
	return vendors, nil
}

// Create registers a new vendor and returns it as stored by the backend.
func (c *Client) Create(ctx context.Context, input CreateInput) (Vendor, error) {
	input.VendorName = strings.TrimSpace(input.VendorName)
	input.ContactPerson = strings.TrimSpace(input.ContactPerson)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Email = strings.TrimSpace(input.Email)
	if err := shared.Validate(input); err != nil {
		return Vendor{}, err
	}
	var vendor Vendor
	if err := c.caller.Post(ctx, "vendors.create", pathCreate, input, &vendor); err != nil {
		return Vendor{}, err
	}
	return vendor, nil
}
