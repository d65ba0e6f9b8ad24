// Package lookups wraps the reference data endpoints and an optional Redis
// cache in front of them.
package lookups

import (
	"context"
	"strings"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
)

const (
	pathDepartments = "/lookup-api/departments"
	pathBranches    = "/lookup-api/branches"
	pathCategories  = "/lookup-api/categories"
	pathUsers       = "/lookup-api/users"
)

// Source is the lookup surface shared by Client and Cached.
type Source interface {
	Departments(ctx context.Context) ([]Option, error)
	Branches(ctx context.Context) ([]Option, error)
	Categories(ctx context.Context) ([]Option, error)
	Users(ctx context.Context, role string) ([]User, error)
}

// Client fetches lookups straight from the backend.
type Client struct {
	caller webhook.Caller
}

var _ Source = (*Client)(nil)

// NewClient constructs a lookup client.
func NewClient(caller webhook.Caller) *Client {
	return &Client{caller: caller}
}

// Departments lists departments.
func (c *Client) Departments(ctx context.Context) ([]Option, error) {
	return c.options(ctx, "lookups.departments", pathDepartments)
}

// Branches lists branches.
func (c *Client) Branches(ctx context.Context) ([]Option, error) {
	return c.options(ctx, "lookups.branches", pathBranches)
}

// Categories lists asset categories.
func (c *Client) Categories(ctx context.Context) ([]Option, error) {
	return c.options(ctx, "lookups.categories", pathCategories)
}

// Users lists users, optionally narrowed to role.
func (c *Client) Users(ctx context.Context, role string) ([]User, error) {
	var users []User
	query := webhook.Query{"role": strings.TrimSpace(role)}
	if err := c.caller.Get(ctx, "lookups.users", pathUsers, query, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

func (c *Client) options(ctx context.Context, operation, path string) ([]Option, error) {
	var options []Option
	if err := c.caller.Get(ctx, operation, path, nil, &options); err != nil {
		return nil, err
	}
	if options == nil {
		options = []Option{}
	}
	return options, nil
}
