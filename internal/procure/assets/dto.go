package assets

import (
	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
)

// Filter narrows asset lists. Status only applies to List.
type Filter struct {
	Department string
	Branch     string
	Category   string
	Status     Status
}

func (f Filter) query() webhook.Query {
	return webhook.Query{
		"department": f.Department,
		"branch":     f.Branch,
		"category":   f.Category,
		"status":     string(f.Status),
	}
}

// PutToUseInput capitalises a pending asset.
type PutToUseInput struct {
	AssetUUID    string      `json:"assetUuid" validate:"required,uuid"`
	PutToUseDate shared.Date `json:"putToUseDate" validate:"required"`
	UserID       string      `json:"userId" validate:"required"`
}

// PutToUseResult carries the tag assigned to the asset.
type PutToUseResult struct {
	webhook.Result
	AssetTag string `json:"assetTag,omitempty"`
}
