package deliveryorders

import (
	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
)

// Filter narrows the delivery order list.
type Filter struct {
	Status  Status
	LPOUUID string
}

func (f Filter) query() webhook.Query {
	return webhook.Query{
		"status":  string(f.Status),
		"lpoUuid": f.LPOUUID,
	}
}

// UploadInput carries a delivery note for an LPO.
type UploadInput struct {
	File       webhook.File
	LPOUUID    string `validate:"required,uuid"`
	UploadedBy string
}

// UploadResult answers an upload.
type UploadResult struct {
	webhook.Result
	DOUUID string `json:"doUuid,omitempty"`
}

// ReceiveInput confirms goods were received.
type ReceiveInput struct {
	DOUUID       string      `json:"doUuid" validate:"required,uuid"`
	ReceivedDate shared.Date `json:"receivedDate" validate:"required"`
	UserID       string      `json:"userId" validate:"required"`
	Notes        string      `json:"notes,omitempty" validate:"max=1000"`
}
