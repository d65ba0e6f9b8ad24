package chains

// DocumentChain links the documents of one procurement lifecycle. Every
// identifier is optional; the backend fills in whatever exists so far.
type DocumentChain struct {
	ChainUUID     string   `json:"chainUuid"`
	Title         string   `json:"title,omitempty"`
	Department    string   `json:"department,omitempty"`
	QuotationUUID string   `json:"quotationUuid,omitempty"`
	LPOUUID       string   `json:"lpoUuid,omitempty"`
	LPONumber     string   `json:"lpoNumber,omitempty"`
	DOUUIDs       []string `json:"doUuids,omitempty"`
	ProformaUUID  string   `json:"proformaUuid,omitempty"`
	InvoiceUUID   string   `json:"invoiceUuid,omitempty"`
	PaymentIDs    []int64  `json:"paymentIds,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

// TimelineEvent is one entry of a chain's audit trail.
type TimelineEvent struct {
	At           string `json:"at"`
	DocumentType string `json:"documentType"`
	DocumentUUID string `json:"documentUuid,omitempty"`
	Action       string `json:"action"`
	Actor        string `json:"actor,omitempty"`
	Comment      string `json:"comment,omitempty"`
}
