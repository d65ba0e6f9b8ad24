package vendors

// Vendor is a supplier as known to the invoice backend. It is immutable from
// the client's side once created.
type Vendor struct {
	VendorID      int64  `json:"VendorID"`
	VendorName    string `json:"VendorName"`
	ContactPerson string `json:"ContactPerson,omitempty"`
	Phone         string `json:"Phone,omitempty"`
	Email         string `json:"Email,omitempty"`
	CreatedAt     string `json:"CreatedAt,omitempty"`
}
