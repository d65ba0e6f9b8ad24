package vendors

// Filter narrows the vendor list.
type Filter struct {
	Search string
}

// CreateInput is the vendor creation form.
type CreateInput struct {
	VendorName    string `json:"VendorName" validate:"required,max=200"`
	ContactPerson string `json:"ContactPerson,omitempty" validate:"omitempty,max=120"`
	Phone         string `json:"Phone,omitempty" validate:"omitempty,max=40"`
	Email         string `json:"Email,omitempty" validate:"omitempty,email"`
}
