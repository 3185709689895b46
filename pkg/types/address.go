package types

import "strings"

// ShippingAddress is the structured destination captured at checkout. It is
// persisted as a JSON column on orders, so fields only need json tags.
type ShippingAddress struct {
	FullName string `json:"fullName" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	ZipCode  string `json:"zipCode" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

// IsZero reports whether no field of the address was provided.
func (a ShippingAddress) IsZero() bool {
	return strings.TrimSpace(a.FullName) == "" &&
		strings.TrimSpace(a.Address) == "" &&
		strings.TrimSpace(a.City) == "" &&
		strings.TrimSpace(a.State) == "" &&
		strings.TrimSpace(a.ZipCode) == "" &&
		strings.TrimSpace(a.Phone) == ""
}
