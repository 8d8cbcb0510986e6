package entry

import (
	"addressbook/internal/address"
	"addressbook/internal/form"
)

// Field names of the entry form. The set is fixed; every field is present in
// the state at all times.
const (
	FieldPostCode          = "postCode"
	FieldHouseNumber       = "houseNumber"
	FieldFirstName         = "firstName"
	FieldLastName          = "lastName"
	FieldSelectedAddressID = "selectedAddressId"
)

// fieldDefinitions declares the entry form. The address selection is a radio
// group bound to candidate IDs; everything else is plain text.
func fieldDefinitions() []form.Definition {
	return []form.Definition{
		{Name: FieldPostCode, Kind: form.KindText},
		{Name: FieldHouseNumber, Kind: form.KindText},
		{Name: FieldFirstName, Kind: form.KindText},
		{Name: FieldLastName, Kind: form.KindText},
		{Name: FieldSelectedAddressID, Kind: form.KindRadio},
	}
}

// Snapshot is the read-only view of workflow state exposed to the rendering
// layer.
type Snapshot struct {
	Fields    form.State        `json:"fields"`
	Addresses []address.Address `json:"addresses"`
	Error     string            `json:"error,omitempty"`
	Busy      bool              `json:"busy"`
}
