package address

// RawRecord is one address record as returned by the lookup provider,
// consumed read-only. Provider-defined fields beyond the identifying ones
// are preserved until transformation.
type RawRecord map[string]interface{}

func (r RawRecord) stringField(name string) string {
	v, _ := r[name].(string)
	return v
}

// Address is the canonical address entity. Immutable after creation; lives
// only as long as the current search result set.
type Address struct {
	ID          string `json:"id"`
	HouseNumber string `json:"houseNumber"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Postcode    string `json:"postcode"`
	Province    string `json:"province,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Entry is an Address combined with a person's name, the unit persisted to
// the address book.
type Entry struct {
	Address
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
