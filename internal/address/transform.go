package address

import (
	"fmt"

	"github.com/google/uuid"

	stderrors "addressbook/internal/common/errors"
)

// idNamespace anchors the deterministic ID derivation. Changing it changes
// every derived address identity.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("addressbook.address"))

// Transform maps a raw lookup record plus a house number into a canonical
// Address. It is pure and idempotent: equal inputs always derive equal IDs,
// so re-running a search never mints a new identity for the same physical
// address. Records without the identifying fields fail with a
// MALFORMED_RECORD error.
func Transform(record RawRecord, houseNumber string) (Address, error) {
	if err := validateRecord(record); err != nil {
		return Address{}, stderrors.NewMalformedRecordError(err.Error())
	}

	addr := Address{
		HouseNumber: houseNumber,
		Street:      record.stringField("street"),
		City:        record.stringField("city"),
		Postcode:    record.stringField("postcode"),
		Province:    record.stringField("province"),
		Country:     record.stringField("country"),
	}
	addr.ID = deriveID(addr)
	return addr, nil
}

// deriveID hashes the identifying fields plus the house number into a
// name-based UUID.
func deriveID(addr Address) string {
	name := fmt.Sprintf("%s|%s|%s|%s", addr.Street, addr.City, addr.Postcode, addr.HouseNumber)
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}
