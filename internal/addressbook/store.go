// Package addressbook persists completed address book entries.
package addressbook

import (
	"context"

	"addressbook/internal/address"
)

// Store is the persistence capability consumed by the person assignment
// workflow. Implementations must treat AddAddress as an upsert on the
// entry's address identity.
type Store interface {
	AddAddress(ctx context.Context, entry address.Entry) error
}
