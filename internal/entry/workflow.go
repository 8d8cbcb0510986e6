// Package entry implements the address book entry workflow: search for
// candidate addresses by postcode and house number, attach a person to the
// selected candidate, commit the combined record to the address book.
package entry

import (
	"sync"

	"addressbook/internal/address"
	"addressbook/internal/addressbook"
	stderrors "addressbook/internal/common/errors"
	"addressbook/internal/common/logger"
	"addressbook/internal/common/observability"
	"addressbook/internal/form"
	"addressbook/internal/lookup"
)

// Workflow owns the field state, the current result set, the last error and
// the busy flag. The triple is only ever mutated under the workflow mutex,
// so no caller can observe a partially updated state.
type Workflow struct {
	mu      sync.Mutex
	fields  *form.Store
	results []address.Address
	lastErr *stderrors.StandardError
	busy    bool

	lookup lookup.Searcher
	store  addressbook.Store
	logger logger.Logger
	obs    *observability.Observability
}

type Dependencies struct {
	Lookup lookup.Searcher
	Store  addressbook.Store
	Logger logger.Logger
	// Obs is optional; nil disables the otel meter.
	Obs *observability.Observability
}

func New(deps Dependencies) *Workflow {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Workflow{
		fields: form.NewStore(fieldDefinitions()),
		lookup: deps.Lookup,
		store:  deps.Store,
		logger: log,
		obs:    deps.Obs,
	}
}

// ApplyFieldChange routes an input event into the field store.
func (w *Workflow) ApplyFieldChange(name string, ev form.ChangeEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fields.ApplyChange(name, ev)
}

// Snapshot returns a consistent copy of the current workflow state.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Workflow) snapshotLocked() Snapshot {
	addresses := make([]address.Address, len(w.results))
	copy(addresses, w.results)

	snap := Snapshot{
		Fields:    w.fields.State(),
		Addresses: addresses,
		Busy:      w.busy,
	}
	if w.lastErr != nil {
		snap.Error = w.lastErr.Message
	}
	return snap
}

// Clear resets field state to initial values, empties the result set and
// clears the error, all under one lock acquisition.
func (w *Workflow) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.fields.Reset()
	w.results = nil
	w.lastErr = nil

	w.logger.Debug("entry form cleared", nil)
}
