package entry

import (
	"context"
	"strings"

	"addressbook/internal/address"
	stderrors "addressbook/internal/common/errors"
	"addressbook/internal/common/metrics"
)

// SubmitPerson runs the person assignment phase: validate the selection and
// name fields, merge the person into the selected address and hand the entry
// to the address book store. Failures leave the result set and selection
// untouched so the user can correct and resubmit without re-searching.
//
// Name values are blank-checked after trimming but stored as entered.
func (w *Workflow) SubmitPerson(ctx context.Context) (*address.Entry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastErr = nil

	selectedID := strings.TrimSpace(w.fields.String(FieldSelectedAddressID))
	if selectedID == "" || len(w.results) == 0 {
		return nil, w.failPerson(stderrors.NewNoSelectionError())
	}

	selected, found := w.findResult(selectedID)
	if !found {
		return nil, w.failPerson(stderrors.NewSelectionNotFoundError(selectedID))
	}

	firstName := w.fields.String(FieldFirstName)
	lastName := w.fields.String(FieldLastName)
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, w.failPerson(stderrors.NewMandatoryNamesError())
	}

	entry := address.Entry{
		Address:   selected,
		FirstName: firstName,
		LastName:  lastName,
	}

	// The store call is fire-and-forget from the workflow's perspective:
	// a persistence failure is logged but not surfaced as workflow state.
	if err := w.store.AddAddress(ctx, entry); err != nil {
		w.logger.Error("failed to persist address book entry", map[string]interface{}{
			"entryId": entry.ID,
			"error":   err.Error(),
		})
	} else {
		metrics.EntriesSaved.Inc()
	}

	w.logger.Info("address book entry submitted", map[string]interface{}{
		"entryId": entry.ID,
	})
	return &entry, nil
}

// findResult looks up an address in the current result set by id equality.
func (w *Workflow) findResult(id string) (address.Address, bool) {
	for _, addr := range w.results {
		if addr.ID == id {
			return addr, true
		}
	}
	return address.Address{}, false
}

func (w *Workflow) failPerson(err *stderrors.StandardError) *stderrors.StandardError {
	w.lastErr = err
	metrics.PersonFailures.WithLabelValues(string(err.Code)).Inc()
	w.logger.Warn("person assignment failed", map[string]interface{}{
		"errorCode": string(err.Code),
		"message":   err.Message,
	})
	return err
}
