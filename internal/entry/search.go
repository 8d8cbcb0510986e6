package entry

import (
	"context"
	"strings"
	"time"

	"addressbook/internal/address"
	stderrors "addressbook/internal/common/errors"
	"addressbook/internal/common/metrics"
)

// SubmitSearch runs the address search phase: validate the search fields,
// call the lookup capability, map records into the new result set. Any
// previous error and result set are discarded first, so stale results never
// coexist with a new error. On every failure the result set stays empty.
//
// Only one search may be in flight at a time; a submission while the busy
// flag is set is rejected without touching the in-flight state.
func (w *Workflow) SubmitSearch(ctx context.Context) ([]address.Address, error) {
	started := time.Now()
	metrics.SearchesTotal.Inc()

	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return nil, stderrors.NewSearchInProgressError()
	}

	w.lastErr = nil
	w.results = nil

	if !w.lookup.Configured() {
		err := stderrors.NewConfigurationError()
		w.lastErr = err
		w.mu.Unlock()
		w.recordSearchFailure(ctx, err, started)
		return nil, err
	}

	postcode := strings.TrimSpace(w.fields.String(FieldPostCode))
	houseNumber := strings.TrimSpace(w.fields.String(FieldHouseNumber))
	if postcode == "" || houseNumber == "" {
		err := stderrors.NewMandatoryFieldsError()
		w.lastErr = err
		w.mu.Unlock()
		w.recordSearchFailure(ctx, err, started)
		return nil, err
	}

	w.busy = true
	w.mu.Unlock()

	records, lookupErr := w.lookup.Search(ctx, postcode, houseNumber)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = false

	if lookupErr != nil {
		err := stderrors.AsStandard(lookupErr)
		w.lastErr = err
		w.results = nil
		w.recordSearchFailure(ctx, err, started)
		return nil, err
	}

	if len(records) == 0 {
		err := stderrors.NewNoAddressesFoundError()
		w.lastErr = err
		w.recordSearchFailure(ctx, err, started)
		return nil, err
	}

	addresses := make([]address.Address, 0, len(records))
	for _, record := range records {
		addr, err := address.Transform(record, houseNumber)
		if err != nil {
			stdErr := stderrors.AsStandard(err)
			w.lastErr = stdErr
			w.results = nil
			w.recordSearchFailure(ctx, stdErr, started)
			return nil, stdErr
		}
		addresses = append(addresses, addr)
	}

	w.results = addresses
	w.lastErr = nil

	metrics.SearchDuration.Observe(time.Since(started).Seconds())
	if w.obs != nil {
		w.obs.RecordSearch(ctx, "success")
		w.obs.RecordSearchDuration(ctx, time.Since(started), "success")
	}
	w.logger.Info("address search completed", map[string]interface{}{
		"postcode":    postcode,
		"houseNumber": houseNumber,
		"resultCount": len(addresses),
	})

	result := make([]address.Address, len(addresses))
	copy(result, addresses)
	return result, nil
}

func (w *Workflow) recordSearchFailure(ctx context.Context, err *stderrors.StandardError, started time.Time) {
	metrics.SearchFailures.WithLabelValues(string(err.Code)).Inc()
	metrics.SearchDuration.Observe(time.Since(started).Seconds())
	if w.obs != nil {
		w.obs.RecordSearch(ctx, "failure")
		w.obs.RecordSearchDuration(ctx, time.Since(started), "failure")
	}
	w.logger.Warn("address search failed", map[string]interface{}{
		"errorCode": string(err.Code),
		"message":   err.Message,
		"details":   err.Details,
	})
}
