// Package store is the proof request ledger: the request records, the
// latest allocated id and the single pending slot.
//
// Error contract:
//   - Allocate returns ErrSlotBusy (wraps sentinel.ErrBusy) while a request is pending
//   - Fulfill and Cancel return ErrNotPending (wraps sentinel.ErrInvalidState) for a
//     request that exists but is terminal, sentinel.ErrNotFound for an unknown id
//   - FindByID returns sentinel.ErrNotFound; Pending returns sentinel.ErrNotFound when idle
//
// Every mutation is atomic with respect to the slot, so concurrent callers
// racing for it see exactly one winner.
package store

import (
	"fmt"

	"github.com/thientu9562/identity-management/pkg/platform/sentinel"
)

var (
	ErrSlotBusy   = fmt.Errorf("pending slot occupied: %w", sentinel.ErrBusy)
	ErrNotPending = fmt.Errorf("request not pending: %w", sentinel.ErrInvalidState)
)
