package booking

import "github.com/tourdesk/backend/internal/domain/shared"

// ErrRecomputeInProgress is returned when a run is requested while another
// run holds the lock.
var ErrRecomputeInProgress = shared.NewDomainError("ERR_RECOMPUTE_IN_PROGRESS", "a recompute run is already in progress")
