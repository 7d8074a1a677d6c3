package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into coded domain errors instead of
// inspecting driver-specific failures.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: a uniqueness or state constraint rejected the write
// - ErrSuppressed: the store refused a write because an equivalent record
//   already exists inside its suppression window
// - ErrUnavailable: backing service or resource is not reachable/configured
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrSuppressed  = errors.New("suppressed")
	ErrUnavailable = errors.New("unavailable")
)
