package services

import (
	"errors"

	"strokewatch-server/internal/store"
)

// Error taxonomy surfaced to the transport layer. Handlers map these to
// HTTP status codes; none are retried internally.
var (
	// ErrNotFound: a referenced entity does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRole: the actor's role disallows the operation.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidState: the entity is not in the lifecycle state the
	// requested transition needs.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict: a duplicate request or relation.
	ErrConflict = errors.New("conflict")
	// ErrForbidden: the resource exists but the caller holds no grant.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput: a request that binds but fails a conditional
	// business rule (e.g. patient registration without a profile).
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials: login failure; deliberately does not
	// distinguish unknown user from wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// fromStore lifts store-level sentinels into the service taxonomy.
// Uniqueness violations become ErrConflict so constraint-backed races
// surface the same way as pre-check hits.
func fromStore(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrDuplicate):
		return ErrConflict
	default:
		return err
	}
}
