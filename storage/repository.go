/*
# Module: storage/repository.go
Repository interfaces for request status tracking and result persistence.

## Linked Modules
- [types/request](../types/request.go) - Location request data structures

## Tags
storage, repository, interface, persistence

## Exports
ErrNotFound, StatusRepository, ResultRepository

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "storage/repository.go" ;
    code:description "Repository interfaces for request status tracking and result persistence" ;
    code:linksTo [
        code:name "types/request" ;
        code:path "../types/request.go" ;
        code:relationship "Location request data structures"
    ] ;
    code:exports :ErrNotFound, :StatusRepository, :ResultRepository ;
    code:tags "storage", "repository", "interface", "persistence" .
<!-- End LinkedDoc RDF -->
*/
package storage

import (
	"context"
	"errors"

	"location-consent/types"
)

// ErrNotFound is returned when a request ID or result document is unknown
var ErrNotFound = errors.New("request not found")

// StatusRepository tracks the lifecycle state of location requests.
// Transitions are one-way: once a request leaves pending it never
// changes again, and concurrent transitions for the same token see
// exactly one winner.
type StatusRepository interface {
	// Create allocates a fresh unique token with status pending
	Create(ctx context.Context) (string, error)

	// Get returns the current status, or ErrNotFound
	Get(ctx context.Context, token string) (types.Status, error)

	// Transition moves a pending request to a terminal status with its
	// payload. Returns applied=false with the existing status when the
	// request is already terminal, and ErrNotFound for unknown tokens.
	Transition(ctx context.Context, token string, status types.Status, location *types.Coordinates, reason string) (applied bool, current types.Status, err error)

	// Rollback removes an entry created by Create. Only used when SMS
	// delivery fails before the recipient ever saw the link.
	Rollback(ctx context.Context, token string) error
}

// ResultRepository persists final result documents keyed by token
type ResultRepository interface {
	Save(token string, doc []byte) error
	Load(token string) ([]byte, error)
}
