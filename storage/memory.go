/*
# Module: storage/memory.go
In-memory status repository backed by a mutex-guarded map.

## Linked Modules
- [storage/repository](./repository.go) - Repository interfaces
- [types/request](../types/request.go) - Location request data structures

## Tags
storage, memory, status, concurrency

## Exports
MemoryStatusRepository, NewMemoryStatusRepository

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "storage/memory.go" ;
    code:description "In-memory status repository backed by a mutex-guarded map" ;
    code:linksTo [
        code:name "storage/repository" ;
        code:path "./repository.go" ;
        code:relationship "Repository interfaces"
    ], [
        code:name "types/request" ;
        code:path "../types/request.go" ;
        code:relationship "Location request data structures"
    ] ;
    code:exports :MemoryStatusRepository, :NewMemoryStatusRepository ;
    code:tags "storage", "memory", "status", "concurrency" .
<!-- End LinkedDoc RDF -->
*/
package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"location-consent/types"
)

// MemoryStatusRepository implements StatusRepository with an in-process
// map. State is lost on restart; entries live for the process lifetime.
type MemoryStatusRepository struct {
	requests map[string]*types.LocationRequest
	mutex    sync.RWMutex
}

// NewMemoryStatusRepository creates an empty in-memory status repository
func NewMemoryStatusRepository() *MemoryStatusRepository {
	return &MemoryStatusRepository{
		requests: make(map[string]*types.LocationRequest),
	}
}

// Create allocates a fresh random token with status pending
func (r *MemoryStatusRepository) Create(ctx context.Context) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate request ID: %w", err)
	}
	token := id.String()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.requests[token] = &types.LocationRequest{
		RequestID: token,
		Status:    types.StatusPending,
		CreatedAt: time.Now(),
	}
	return token, nil
}

// Get returns the current status of a request
func (r *MemoryStatusRepository) Get(ctx context.Context, token string) (types.Status, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	req, ok := r.requests[token]
	if !ok {
		return "", ErrNotFound
	}
	return req.Status, nil
}

// Transition applies a one-way pending -> terminal transition. The
// status and payload are set under the same lock, so racing callers
// observe exactly one winner and losers get the applied terminal state.
func (r *MemoryStatusRepository) Transition(ctx context.Context, token string, status types.Status, location *types.Coordinates, reason string) (bool, types.Status, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	req, ok := r.requests[token]
	if !ok {
		return false, "", ErrNotFound
	}
	if req.Status.Terminal() {
		return false, req.Status, nil
	}

	req.Status = status
	req.Location = location
	req.DenialReason = reason
	return true, status, nil
}

// Rollback removes an entry whose SMS was never delivered
func (r *MemoryStatusRepository) Rollback(ctx context.Context, token string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.requests, token)
	return nil
}
