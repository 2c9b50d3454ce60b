/*
# Module: types/request.go
Location request data structures and lifecycle status values.

## Linked Modules
(None - types package has no dependencies)

## Tags
data-types, location, consent

## Exports
Status, StatusPending, StatusCompleted, StatusDenied, StatusError, Coordinates, LocationRequest

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "types/request.go" ;
    code:description "Location request data structures and lifecycle status values" ;
    code:exports :Status, :Coordinates, :LocationRequest ;
    code:tags "data-types", "location", "consent" .
<!-- End LinkedDoc RDF -->
*/
package types

import "time"

// Status represents the lifecycle state of a location request
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusDenied    Status = "denied"

	// StatusError is only ever synthesized for result documents of
	// unknown request IDs; it is never stored.
	StatusError Status = "error"
)

// Terminal reports whether no further transitions are permitted
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusDenied
}

// Coordinates represents a geographic position in decimal degrees
type Coordinates struct {
	Lat float64 `json:"lat" dynamodbav:"latitude"`
	Lon float64 `json:"lon" dynamodbav:"longitude"`
}

// LocationRequest tracks one consent request from creation to its
// terminal state. Location is set only when completed, DenialReason
// only when denied.
type LocationRequest struct {
	RequestID    string       `json:"request_id" dynamodbav:"request_id"`
	Status       Status       `json:"status" dynamodbav:"status"`
	Location     *Coordinates `json:"location,omitempty" dynamodbav:"location,omitempty"`
	DenialReason string       `json:"denial_reason,omitempty" dynamodbav:"denial_reason,omitempty"`
	CreatedAt    time.Time    `json:"created_at" dynamodbav:"created_at"`
}
