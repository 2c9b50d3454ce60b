/*
# Module: types/api_types.go
External API request and response data structures.

## Linked Modules
- [types/request](./request.go) - Location request data structures

## Tags
data-types, api-client, twilio

## Exports
RequestLocationRequest, RequestLocationResponse, SubmitLocationRequest, SubmitLocationResponse, ErrorResponse, TwilioMessageResponse

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "types/api_types.go" ;
    code:description "External API request and response data structures" ;
    code:linksTo [
        code:name "types/request" ;
        code:path "./request.go" ;
        code:relationship "Location request data structures"
    ] ;
    code:exports :RequestLocationRequest, :RequestLocationResponse, :SubmitLocationRequest, :SubmitLocationResponse, :ErrorResponse, :TwilioMessageResponse ;
    code:tags "data-types", "api-client", "twilio" .
<!-- End LinkedDoc RDF -->
*/
package types

// RequestLocationRequest represents the body of POST /request-location
type RequestLocationRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// RequestLocationResponse acknowledges an accepted location request
type RequestLocationResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// SubmitLocationRequest represents the body of POST /submit-location.
// Location is null when the recipient denied or the browser failed to
// capture a position; Error carries the browser-supplied reason.
type SubmitLocationRequest struct {
	Token    string       `json:"token"`
	Location *Coordinates `json:"location"`
	Error    string       `json:"error"`
}

// SubmitLocationResponse acknowledges a consent submission
type SubmitLocationResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse represents an API error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// TwilioMessageResponse represents the Twilio REST API response for a
// created message
type TwilioMessageResponse struct {
	Sid          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}
