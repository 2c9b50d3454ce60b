/*
# Module: handlers/handlers.go
HTTP endpoint handlers for the location consent API.

## Linked Modules
- [handlers/consent_page](./consent_page.go) - Consent page template
- [services/consent](../services/consent.go) - Consent workflow
- [types/api_types](../types/api_types.go) - API request/response structures

## Tags
http, api, handlers

## Exports
ConsentHandlers, NewConsentHandlers, HandleHealth

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "handlers/handlers.go" ;
    code:description "HTTP endpoint handlers for the location consent API" ;
    code:linksTo [
        code:name "handlers/consent_page" ;
        code:path "./consent_page.go" ;
        code:relationship "Consent page template"
    ], [
        code:name "services/consent" ;
        code:path "../services/consent.go" ;
        code:relationship "Consent workflow"
    ], [
        code:name "types/api_types" ;
        code:path "../types/api_types.go" ;
        code:relationship "API request/response structures"
    ] ;
    code:exports :ConsentHandlers, :NewConsentHandlers, :HandleHealth ;
    code:tags "http", "api", "handlers" .
<!-- End LinkedDoc RDF -->
*/
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"location-consent/services"
	"location-consent/storage"
	"location-consent/types"
)

// ConsentHandlers exposes the consent workflow over HTTP
type ConsentHandlers struct {
	service *services.ConsentService
}

// NewConsentHandlers creates handlers backed by the given workflow
func NewConsentHandlers(service *services.ConsentService) *ConsentHandlers {
	return &ConsentHandlers{service: service}
}

// HandleRequestLocation handles POST /request-location
//Sends a consent link to the given phone number via SMS
func (h *ConsentHandlers) HandleRequestLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req types.RequestLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	result, err := h.service.Initiate(r.Context(), req.PhoneNumber)
	if err != nil {
		if errors.Is(err, services.ErrMissingPhoneNumber) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, types.RequestLocationResponse{
		Status:    string(types.StatusPending),
		Message:   result.Message,
		RequestID: result.RequestID,
	})
}

// HandleConsentPage handles GET /consent/{request_id}
// Serves the browser page where the recipient approves or denies sharing
func (h *ConsentHandlers) HandleConsentPage(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.URL.Path, "/consent/")
	if token == "" || strings.Contains(token, "/") {
		http.NotFound(w, r)
		return
	}

	processed, err := h.service.ViewConsent(r.Context(), token)
	if err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "<h1>Invalid or expired request.</h1>")
		return
	}
	if processed {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<h1>This location request has already been completed.</h1>")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := consentTemplate.Execute(w, consentPageData{RequestID: token}); err != nil {
		http.Error(w, "Failed to render consent page", http.StatusInternalServerError)
	}
}

// HandleSubmitLocation handles POST /submit-location
// Receives the browser's consent decision and always acknowledges a
// known token, even when the result could not be stored
func (h *ConsentHandlers) HandleSubmitLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req types.SubmitLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	result, err := h.service.Submit(r.Context(), req.Token, req.Location, req.Error)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) || errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Invalid token")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if result.AlreadyProcessed {
		writeJSON(w, http.StatusOK, types.SubmitLocationResponse{Message: "Request already processed"})
		return
	}
	writeJSON(w, http.StatusOK, types.SubmitLocationResponse{Status: "received"})
}

// HandleGetLocation handles GET /get-location/{request_id}
// Serves the stored XML result, a synthesized pending document, or a
// 404 error document for unknown request IDs
func (h *ConsentHandlers) HandleGetLocation(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.URL.Path, "/get-location/")
	if token == "" || strings.Contains(token, "/") {
		http.NotFound(w, r)
		return
	}

	result, err := h.service.FetchResult(r.Context(), token)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error reading result file: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	if result.NotFound {
		w.WriteHeader(http.StatusNotFound)
	}
	w.Write(result.Document)
}

// HandleIndex handles GET /
func (h *ConsentHandlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	fmt.Fprint(w, "Location Request Service is running. API is live.")
}

// HandleHealth handles GET /api/health
// Returns a simple health status response
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, types.ErrorResponse{Error: message})
}
