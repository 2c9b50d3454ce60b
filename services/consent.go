/*
# Module: services/consent.go
Consent workflow orchestrating request creation, submission, and result retrieval.

## Linked Modules
- [services/xmlcodec](./xmlcodec.go) - Result document encoding
- [storage/repository](../storage/repository.go) - Status and result repositories
- [types/request](../types/request.go) - Location request data structures

## Tags
consent, workflow, state-machine, sms

## Exports
SMSSender, ConsentService, NewConsentService, InitiateResult, SubmitResult, FetchedResult, ErrMissingPhoneNumber, ErrInvalidToken

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "services/consent.go" ;
    code:description "Consent workflow orchestrating request creation, submission, and result retrieval" ;
    code:linksTo [
        code:name "services/xmlcodec" ;
        code:path "./xmlcodec.go" ;
        code:relationship "Result document encoding"
    ], [
        code:name "storage/repository" ;
        code:path "../storage/repository.go" ;
        code:relationship "Status and result repositories"
    ], [
        code:name "types/request" ;
        code:path "../types/request.go" ;
        code:relationship "Location request data structures"
    ] ;
    code:exports :SMSSender, :ConsentService, :NewConsentService ;
    code:tags "consent", "workflow", "state-machine", "sms" .
<!-- End LinkedDoc RDF -->
*/
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"location-consent/storage"
	"location-consent/types"
)

var (
	// ErrMissingPhoneNumber is returned by Initiate for an empty number
	ErrMissingPhoneNumber = errors.New("'phone_number' is required")

	// ErrInvalidToken is returned by Submit for an unknown token
	ErrInvalidToken = errors.New("invalid token")
)

// SMSSender delivers the consent link to the recipient
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// ConsentService runs the consent workflow: create a request, send the
// link, accept exactly one submission, and serve the stored result.
type ConsentService struct {
	statuses storage.StatusRepository
	results  storage.ResultRepository
	sms      SMSSender
	baseURL  string
}

// NewConsentService wires the workflow with its collaborators. baseURL
// is the public origin embedded in consent links.
func NewConsentService(statuses storage.StatusRepository, results storage.ResultRepository, sms SMSSender, baseURL string) *ConsentService {
	return &ConsentService{
		statuses: statuses,
		results:  results,
		sms:      sms,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// InitiateResult describes an accepted location request
type InitiateResult struct {
	RequestID string
	Message   string
}

// Initiate creates a pending request and sends the consent link over
// SMS. Delivery failure rolls the created entry back so the token is
// never left dangling.
func (s *ConsentService) Initiate(ctx context.Context, phoneNumber string) (*InitiateResult, error) {
	if phoneNumber == "" {
		return nil, ErrMissingPhoneNumber
	}

	token, err := s.statuses.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create location request: %w", err)
	}

	consentURL := fmt.Sprintf("%s/consent/%s", s.baseURL, token)
	body := "Please share your location by clicking the link. " +
		"An internet connection (Wi-Fi or mobile data) is required.\n\n" +
		"Click here: " + consentURL

	if err := s.sms.SendSMS(ctx, phoneNumber, body); err != nil {
		if rbErr := s.statuses.Rollback(ctx, token); rbErr != nil {
			log.Printf("⚠️  Failed to roll back request %s: %v", token, rbErr)
		}
		return nil, fmt.Errorf("failed to send SMS: %w", err)
	}

	log.Printf("📱 Location request %s sent to %s", token, phoneNumber)
	return &InitiateResult{
		RequestID: token,
		Message:   fmt.Sprintf("Location request SMS sent to %s.", phoneNumber),
	}, nil
}

// ViewConsent checks whether a consent page may be shown for a token.
// processed=true means the request already reached a terminal state and
// the page should show an informational notice instead of the prompt.
func (s *ConsentService) ViewConsent(ctx context.Context, token string) (processed bool, err error) {
	status, err := s.statuses.Get(ctx, token)
	if err != nil {
		return false, err
	}
	return status.Terminal(), nil
}

// SubmitResult describes the outcome of a consent submission. Durable
// is false when the acknowledgment was sent but the result document
// could not be written.
type SubmitResult struct {
	AlreadyProcessed bool
	Status           types.Status
	Durable          bool
}

// Submit records the recipient's decision. A location means consent was
// granted; otherwise the request is denied with the supplied reason (or
// a generic one). Repeat submissions are acknowledged without touching
// storage, and only the transition winner writes the result document.
func (s *ConsentService) Submit(ctx context.Context, token string, location *types.Coordinates, errorText string) (*SubmitResult, error) {
	status := types.StatusCompleted
	reason := ""
	if location == nil {
		status = types.StatusDenied
		reason = errorText
		if reason == "" {
			reason = DefaultDenialMessage
		}
	}

	applied, current, err := s.statuses.Transition(ctx, token, status, location, reason)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to transition request %s: %w", token, err)
	}
	if !applied {
		return &SubmitResult{AlreadyProcessed: true, Status: current, Durable: true}, nil
	}

	if status == types.StatusCompleted {
		log.Printf("📍 Location received for %s: (%f, %f)", token, location.Lat, location.Lon)
	} else {
		log.Printf("🚫 Location denied for %s: %s", token, reason)
	}

	doc, err := EncodeResult(token, status, location, reason)
	if err != nil {
		// The submitter is still acknowledged; only durability is lost.
		log.Printf("❌ Could not encode result for %s: %v", token, err)
		return &SubmitResult{Status: status}, nil
	}
	if err := s.results.Save(token, doc); err != nil {
		log.Printf("❌ Could not save result for %s: %v", token, err)
		return &SubmitResult{Status: status}, nil
	}

	log.Printf("💾 Result saved for %s", token)
	return &SubmitResult{Status: status, Durable: true}, nil
}

// FetchedResult carries a result document and whether the request was
// unknown (which maps to a 404 at the HTTP layer)
type FetchedResult struct {
	Document []byte
	NotFound bool
}

// FetchResult returns the persisted document for a token, a synthesized
// pending document while the recipient has not answered, or a
// synthesized error document for unknown tokens.
func (s *ConsentService) FetchResult(ctx context.Context, token string) (*FetchedResult, error) {
	doc, err := s.results.Load(token)
	if err == nil {
		return &FetchedResult{Document: doc}, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to load result for %s: %w", token, err)
	}

	status, err := s.statuses.Get(ctx, token)
	if err == nil && status == types.StatusPending {
		pending, encErr := EncodeResult(token, types.StatusPending, nil, "")
		if encErr != nil {
			return nil, encErr
		}
		return &FetchedResult{Document: pending}, nil
	}

	notFound, encErr := EncodeResult(token, types.StatusError, nil, NotFoundMessage)
	if encErr != nil {
		return nil, encErr
	}
	return &FetchedResult{Document: notFound, NotFound: true}, nil
}
