/*
# Module: services/xmlcodec.go
XML encoding and decoding of location result documents.

## Linked Modules
- [types/request](../types/request.go) - Location request data structures

## Tags
xml, codec, serialization

## Exports
ResultDocument, CoordinatesElement, EncodeResult, DecodeResult, PendingMessage, NotFoundMessage, DefaultDenialMessage

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "services/xmlcodec.go" ;
    code:description "XML encoding and decoding of location result documents" ;
    code:linksTo [
        code:name "types/request" ;
        code:path "../types/request.go" ;
        code:relationship "Location request data structures"
    ] ;
    code:exports :ResultDocument, :CoordinatesElement, :EncodeResult, :DecodeResult ;
    code:tags "xml", "codec", "serialization" .
<!-- End LinkedDoc RDF -->
*/
package services

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"location-consent/types"
)

// Fixed messages carried in synthesized or denial documents
const (
	PendingMessage       = "Location has not been provided by the user yet."
	NotFoundMessage      = "Request ID not found."
	DefaultDenialMessage = "Location sharing was declined."
)

// ResultDocument is the persisted XML representation of a finished
// (or synthesized pending/error) location request
type ResultDocument struct {
	XMLName     xml.Name            `xml:"LocationRequest"`
	RequestID   string              `xml:"RequestID"`
	Status      string              `xml:"Status"`
	Coordinates *CoordinatesElement `xml:"Coordinates,omitempty"`
	Message     string              `xml:"Message,omitempty"`
}

// CoordinatesElement holds latitude and longitude as decimal strings
type CoordinatesElement struct {
	Latitude  string `xml:"Latitude"`
	Longitude string `xml:"Longitude"`
}

// EncodeResult serializes a result document. Coordinates are emitted
// only for completed requests; pending, denied, and error documents
// carry a message instead. Text content is XML-escaped.
func EncodeResult(token string, status types.Status, location *types.Coordinates, message string) ([]byte, error) {
	doc := ResultDocument{
		RequestID: token,
		Status:    string(status),
	}

	switch status {
	case types.StatusCompleted:
		if location != nil {
			doc.Coordinates = &CoordinatesElement{
				Latitude:  strconv.FormatFloat(location.Lat, 'f', -1, 64),
				Longitude: strconv.FormatFloat(location.Lon, 'f', -1, 64),
			}
		}
	case types.StatusPending:
		doc.Message = PendingMessage
	default:
		doc.Message = message
	}

	data, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result document: %w", err)
	}
	return data, nil
}

// DecodeResult parses a result document produced by EncodeResult
func DecodeResult(data []byte) (*ResultDocument, error) {
	var doc ResultDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode result document: %w", err)
	}
	return &doc, nil
}

// ParseCoordinates converts a document's coordinate strings back to
// decimal degrees
func (c *CoordinatesElement) ParseCoordinates() (types.Coordinates, error) {
	lat, err := strconv.ParseFloat(c.Latitude, 64)
	if err != nil {
		return types.Coordinates{}, fmt.Errorf("invalid latitude %q: %w", c.Latitude, err)
	}
	lon, err := strconv.ParseFloat(c.Longitude, 64)
	if err != nil {
		return types.Coordinates{}, fmt.Errorf("invalid longitude %q: %w", c.Longitude, err)
	}
	return types.Coordinates{Lat: lat, Lon: lon}, nil
}
