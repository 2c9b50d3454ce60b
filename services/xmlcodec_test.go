package services

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"location-consent/types"
)

func TestEncodeResult_Completed(t *testing.T) {
	doc, err := EncodeResult("req-1", types.StatusCompleted, &types.Coordinates{Lat: 37.77, Lon: -122.41}, "")
	require.NoError(t, err)

	xml := string(doc)
	assert.Contains(t, xml, "<Status>completed</Status><Coordinates><Latitude>37.77</Latitude><Longitude>-122.41</Longitude></Coordinates>")
	assert.Contains(t, xml, "<RequestID>req-1</RequestID>")
	assert.NotContains(t, xml, "<Message>")
}

func TestEncodeResult_RoundTripPrecision(t *testing.T) {
	coords := []types.Coordinates{
		{Lat: 37.77, Lon: -122.41},
		{Lat: math.Pi, Lon: -math.E},
		{Lat: -89.999999999999, Lon: 179.999999999999},
		{Lat: 0, Lon: 0},
	}

	for _, want := range coords {
		doc, err := EncodeResult("tok", types.StatusCompleted, &want, "")
		require.NoError(t, err)

		parsed, err := DecodeResult(doc)
		require.NoError(t, err)
		require.NotNil(t, parsed.Coordinates)

		got, err := parsed.Coordinates.ParseCoordinates()
		require.NoError(t, err)
		assert.Equal(t, want.Lat, got.Lat)
		assert.Equal(t, want.Lon, got.Lon)
	}
}

func TestEncodeResult_Denied(t *testing.T) {
	t.Run("with reason", func(t *testing.T) {
		doc, err := EncodeResult("req-2", types.StatusDenied, nil, "Permission denied.")
		require.NoError(t, err)
		assert.Contains(t, string(doc), "<Status>denied</Status><Message>Permission denied.</Message>")
		assert.NotContains(t, string(doc), "<Coordinates>")
	})

	t.Run("reason is escaped", func(t *testing.T) {
		doc, err := EncodeResult("req-3", types.StatusDenied, nil, `<script>alert("x")</script> & more`)
		require.NoError(t, err)

		xml := string(doc)
		assert.NotContains(t, xml, "<script>")
		assert.Contains(t, xml, "&lt;script&gt;")
		assert.Contains(t, xml, "&amp; more")

		// Escaping must still round-trip to the original text.
		parsed, err := DecodeResult(doc)
		require.NoError(t, err)
		assert.Equal(t, `<script>alert("x")</script> & more`, parsed.Message)
	})
}

func TestEncodeResult_Pending(t *testing.T) {
	doc, err := EncodeResult("req-4", types.StatusPending, nil, "")
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<Status>pending</Status>")
	assert.Contains(t, string(doc), "<Message>"+PendingMessage+"</Message>")
}

func TestEncodeResult_Error(t *testing.T) {
	doc, err := EncodeResult("req-5", types.StatusError, nil, NotFoundMessage)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<Status>error</Status>")
	assert.Contains(t, string(doc), "<Message>"+NotFoundMessage+"</Message>")
}

func TestEncodeResult_DocumentShape(t *testing.T) {
	doc, err := EncodeResult("req-6", types.StatusCompleted, &types.Coordinates{Lat: 1.5, Lon: 2.5}, "")
	require.NoError(t, err)

	xml := string(doc)
	assert.True(t, strings.HasPrefix(xml, "<LocationRequest>"))
	assert.True(t, strings.HasSuffix(xml, "</LocationRequest>"))
}
