package carrier_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

// confirmedShipment builds a shipment whose carrier already assigned a
// tracking number.
func confirmedShipment(t *testing.T, trackingNumber string) *shipment.Shipment {
	t.Helper()

	aggregate, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), "ups", "")
	require.NoError(t, err)
	require.NoError(t, aggregate.ConfirmCarrier(trackingNumber, time.Now().UTC().Add(72*time.Hour)))

	return aggregate
}

func Test_HTTPGateway_CreateShipment(t *testing.T) {
	// Arrange
	orderID := kernel.NewUUID()
	estimated := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/shipments", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var request map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, orderID.String(), request["order_id"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tracking_number":    "1Z999AA10123456784",
			"estimated_delivery": estimated,
		})
	}))
	defer server.Close()

	gateway, err := carrier.NewHTTPGateway(server.URL, "test-key")
	require.NoError(t, err)
	aggregate, err := shipment.NewShipment(kernel.NewUUID(), orderID, "ups", "fragile")
	require.NoError(t, err)

	// Act
	created, err := gateway.CreateShipment(t.Context(), aggregate)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "1Z999AA10123456784", created.TrackingNumber)
	assert.True(t, created.EstimatedDelivery.Equal(estimated))
}

func Test_HTTPGateway_CreateShipment_EmptyTrackingNumber(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"tracking_number": ""})
	}))
	defer server.Close()

	gateway, err := carrier.NewHTTPGateway(server.URL, "")
	require.NoError(t, err)
	aggregate, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), "ups", "")
	require.NoError(t, err)

	// Act
	_, err = gateway.CreateShipment(t.Context(), aggregate)

	// Assert
	assert.ErrorContains(t, err, "empty tracking number")
}

func Test_HTTPGateway_TrackShipment(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/shipments/1Z999/events", r.URL.Path)

		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"status": "in_transit", "description": "departed facility", "location": "Louisville, KY", "occurred_at": time.Now().UTC()},
			{"status": "out_for_delivery", "description": "on vehicle", "location": "Austin, TX", "occurred_at": time.Now().UTC()},
		})
	}))
	defer server.Close()

	gateway, err := carrier.NewHTTPGateway(server.URL, "")
	require.NoError(t, err)

	// Act
	events, err := gateway.TrackShipment(t.Context(), confirmedShipment(t, "1Z999"))

	// Assert
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "in_transit", events[0].Status)
	assert.Equal(t, "Austin, TX", events[1].Location)
}

func Test_HTTPGateway_CancelShipment_Declined(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/shipments/1Z999/cancel", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"cancelled": false})
	}))
	defer server.Close()

	gateway, err := carrier.NewHTTPGateway(server.URL, "")
	require.NoError(t, err)

	// Act
	accepted, err := gateway.CancelShipment(t.Context(), confirmedShipment(t, "1Z999"))

	// Assert
	require.NoError(t, err)
	assert.False(t, accepted)
}

func Test_HTTPGateway_ServerError(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	gateway, err := carrier.NewHTTPGateway(server.URL, "")
	require.NoError(t, err)

	// Act
	_, err = gateway.TrackShipment(t.Context(), confirmedShipment(t, "1Z999"))

	// Assert
	assert.ErrorContains(t, err, "status 503")
}

func Test_HTTPGateway_TrackShipment_NoTrackingNumber(t *testing.T) {
	// Arrange
	gateway, err := carrier.NewHTTPGateway("http://carrier.internal", "")
	require.NoError(t, err)
	aggregate, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), "ups", "")
	require.NoError(t, err)

	// Act
	_, err = gateway.TrackShipment(t.Context(), aggregate)

	// Assert
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
