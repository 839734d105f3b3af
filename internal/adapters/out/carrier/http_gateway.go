package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var _ ports.CarrierGateway = (*HTTPGateway)(nil)

// HTTPGateway talks to a carrier's REST API. One instance serves one carrier;
// the base URL and API key come from configuration.
type HTTPGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPGateway creates a gateway for the carrier API at baseURL.
//
// Example:
//
//	gateway, err := carrier.NewHTTPGateway("https://api.ups.example.com", apiKey)
func NewHTTPGateway(baseURL string, apiKey string) (*HTTPGateway, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type createShipmentRequest struct {
	OrderID string `json:"order_id"`
	Notes   string `json:"notes,omitempty"`
}

type createShipmentResponse struct {
	TrackingNumber    string    `json:"tracking_number"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
}

type trackingEventResponse struct {
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type cancelShipmentResponse struct {
	Cancelled bool `json:"cancelled"`
}

// confirmedTrackingNumber extracts the tracking number assigned at carrier
// confirmation. A shipment still in preparation has none, and no carrier call
// can be made for it.
func confirmedTrackingNumber(aggregate *shipment.Shipment) (string, error) {
	trackingNumber := aggregate.TrackingNumber()
	if trackingNumber == nil || *trackingNumber == "" {
		return "", errs.NewValueIsRequiredError("trackingNumber")
	}
	return *trackingNumber, nil
}

// CreateShipment registers the shipment with the carrier and returns the
// tracking number and delivery estimate the carrier assigned.
func (g *HTTPGateway) CreateShipment(ctx context.Context, aggregate *shipment.Shipment) (ports.CarrierShipment, error) {
	request := createShipmentRequest{
		OrderID: aggregate.OrderID().String(),
		Notes:   aggregate.Notes(),
	}

	var response createShipmentResponse
	err := g.do(ctx, http.MethodPost, "/v1/shipments", request, &response)
	if err != nil {
		return ports.CarrierShipment{}, err
	}
	if response.TrackingNumber == "" {
		return ports.CarrierShipment{}, fmt.Errorf("carrier returned an empty tracking number")
	}

	return ports.CarrierShipment{
		TrackingNumber:    response.TrackingNumber,
		EstimatedDelivery: response.EstimatedDelivery,
	}, nil
}

// TrackShipment fetches the carrier's event history for the shipment.
func (g *HTTPGateway) TrackShipment(ctx context.Context, aggregate *shipment.Shipment) ([]ports.TrackingEvent, error) {
	trackingNumber, err := confirmedTrackingNumber(aggregate)
	if err != nil {
		return nil, err
	}

	var response []trackingEventResponse
	err = g.do(ctx, http.MethodGet, "/v1/shipments/"+trackingNumber+"/events", nil, &response)
	if err != nil {
		return nil, err
	}

	events := make([]ports.TrackingEvent, 0, len(response))
	for _, event := range response {
		events = append(events, ports.TrackingEvent{
			Status:      event.Status,
			Description: event.Description,
			Location:    event.Location,
			OccurredAt:  event.OccurredAt,
		})
	}
	return events, nil
}

// CancelShipment asks the carrier to cancel the shipment. The carrier may
// decline, for example when the parcel is already out for delivery.
func (g *HTTPGateway) CancelShipment(ctx context.Context, aggregate *shipment.Shipment) (bool, error) {
	trackingNumber, err := confirmedTrackingNumber(aggregate)
	if err != nil {
		return false, err
	}

	var response cancelShipmentResponse
	err = g.do(ctx, http.MethodPost, "/v1/shipments/"+trackingNumber+"/cancel", nil, &response)
	if err != nil {
		return false, err
	}
	return response.Cancelled, nil
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, request, response any) error {
	var body io.Reader
	if request != nil {
		jsonData, err := json.Marshal(request)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call carrier api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("carrier api returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("failed to decode carrier response: %w", err)
	}
	return nil
}
