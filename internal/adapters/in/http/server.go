// Package http exposes the fulfillment use cases over a JSON REST API.
// Handlers translate wire payloads into commands and queries, and domain
// errors into HTTP status codes. No business rules live here.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

// Server wires HTTP routes to the application's command and query handlers.
type Server struct {
	placeDealerOrderHandler       commands.PlaceDealerOrderCommandHandler
	transitionOrderHandler        commands.TransitionOrderCommandHandler
	updateProductionStatusHandler commands.UpdateProductionStatusCommandHandler
	createShipmentHandler         commands.CreateShipmentCommandHandler
	updateShipmentStatusHandler   commands.UpdateShipmentStatusCommandHandler
	cancelShipmentHandler         commands.CancelShipmentCommandHandler
	addCreditHandler              commands.AddCreditCommandHandler
	updateCreditLimitHandler      commands.UpdateCreditLimitCommandHandler

	getBalanceSummaryHandler   queries.GetBalanceSummaryQueryHandler
	checkCreditHandler         queries.CheckCreditQueryHandler
	getDelayedShipmentsHandler queries.GetDelayedShipmentsQueryHandler
	trackShipmentHandler       queries.TrackShipmentQueryHandler
}

// NewServer creates the HTTP server with all use case handlers.
func NewServer(
	placeDealerOrderHandler commands.PlaceDealerOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	updateProductionStatusHandler commands.UpdateProductionStatusCommandHandler,
	createShipmentHandler commands.CreateShipmentCommandHandler,
	updateShipmentStatusHandler commands.UpdateShipmentStatusCommandHandler,
	cancelShipmentHandler commands.CancelShipmentCommandHandler,
	addCreditHandler commands.AddCreditCommandHandler,
	updateCreditLimitHandler commands.UpdateCreditLimitCommandHandler,
	getBalanceSummaryHandler queries.GetBalanceSummaryQueryHandler,
	checkCreditHandler queries.CheckCreditQueryHandler,
	getDelayedShipmentsHandler queries.GetDelayedShipmentsQueryHandler,
	trackShipmentHandler queries.TrackShipmentQueryHandler,
) *Server {
	return &Server{
		placeDealerOrderHandler:       placeDealerOrderHandler,
		transitionOrderHandler:        transitionOrderHandler,
		updateProductionStatusHandler: updateProductionStatusHandler,
		createShipmentHandler:         createShipmentHandler,
		updateShipmentStatusHandler:   updateShipmentStatusHandler,
		cancelShipmentHandler:         cancelShipmentHandler,
		addCreditHandler:              addCreditHandler,
		updateCreditLimitHandler:      updateCreditLimitHandler,
		getBalanceSummaryHandler:      getBalanceSummaryHandler,
		checkCreditHandler:            checkCreditHandler,
		getDelayedShipmentsHandler:    getDelayedShipmentsHandler,
		trackShipmentHandler:          trackShipmentHandler,
	}
}

// RegisterRoutes binds all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceDealerOrder)
	api.POST("/orders/:id/status", s.TransitionOrder)
	api.POST("/orders/:id/production", s.UpdateProductionStatus)

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments/delayed", s.GetDelayedShipments)
	api.POST("/shipments/:id/status", s.UpdateShipmentStatus)
	api.POST("/shipments/:id/cancel", s.CancelShipment)
	api.GET("/shipments/:id/tracking", s.TrackShipment)

	api.GET("/dealers/:id/balance", s.GetBalanceSummary)
	api.GET("/dealers/:id/credit-check", s.CheckCredit)
	api.POST("/dealers/:id/credits", s.AddCredit)
	api.PUT("/dealers/:id/credit-limit", s.UpdateCreditLimit)
}

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TotalsRequest carries order money amounts in minor units.
type TotalsRequest struct {
	Subtotal int64  `json:"subtotal"`
	Tax      int64  `json:"tax"`
	Shipping int64  `json:"shipping"`
	Discount int64  `json:"discount"`
	Currency string `json:"currency"`
}

// PlaceDealerOrderRequest is the body of POST /api/v1/orders.
type PlaceDealerOrderRequest struct {
	Number   string        `json:"number"`
	UserID   string        `json:"user_id"`
	DealerID string        `json:"dealer_id"`
	Totals   TotalsRequest `json:"totals"`
	Actor    string        `json:"actor"`
}

// PlaceDealerOrderResponse returns the identifier assigned to the new order.
type PlaceDealerOrderResponse struct {
	OrderID string `json:"order_id"`
}

// PlaceDealerOrder handles POST /api/v1/orders. It debits the dealer's credit
// ledger and creates the order atomically.
func (s *Server) PlaceDealerOrder(ctx echo.Context) error {
	var request PlaceDealerOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	userID, err := kernel.UUIDFromString(request.UserID)
	if err != nil {
		return badRequest(ctx, "invalid user_id")
	}
	dealerID, err := kernel.UUIDFromString(request.DealerID)
	if err != nil {
		return badRequest(ctx, "invalid dealer_id")
	}
	totals, err := order.NewTotals(
		request.Totals.Subtotal,
		request.Totals.Tax,
		request.Totals.Shipping,
		request.Totals.Discount,
		request.Totals.Currency,
	)
	if err != nil {
		return badRequest(ctx, "invalid totals: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceDealerOrderCommand(
		orderID, request.Number, userID, dealerID, totals, request.Actor,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.placeDealerOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlaceDealerOrderResponse{OrderID: orderID.String()})
}

// TransitionRequest is the body for order and shipment status changes.
type TransitionRequest struct {
	Target string `json:"target"`
	Note   string `json:"note,omitempty"`
	Actor  string `json:"actor"`
}

// TransitionOrder handles POST /api/v1/orders/:id/status.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var request TransitionRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(request.Target)
	if err != nil {
		return badRequest(ctx, "unknown order status: "+request.Target)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, request.Actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateProductionStatus handles POST /api/v1/orders/:id/production.
func (s *Server) UpdateProductionStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var request TransitionRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.ProductionStatusFromString(request.Target)
	if err != nil {
		return badRequest(ctx, "unknown production status: "+request.Target)
	}

	cmd, err := commands.NewUpdateProductionStatusCommand(orderID, target, request.Actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.updateProductionStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateShipmentRequest is the body of POST /api/v1/shipments.
type CreateShipmentRequest struct {
	OrderID   string `json:"order_id"`
	CarrierID string `json:"carrier_id"`
	Notes     string `json:"notes,omitempty"`
	Actor     string `json:"actor"`
}

// CreateShipmentResponse returns the new shipment and its tracking number.
type CreateShipmentResponse struct {
	ShipmentID     string `json:"shipment_id"`
	TrackingNumber string `json:"tracking_number"`
}

// CreateShipment handles POST /api/v1/shipments. It registers the shipment
// with the carrier and persists the confirmed tracking number.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var request CreateShipmentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid order_id")
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(
		shipmentID, orderID, request.CarrierID, request.Notes, request.Actor,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	trackingNumber, err := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateShipmentResponse{
		ShipmentID:     shipmentID.String(),
		TrackingNumber: trackingNumber,
	})
}

// UpdateShipmentStatus handles POST /api/v1/shipments/:id/status.
func (s *Server) UpdateShipmentStatus(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid shipment id")
	}

	var request TransitionRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := shipment.StatusFromString(request.Target)
	if err != nil {
		return badRequest(ctx, "unknown shipment status: "+request.Target)
	}

	cmd, err := commands.NewUpdateShipmentStatusCommand(shipmentID, target, request.Note, request.Actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.updateShipmentStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelShipmentRequest is the body of POST /api/v1/shipments/:id/cancel.
type CancelShipmentRequest struct {
	Reason string `json:"reason"`
	Actor  string `json:"actor"`
}

// CancelShipment handles POST /api/v1/shipments/:id/cancel.
func (s *Server) CancelShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid shipment id")
	}

	var request CancelShipmentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelShipmentCommand(shipmentID, request.Reason, request.Actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TrackingEventResponse is one carrier event in the tracking history.
type TrackingEventResponse struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}

// TrackShipment handles GET /api/v1/shipments/:id/tracking.
func (s *Server) TrackShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid shipment id")
	}

	query, err := queries.NewTrackShipmentQuery(shipmentID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	events, err := s.trackShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]TrackingEventResponse, len(events))
	for i, event := range events {
		response[i] = TrackingEventResponse{
			Status:      event.Status,
			Description: event.Description,
			Location:    event.Location,
			OccurredAt:  event.OccurredAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// DelayedShipmentResponse is one overdue shipment in the delayed list.
type DelayedShipmentResponse struct {
	ShipmentID        string `json:"shipment_id"`
	OrderID           string `json:"order_id"`
	CarrierID         string `json:"carrier_id"`
	TrackingNumber    string `json:"tracking_number,omitempty"`
	Status            string `json:"status"`
	EstimatedDelivery string `json:"estimated_delivery"`
}

// GetDelayedShipments handles GET /api/v1/shipments/delayed.
func (s *Server) GetDelayedShipments(ctx echo.Context) error {
	query := queries.NewGetDelayedShipmentsQuery()

	shipments, err := s.getDelayedShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]DelayedShipmentResponse, len(shipments))
	for i, delayed := range shipments {
		response[i] = DelayedShipmentResponse{
			ShipmentID:        delayed.ID.String(),
			OrderID:           delayed.OrderID.String(),
			CarrierID:         delayed.CarrierID,
			TrackingNumber:    delayed.TrackingNumber,
			Status:            delayed.Status,
			EstimatedDelivery: delayed.EstimatedDelivery.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// BalanceSummaryResponse is the body of GET /api/v1/dealers/:id/balance.
type BalanceSummaryResponse struct {
	DealerID          string `json:"dealer_id"`
	Balance           int64  `json:"balance"`
	Available         int64  `json:"available"`
	Debt              int64  `json:"debt"`
	CreditLimit       int64  `json:"credit_limit"`
	Currency          string `json:"currency"`
	Status            string `json:"status"`
	LastTransactionAt string `json:"last_transaction_at,omitempty"`
}

// GetBalanceSummary handles GET /api/v1/dealers/:id/balance.
func (s *Server) GetBalanceSummary(ctx echo.Context) error {
	dealerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid dealer id")
	}

	query, err := queries.NewGetBalanceSummaryQuery(dealerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	summary, err := s.getBalanceSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := BalanceSummaryResponse{
		DealerID:    summary.DealerID.String(),
		Balance:     summary.Balance,
		Available:   summary.Available,
		Debt:        summary.Debt,
		CreditLimit: summary.CreditLimit,
		Currency:    summary.Currency,
		Status:      string(summary.Status),
	}
	if summary.LastTransactionAt != nil {
		response.LastTransactionAt = summary.LastTransactionAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}

	return ctx.JSON(http.StatusOK, response)
}

// CheckCreditResponse is the body of GET /api/v1/dealers/:id/credit-check.
type CheckCreditResponse struct {
	OK        bool  `json:"ok"`
	Available int64 `json:"available"`
	Shortfall int64 `json:"shortfall"`
}

// CheckCredit handles GET /api/v1/dealers/:id/credit-check?amount=N. The
// answer is advisory; placing the order re-checks under the row lock.
func (s *Server) CheckCredit(ctx echo.Context) error {
	dealerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid dealer id")
	}

	var amount int64
	if err := echo.QueryParamsBinder(ctx).Int64("amount", &amount).BindError(); err != nil {
		return badRequest(ctx, "invalid amount")
	}

	query, err := queries.NewCheckCreditQuery(dealerID, amount)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.checkCreditHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CheckCreditResponse{
		OK:        result.OK,
		Available: result.Available,
		Shortfall: result.Shortfall,
	})
}

// AddCreditRequest is the body of POST /api/v1/dealers/:id/credits.
type AddCreditRequest struct {
	Amount int64  `json:"amount"`
	Note   string `json:"note,omitempty"`
}

// AddCredit handles POST /api/v1/dealers/:id/credits.
func (s *Server) AddCredit(ctx echo.Context) error {
	dealerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid dealer id")
	}

	var request AddCreditRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewAddCreditCommand(dealerID, request.Amount, request.Note)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.addCreditHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCreditLimitRequest is the body of PUT /api/v1/dealers/:id/credit-limit.
type UpdateCreditLimitRequest struct {
	NewLimit int64 `json:"new_limit"`
}

// UpdateCreditLimit handles PUT /api/v1/dealers/:id/credit-limit.
func (s *Server) UpdateCreditLimit(ctx echo.Context) error {
	dealerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid dealer id")
	}

	var request UpdateCreditLimitRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateCreditLimitCommand(dealerID, request.NewLimit)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.updateCreditLimitHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps use case and domain errors onto HTTP statuses.
func respondError(ctx echo.Context, err error) error {
	code := statusCodeFor(err)
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound

	case errors.Is(err, ledger.ErrCreditLimitExceeded):
		return http.StatusPaymentRequired

	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, commands.ErrShipmentAlreadyExists),
		errors.Is(err, commands.ErrOrderNotPaid),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyTerminal),
		errors.Is(err, order.ErrNotYetPaid),
		errors.Is(err, shipment.ErrInvalidTransition),
		errors.Is(err, shipment.ErrAlreadyDelivered):
		return http.StatusConflict

	case errors.Is(err, commands.ErrGatewayTimeout):
		return http.StatusGatewayTimeout

	case errors.Is(err, commands.ErrCarrierUnavailable),
		errors.Is(err, commands.ErrCancellationFailed),
		errors.Is(err, queries.ErrTrackingUnavailable):
		return http.StatusBadGateway

	case errors.Is(err, commands.ErrUnsupportedCarrier),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, ledger.ErrInvalidAmount):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
