package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Caller identity headers. The gateway in front of this service authenticates
// the caller and forwards the verified identity here.
const (
	HeaderCallerID   = "X-Caller-Id"
	HeaderCallerRole = "X-Caller-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler          commands.PlaceOrderCommandHandler
	startPreparationHandler    commands.StartPreparationCommandHandler
	markOrderPreparedHandler   commands.MarkOrderPreparedCommandHandler
	assignPartnerHandler       commands.AssignPartnerCommandHandler
	acceptOrderHandler         commands.AcceptOrderCommandHandler
	rejectOrderHandler         commands.RejectOrderCommandHandler
	reportPositionHandler      commands.ReportPositionCommandHandler
	markOrderDispatchedHandler commands.MarkOrderDispatchedCommandHandler
	markOrderDeliveredHandler  commands.MarkOrderDeliveredCommandHandler
	declineOrderHandler        commands.DeclineOrderCommandHandler

	// Query handlers
	getPositionHandler     queries.GetPositionQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	startPreparationHandler commands.StartPreparationCommandHandler,
	markOrderPreparedHandler commands.MarkOrderPreparedCommandHandler,
	assignPartnerHandler commands.AssignPartnerCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	rejectOrderHandler commands.RejectOrderCommandHandler,
	reportPositionHandler commands.ReportPositionCommandHandler,
	markOrderDispatchedHandler commands.MarkOrderDispatchedCommandHandler,
	markOrderDeliveredHandler commands.MarkOrderDeliveredCommandHandler,
	declineOrderHandler commands.DeclineOrderCommandHandler,
	getPositionHandler queries.GetPositionQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:          placeOrderHandler,
		startPreparationHandler:    startPreparationHandler,
		markOrderPreparedHandler:   markOrderPreparedHandler,
		assignPartnerHandler:       assignPartnerHandler,
		acceptOrderHandler:         acceptOrderHandler,
		rejectOrderHandler:         rejectOrderHandler,
		reportPositionHandler:      reportPositionHandler,
		markOrderDispatchedHandler: markOrderDispatchedHandler,
		markOrderDeliveredHandler:  markOrderDeliveredHandler,
		declineOrderHandler:        declineOrderHandler,
		getPositionHandler:         getPositionHandler,
		getActiveOrdersHandler:     getActiveOrdersHandler,
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.POST("/orders/:orderId/preparation", s.StartPreparation)
	api.POST("/orders/:orderId/prepared", s.MarkOrderPrepared)
	api.POST("/orders/:orderId/assignment", s.AssignPartner)
	api.POST("/orders/:orderId/acceptance", s.AcceptOrder)
	api.POST("/orders/:orderId/rejection", s.RejectOrder)
	api.POST("/orders/:orderId/position", s.ReportPosition)
	api.GET("/orders/:orderId/position", s.GetPosition)
	api.POST("/orders/:orderId/dispatch", s.MarkOrderDispatched)
	api.POST("/orders/:orderId/delivery", s.MarkOrderDelivered)
	api.POST("/orders/:orderId/decline", s.DeclineOrder)
}

// Envelope wraps every successful response body.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// Error is the response body for failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NotificationStatus reports the outcome of a best-effort push attached to a
// committed operation. notificationFailed=true never means the operation
// failed; the state change is already durable.
type NotificationStatus struct {
	NotificationFailed bool   `json:"notificationFailed"`
	NotificationError  string `json:"notificationError,omitempty"`
}

func notificationStatus(outcome commands.NotificationOutcome) NotificationStatus {
	return NotificationStatus{
		NotificationFailed: outcome.NotificationFailed,
		NotificationError:  outcome.NotificationError,
	}
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var body struct {
		ID         kernel.Ref `json:"id"`
		CustomerID kernel.Ref `json:"customerId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewPlaceOrderCommand(body.ID.ID(), body.CustomerID.ID())
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Envelope{Success: true})
}

// StartPreparation handles POST /api/v1/orders/:orderId/preparation.
func (s *Server) StartPreparation(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewStartPreparationCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.startPreparationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true})
}

// MarkOrderPrepared handles POST /api/v1/orders/:orderId/prepared.
func (s *Server) MarkOrderPrepared(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewMarkOrderPreparedCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.markOrderPreparedHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    notificationStatus(result.NotificationOutcome),
	})
}

// AssignPartner handles POST /api/v1/orders/:orderId/assignment.
func (s *Server) AssignPartner(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var body struct {
		PartnerID    kernel.Ref `json:"partnerId"`
		PartnerName  string     `json:"partnerName"`
		PartnerPhone string     `json:"partnerPhone"`
	}
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewAssignPartnerCommand(orderID, body.PartnerID.ID(),
		body.PartnerName, body.PartnerPhone)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.assignPartnerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Data: struct {
			OrderID      string `json:"orderId"`
			PartnerID    string `json:"partnerId"`
			PartnerName  string `json:"partnerName"`
			PartnerPhone string `json:"partnerPhone"`
			NotificationStatus
		}{
			OrderID:            result.OrderID,
			PartnerID:          result.PartnerID,
			PartnerName:        result.PartnerName,
			PartnerPhone:       result.PartnerPhone,
			NotificationStatus: notificationStatus(result.NotificationOutcome),
		},
	})
}

// AcceptOrder handles POST /api/v1/orders/:orderId/acceptance.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, partnerID, err := orderAndPartner(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, partnerID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true})
}

// RejectOrder handles POST /api/v1/orders/:orderId/rejection.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, partnerID, err := orderAndPartner(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, partnerID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true})
}

// ReportPosition handles POST /api/v1/orders/:orderId/position.
// Only the bound delivery partner may report; identity comes from the
// caller headers, coordinates from the body.
func (s *Server) ReportPosition(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	callerID, callerRole, err := caller(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}
	if callerRole != kernel.RoleDelivery {
		return errorResponse(ctx, errs.NewPermissionDeniedError("only delivery partners report positions"))
	}

	var body struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewReportPositionCommand(orderID, callerID, body.Latitude, body.Longitude)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.reportPositionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Data: struct {
			Timestamp time.Time `json:"timestamp"`
		}{Timestamp: result.Timestamp},
	})
}

// GetPosition handles GET /api/v1/orders/:orderId/position.
func (s *Server) GetPosition(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	callerID, callerRole, err := caller(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetPositionQuery(orderID, callerID, callerRole)
	if err != nil {
		return errorResponse(ctx, err)
	}

	position, err := s.getPositionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	data := positionResponse{
		OrderID:     position.OrderID.String(),
		HasPosition: position.HasPosition,
	}
	if position.HasPosition {
		data.Latitude = &position.Latitude
		data.Longitude = &position.Longitude
		updatedAt := position.UpdatedAt
		data.UpdatedAt = &updatedAt
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// MarkOrderDispatched handles POST /api/v1/orders/:orderId/dispatch.
func (s *Server) MarkOrderDispatched(ctx echo.Context) error {
	orderID, partnerID, err := orderAndPartner(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewMarkOrderDispatchedCommand(orderID, partnerID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.markOrderDispatchedHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true})
}

// MarkOrderDelivered handles POST /api/v1/orders/:orderId/delivery.
func (s *Server) MarkOrderDelivered(ctx echo.Context) error {
	orderID, partnerID, err := orderAndPartner(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewMarkOrderDeliveredCommand(orderID, partnerID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.markOrderDeliveredHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    notificationStatus(result.NotificationOutcome),
	})
}

// DeclineOrder handles POST /api/v1/orders/:orderId/decline.
func (s *Server) DeclineOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewDeclineOrderCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.declineOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    notificationStatus(result.NotificationOutcome),
	})
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]activeOrderResponse, len(orders))
	for i, order := range orders {
		row := activeOrderResponse{
			ID:          order.ID.String(),
			Status:      order.Status,
			HasPosition: order.HasPosition,
		}
		if order.PartnerID != nil {
			partnerID := order.PartnerID.String()
			row.PartnerID = &partnerID
			row.PartnerName = order.PartnerName
		}
		if order.HasPosition {
			latitude, longitude, updatedAt := order.Latitude, order.Longitude, order.UpdatedAt
			row.Latitude = &latitude
			row.Longitude = &longitude
			row.UpdatedAt = &updatedAt
		}
		response[i] = row
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Data: response})
}

type positionResponse struct {
	OrderID     string     `json:"orderId"`
	HasPosition bool       `json:"hasPosition"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type activeOrderResponse struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	PartnerID   *string    `json:"partnerId,omitempty"`
	PartnerName string     `json:"partnerName,omitempty"`
	HasPosition bool       `json:"hasPosition"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return orderID, nil
}

// orderAndPartner resolves the order from the path and the partner from the
// request body, which may carry either reference shape.
func orderAndPartner(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	var body struct {
		PartnerID kernel.Ref `json:"partnerId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	if err := body.PartnerID.Validate(); err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsRequiredError("partnerId")
	}

	return orderID, body.PartnerID.ID(), nil
}

func caller(ctx echo.Context) (kernel.UUID, kernel.Role, error) {
	rawID := ctx.Request().Header.Get(HeaderCallerID)
	if rawID == "" {
		return kernel.UUID{}, kernel.RoleUnknown, errs.NewValueIsRequiredError(HeaderCallerID)
	}
	callerID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.UUID{}, kernel.RoleUnknown, errs.NewValueIsInvalidErrorWithCause(HeaderCallerID, err)
	}

	callerRole, err := kernel.RoleFromString(ctx.Request().Header.Get(HeaderCallerRole))
	if err != nil {
		return kernel.UUID{}, kernel.RoleUnknown, errs.NewValueIsInvalidErrorWithCause(HeaderCallerRole, err)
	}

	return callerID, callerRole, nil
}

func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrPermissionDenied):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidState):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
