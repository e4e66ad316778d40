// Package http exposes the engine's operations as a JSON API on echo.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/metrics"
	"fulfillment/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         commands.CreateOrderCommandHandler
	advanceOrderStatusHandler  commands.AdvanceOrderStatusCommandHandler
	cancelOrderHandler         commands.CancelOrderCommandHandler
	proposeAssignmentHandler   commands.ProposeAssignmentCommandHandler
	respondToAssignmentHandler commands.RespondToAssignmentCommandHandler
	reconcileHandler           commands.ReconcileSettlementsCommandHandler
	markPaymentPaidHandler     commands.MarkPaymentPaidCommandHandler

	// Query handlers
	getActiveOrdersHandler       queries.GetActiveOrdersQueryHandler
	getPendingAssignmentsHandler queries.GetPendingAssignmentsQueryHandler
	getSettlementSummaryHandler  queries.GetShopSettlementSummaryQueryHandler

	metrics *metrics.Metrics
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	advanceOrderStatusHandler commands.AdvanceOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	proposeAssignmentHandler commands.ProposeAssignmentCommandHandler,
	respondToAssignmentHandler commands.RespondToAssignmentCommandHandler,
	reconcileHandler commands.ReconcileSettlementsCommandHandler,
	markPaymentPaidHandler commands.MarkPaymentPaidCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getPendingAssignmentsHandler queries.GetPendingAssignmentsQueryHandler,
	getSettlementSummaryHandler queries.GetShopSettlementSummaryQueryHandler,
	m *metrics.Metrics,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		advanceOrderStatusHandler:    advanceOrderStatusHandler,
		cancelOrderHandler:           cancelOrderHandler,
		proposeAssignmentHandler:     proposeAssignmentHandler,
		respondToAssignmentHandler:   respondToAssignmentHandler,
		reconcileHandler:             reconcileHandler,
		markPaymentPaidHandler:       markPaymentPaidHandler,
		getActiveOrdersHandler:       getActiveOrdersHandler,
		getPendingAssignmentsHandler: getPendingAssignmentsHandler,
		getSettlementSummaryHandler:  getSettlementSummaryHandler,
		metrics:                      m,
	}
}

// RegisterRoutes attaches every API route to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/status", s.AdvanceOrderStatus)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/assignments", s.ProposeAssignment)
	api.POST("/assignments/:id/response", s.RespondToAssignment)
	api.POST("/settlements/reconcile", s.ReconcileSettlements)
	api.POST("/payments/:id/paid", s.MarkPaymentPaid)

	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/assignments/pending", s.GetPendingAssignments)
	api.GET("/settlements/summary", s.GetSettlementSummary)
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]order.Item, 0, len(body.Items))
	for _, line := range body.Items {
		unitPrice, err := parseMoney(line.UnitPrice)
		if err != nil {
			return badRequest(ctx, "Invalid unit price: "+line.UnitPrice)
		}
		item, err := order.NewItem(line.ProductName, line.Quantity, unitPrice)
		if err != nil {
			return badRequest(ctx, "Invalid order item: "+err.Error())
		}
		items = append(items, item)
	}

	totalAmount, err := parseMoney(body.TotalAmount)
	if err != nil {
		return badRequest(ctx, "Invalid total amount: "+body.TotalAmount)
	}
	deliveryCharge, err := parseMoney(body.DeliveryCharge)
	if err != nil {
		return badRequest(ctx, "Invalid delivery charge: "+body.DeliveryCharge)
	}
	commission, err := parseMoney(body.Commission)
	if err != nil {
		return badRequest(ctx, "Invalid commission: "+body.Commission)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		body.CustomerName, body.CustomerPhone, body.CustomerAddress, body.ShopName,
		items,
		totalAmount, deliveryCharge, commission,
		body.PaymentMethod,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: orderID.Bytes()})
}

// AdvanceOrderStatus handles POST /api/v1/orders/:id/status - moves an
// order along its lifecycle.
func (s *Server) AdvanceOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body StatusChange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.ToStatus(body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+body.Status)
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, target)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.advanceOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body Cancellation
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, body.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ProposeAssignment handles POST /api/v1/orders/:id/assignments - offers
// the order to a delivery boy.
func (s *Server) ProposeAssignment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body NewAssignment
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	deliveryBoyID, err := kernel.UUIDFromBytes(body.DeliveryBoyID[:])
	if err != nil {
		return badRequest(ctx, "Invalid delivery boy id")
	}

	cmd, err := commands.NewProposeAssignmentCommand(orderID, deliveryBoyID, body.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	s.metrics.AssignmentProposalsTotal.Inc()
	if err := s.proposeAssignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, commands.ErrOrderNoLongerAvailable) {
			s.metrics.AssignmentConflictsTotal.Inc()
		}
		var compensationErr *commands.CompensationFailedError
		if errors.As(err, &compensationErr) {
			s.metrics.CompensationFailuresTotal.Inc()
		}
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// RespondToAssignment handles POST /api/v1/assignments/:id/response.
func (s *Server) RespondToAssignment(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid assignment id")
	}

	var body AssignmentResponse
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	decision, err := assignment.ToStatus(body.Decision)
	if err != nil {
		return badRequest(ctx, "Invalid decision: "+body.Decision)
	}

	cmd, err := commands.NewRespondToAssignmentCommand(assignmentID, decision)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.respondToAssignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReconcileSettlements handles POST /api/v1/settlements/reconcile - runs
// one settlement pass over delivered orders.
func (s *Server) ReconcileSettlements(ctx echo.Context) error {
	cmd := commands.NewReconcileSettlementsCommand()

	created, err := s.reconcileHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.metrics.SettlementObligationsTotal.Add(float64(created))
	return ctx.JSON(http.StatusOK, ReconciliationResult{Created: created})
}

// MarkPaymentPaid handles POST /api/v1/payments/:id/paid.
func (s *Server) MarkPaymentPaid(ctx echo.Context) error {
	paymentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid payment id")
	}

	var body PaymentSettlement
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkPaymentPaidCommand(paymentID, body.PaidBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.markPaymentPaidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]ActiveOrder, len(orders))
	for i, o := range orders {
		row := ActiveOrder{
			ID:              o.ID.Bytes(),
			CustomerName:    o.CustomerName,
			CustomerPhone:   o.CustomerPhone,
			CustomerAddress: o.CustomerAddress,
			ShopName:        o.ShopName,
			TotalAmount:     o.TotalAmount,
			PaymentStatus:   o.PaymentStatus,
			PaymentMethod:   o.PaymentMethod,
			Status:          o.Status,
			AssignedAt:      o.AssignedAt,
			PickedUpAt:      o.PickedUpAt,
			CreatedAt:       o.CreatedAt,
		}
		if o.DeliveryBoyID != nil {
			boyID := o.DeliveryBoyID.Bytes()
			row.DeliveryBoyID = &boyID
		}
		response[i] = row
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPendingAssignments handles GET /api/v1/assignments/pending.
func (s *Server) GetPendingAssignments(ctx echo.Context) error {
	query := queries.NewGetPendingAssignmentsQuery()

	proposals, err := s.getPendingAssignmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]PendingAssignment, len(proposals))
	for i, p := range proposals {
		response[i] = PendingAssignment{
			ID:              p.ID.Bytes(),
			OrderID:         p.OrderID.Bytes(),
			DeliveryBoyID:   p.DeliveryBoyID.Bytes(),
			Notes:           p.Notes,
			AssignedAt:      p.AssignedAt,
			CustomerName:    p.CustomerName,
			CustomerAddress: p.CustomerAddress,
			ShopName:        p.ShopName,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetSettlementSummary handles GET /api/v1/settlements/summary.
func (s *Server) GetSettlementSummary(ctx echo.Context) error {
	query := queries.NewGetShopSettlementSummaryQuery()

	summaries, err := s.getSettlementSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]ShopSummary, len(summaries))
	for i, summary := range summaries {
		response[i] = ShopSummary{
			ShopName:              summary.ShopName,
			TotalPending:          summary.TotalPending,
			TotalPaid:             summary.TotalPaid,
			PendingCommission:     summary.PendingCommission,
			PendingDeliveryCharge: summary.PendingDeliveryCharge,
			PendingOther:          summary.PendingOther,
			PaidCommission:        summary.PaidCommission,
			PaidDeliveryCharge:    summary.PaidDeliveryCharge,
			PaidOther:             summary.PaidOther,
			PaymentCount:          summary.PaymentCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// fail translates a use case error into the matching HTTP response.
func (s *Server) fail(ctx echo.Context, err error) error {
	var compensationErr *commands.CompensationFailedError
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid):
		return respondError(ctx, http.StatusBadRequest, err)
	case errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, commands.ErrAssignmentNotFound),
		errors.Is(err, commands.ErrPaymentNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return respondError(ctx, http.StatusNotFound, err)
	case errors.Is(err, commands.ErrOrderNoLongerAvailable),
		errors.Is(err, commands.ErrDeliveryBoyNotAvailable),
		errors.Is(err, commands.ErrProposalAlreadyPending),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrTerminalState),
		errors.Is(err, assignment.ErrAlreadyResponded),
		errors.Is(err, payment.ErrAlreadySettled):
		return respondError(ctx, http.StatusConflict, err)
	case errors.As(err, &compensationErr):
		return respondError(ctx, http.StatusInternalServerError, err)
	default:
		return respondError(ctx, http.StatusInternalServerError, err)
	}
}

func respondError(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func parseMoney(s string) (kernel.Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return kernel.Money{}, err
	}
	return kernel.NewMoney(amount)
}
