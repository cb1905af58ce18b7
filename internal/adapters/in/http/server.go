// Package http exposes the ordering use cases over a JSON API.
//
//	@title			Ordering API
//	@version		1.0
//	@description	Carts, checkout and the order lifecycle of the B2B ordering service.
//	@BasePath		/api/v1
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handler is the shape shared by the command and query handlers.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

type ClearCartHandler interface {
	Handle(ctx context.Context, cmd commands.ClearCartCommand) error
}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	GetCart           Handler[queries.GetCartQuery, *cart.Cart]
	AddCartItem       Handler[commands.AddCartItemCommand, *cart.Cart]
	UpdateCartItem    Handler[commands.UpdateCartItemQuantityCommand, *cart.Cart]
	RemoveCartItem    Handler[commands.RemoveCartItemCommand, *cart.Cart]
	ClearCart         ClearCartHandler
	Checkout          Handler[commands.CheckoutCommand, commands.CheckoutResult]
	ListOrders        Handler[queries.ListOrdersQuery, []queries.OrderSummary]
	GetOrder          Handler[queries.GetOrderQuery, *order.Order]
	GetOrderEvents    Handler[queries.GetOrderEventsQuery, []*event.Event]
	TransitionOrder   Handler[commands.TransitionOrderCommand, *order.Order]
	ReportDiscrepancy Handler[commands.ReportDiscrepancyCommand, commands.ReportDiscrepancyResult]
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// GetCart handles GET /api/v1/cart.
//
//	@Summary	Current cart with totals
//	@Tags		cart
//	@Produce	json
//	@Param		X-Customer-ID	header		string	true	"Customer id"
//	@Success	200				{object}	Cart
//	@Failure	default			{object}	Error
//	@Router		/cart [get]
func (s *Server) GetCart(c echo.Context) error {
	customerID, err := customerFrom(c)
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewGetCartQuery(customerID)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.handlers.GetCart.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toCart(result))
}

// AddCartItem handles POST /api/v1/cart/items.
//
//	@Summary	Add a product to the cart
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		X-Customer-ID	header		string				true	"Customer id"
//	@Param		item			body		AddCartItemRequest	true	"Product snapshot and quantity"
//	@Success	200				{object}	Cart
//	@Failure	default			{object}	Error
//	@Router		/cart/items [post]
func (s *Server) AddCartItem(c echo.Context) error {
	customerID, err := customerFrom(c)
	if err != nil {
		return s.respondError(c, err)
	}

	var req AddCartItemRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	product, err := productFrom(req)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewAddCartItemCommand(customerID, product, req.Quantity)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.handlers.AddCartItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toCart(result))
}

// UpdateCartItem handles PUT /api/v1/cart/items/{productId}. Quantity 0 removes the line.
//
//	@Summary	Change the quantity of a cart line
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		X-Customer-ID	header		string					true	"Customer id"
//	@Param		productId		path		string					true	"Product id"	format(uuid)
//	@Param		quantity		body		UpdateCartItemRequest	true	"New quantity"
//	@Success	200				{object}	Cart
//	@Failure	default			{object}	Error
//	@Router		/cart/items/{productId} [put]
func (s *Server) UpdateCartItem(c echo.Context) error {
	customerID, err := customerFrom(c)
	if err != nil {
		return s.respondError(c, err)
	}

	productID, err := pathID(c, "productId")
	if err != nil {
		return s.respondError(c, err)
	}

	var req UpdateCartItemRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewUpdateCartItemQuantityCommand(customerID, productID, req.Quantity)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.handlers.UpdateCartItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toCart(result))
}

// RemoveCartItem handles DELETE /api/v1/cart/items/{productId}.
//
//	@Summary	Remove a product from the cart
//	@Tags		cart
//	@Produce	json
//	@Param		X-Customer-ID	header		string	true	"Customer id"
//	@Param		productId		path		string	true	"Product id"	format(uuid)
//	@Success	200				{object}	Cart
//	@Failure	default			{object}	Error
//	@Router		/cart/items/{productId} [delete]
func (s *Server) RemoveCartItem(c echo.Context) error {
	customerID, err := customerFrom(c)
	if err != nil {
		return s.respondError(c, err)
	}

	productID, err := pathID(c, "productId")
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewRemoveCartItemCommand(customerID, productID)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.handlers.RemoveCartItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toCart(result))
}

// ClearCart handles DELETE /api/v1/cart.
//
//	@Summary	Empty the cart
//	@Tags		cart
//	@Param		X-Customer-ID	header	string	true	"Customer id"
//	@Success	204
//	@Failure	default	{object}	Error
//	@Router		/cart [delete]
func (s *Server) ClearCart(c echo.Context) error {
	customerID, err := customerFrom(c)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewClearCartCommand(customerID)
	if err != nil {
		return s.respondError(c, err)
	}

	if err = s.handlers.ClearCart.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Checkout handles POST /api/v1/checkout.
//
//	@Summary	Turn the cart into one order per supplier
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		X-Customer-ID	header		string			true	"Customer id"
//	@Param		Idempotency-Key	header		string			false	"Client generated request key"
//	@Param		checkout		body		CheckoutRequest	true	"Delivery data"
//	@Success	201				{object}	CheckoutResponse
//	@Failure	default			{object}	Error
//	@Router		/checkout [post]
func (s *Server) Checkout(c echo.Context) error {
	customerID, err := customerFrom(c)
	if err != nil {
		return s.respondError(c, err)
	}

	var req CheckoutRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	var desired time.Time
	if req.DesiredDeliveryDate != "" {
		desired, err = time.Parse(dateLayout, req.DesiredDeliveryDate)
		if err != nil {
			return s.respondError(c, errs.NewValueIsInvalidErrorWithCause("desired delivery date", err))
		}
	}

	cmd, err := commands.NewCheckoutCommand(
		customerID,
		req.DeliveryAddress,
		desired,
		c.Request().Header.Get(HeaderIdempotencyKey),
	)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.handlers.Checkout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, toCheckoutResponse(result))
}

// ListOrders handles GET /api/v1/orders.
//
//	@Summary	Orders placed by the customer or received by the supplier
//	@Tags		orders
//	@Produce	json
//	@Param		X-Customer-ID	header		string		false	"Customer id"
//	@Param		X-Supplier-ID	header		string		false	"Supplier id"
//	@Param		status			query		[]string	false	"Status filter"	collectionFormat(multi)
//	@Param		limit			query		int			false	"Page size"
//	@Param		offset			query		int			false	"Page offset"
//	@Success	200				{array}		OrderSummary
//	@Failure	default			{object}	Error
//	@Router		/orders [get]
func (s *Server) ListOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.respondError(c, err)
	}

	params, err := listOrdersParamsFrom(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err.Error())
	}

	var rawStatuses []string
	if params.Status != nil {
		rawStatuses = *params.Status
	}
	var limit, offset int
	if params.Limit != nil {
		limit = *params.Limit
	}
	if params.Offset != nil {
		offset = *params.Offset
	}

	statuses := make([]order.Status, 0, len(rawStatuses))
	for _, raw := range rawStatuses {
		status, parseErr := order.ParseStatus(raw)
		if parseErr != nil {
			return s.respondError(c, parseErr)
		}
		statuses = append(statuses, status)
	}

	query, err := queries.NewListOrdersQuery(actor, statuses, limit, offset)
	if err != nil {
		return s.respondError(c, err)
	}

	summaries, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	response := make([]OrderSummary, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, toOrderSummary(summary))
	}

	return c.JSON(http.StatusOK, response)
}

// ListOrdersParams holds the optional query parameters of GET /api/v1/orders.
type ListOrdersParams struct {
	Status *[]string
	Limit  *int
	Offset *int
}

// listOrdersParamsFrom binds optional query parameters; the runtime expects
// a pointer to a nil pointer for every parameter that may be absent.
func listOrdersParamsFrom(c echo.Context) (ListOrdersParams, error) {
	var params ListOrdersParams
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &params.Status); err != nil {
		return params, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &params.Limit); err != nil {
		return params, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", c.QueryParams(), &params.Offset); err != nil {
		return params, err
	}
	return params, nil
}

// GetOrder handles GET /api/v1/orders/{orderId}.
//
//	@Summary	Order details, visible to its customer and supplier
//	@Tags		orders
//	@Produce	json
//	@Param		X-Customer-ID	header		string	false	"Customer id"
//	@Param		X-Supplier-ID	header		string	false	"Supplier id"
//	@Param		orderId			path		string	true	"Order id"	format(uuid)
//	@Success	200				{object}	Order
//	@Failure	default			{object}	Error
//	@Router		/orders/{orderId} [get]
func (s *Server) GetOrder(c echo.Context) error {
	actor, orderID, err := s.orderRequest(c)
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrder(result))
}

// GetOrderEvents handles GET /api/v1/orders/{orderId}/events.
//
//	@Summary	Audit trail of an order
//	@Tags		orders
//	@Produce	json
//	@Param		X-Customer-ID	header		string	false	"Customer id"
//	@Param		X-Supplier-ID	header		string	false	"Supplier id"
//	@Param		orderId			path		string	true	"Order id"	format(uuid)
//	@Success	200				{array}		Event
//	@Failure	default			{object}	Error
//	@Router		/orders/{orderId}/events [get]
func (s *Server) GetOrderEvents(c echo.Context) error {
	actor, orderID, err := s.orderRequest(c)
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewGetOrderEventsQuery(orderID, actor)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.handlers.GetOrderEvents.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	response := make([]Event, 0, len(result))
	for _, e := range result {
		response = append(response, toEvent(e))
	}

	return c.JSON(http.StatusOK, response)
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/actions/{action}.
//
//	@Summary	Run a lifecycle action on an order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		X-Customer-ID	header		string				false	"Customer id"
//	@Param		X-Supplier-ID	header		string				false	"Supplier id"
//	@Param		orderId			path		string				true	"Order id"	format(uuid)
//	@Param		action			path		string				true	"Action"	Enums(confirm, reject, await-payment, upload-payment-proof, confirm-payment, reject-payment-proof, await-shipment, ship, deliver, close, cancel)
//	@Param		details			body		TransitionRequest	false	"Action data"
//	@Success	200				{object}	Order
//	@Failure	default			{object}	Error
//	@Router		/orders/{orderId}/actions/{action} [post]
func (s *Server) TransitionOrder(c echo.Context) error {
	actor, orderID, err := s.orderRequest(c)
	if err != nil {
		return s.respondError(c, err)
	}

	var req TransitionRequest
	if c.Request().ContentLength != 0 {
		if err = c.Bind(&req); err != nil {
			return writeError(c, http.StatusBadRequest, "Invalid request body")
		}
	}

	details := commands.TransitionDetails{
		Reason:         req.Reason,
		Reference:      req.Reference,
		TrackingNumber: req.TrackingNumber,
	}
	if len(req.Received) > 0 {
		details.Received = make(map[kernel.UUID]int, len(req.Received))
		for _, r := range req.Received {
			itemID, idErr := uuidFrom("orderItemId", r.OrderItemID)
			if idErr != nil {
				return s.respondError(c, idErr)
			}
			details.Received[itemID] = r.Quantity
		}
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, services.Action(c.Param("action")), details)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.handlers.TransitionOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrder(result))
}

// ReportDiscrepancy handles POST /api/v1/orders/{orderId}/discrepancies.
//
//	@Summary	Report received quantities that differ from the order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		X-Customer-ID	header		string				true	"Customer id"
//	@Param		orderId			path		string				true	"Order id"	format(uuid)
//	@Param		discrepancy		body		DiscrepancyRequest	true	"Received quantities"
//	@Success	201				{object}	DiscrepancyResponse
//	@Failure	default			{object}	Error
//	@Router		/orders/{orderId}/discrepancies [post]
func (s *Server) ReportDiscrepancy(c echo.Context) error {
	actor, orderID, err := s.orderRequest(c)
	if err != nil {
		return s.respondError(c, err)
	}

	var req DiscrepancyRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	reports := make([]order.DiscrepancyReport, 0, len(req.Items))
	for _, line := range req.Items {
		itemID, idErr := uuidFrom("orderItemId", line.OrderItemID)
		if idErr != nil {
			return s.respondError(c, idErr)
		}
		reports = append(reports, order.DiscrepancyReport{OrderItemID: itemID, ActualQuantity: line.ActualQuantity})
	}

	cmd, err := commands.NewReportDiscrepancyCommand(orderID, actor, reports, req.Notes)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.handlers.ReportDiscrepancy.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, DiscrepancyResponse{
		StatusChanged: result.StatusChanged,
		Order:         toOrder(result.Order),
		Discrepancy:   toDiscrepancy(result.Discrepancy),
	})
}

func (s *Server) orderRequest(c echo.Context) (services.Actor, kernel.UUID, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return services.Actor{}, kernel.UUID{}, err
	}

	orderID, err := pathID(c, "orderId")
	if err != nil {
		return services.Actor{}, kernel.UUID{}, err
	}

	return actor, orderID, nil
}

// pathID binds a uuid path parameter in the simple style.
func pathID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return uuidFrom(name, id)
}

func uuidFrom(name string, id openapi_types.UUID) (kernel.UUID, error) {
	parsed, err := kernel.UUIDFromString(id.String())
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parsed, nil
}

func productFrom(req AddCartItemRequest) (cart.Product, error) {
	productID, productErr := uuidFrom("productId", req.ProductID)
	supplierID, supplierErr := uuidFrom("supplierId", req.SupplierID)
	price, priceErr := kernel.MoneyFromString(req.UnitPrice)
	vat, vatErr := kernel.VatRateFromString(req.VatRate)

	if err := errors.Join(productErr, supplierErr, priceErr, vatErr); err != nil {
		return cart.Product{}, err
	}

	return cart.Product{
		ID:         productID,
		SupplierID: supplierID,
		Name:       req.ProductName,
		Sku:        req.Sku,
		UnitPrice:  price,
		VatRate:    vat,
	}, nil
}
