package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockHandler[In, Out any] struct{ mock.Mock }

func (m *MockHandler[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	args := m.Called(ctx, in)
	var out Out
	if v := args.Get(0); v != nil {
		out = v.(Out)
	}
	return out, args.Error(1)
}

type MockClearCartHandler struct{ mock.Mock }

func (m *MockClearCartHandler) Handle(ctx context.Context, cmd commands.ClearCartCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type testAPI struct {
	echo    *echo.Echo
	metrics *metrics.Metrics

	getCart           *MockHandler[queries.GetCartQuery, *cart.Cart]
	addCartItem       *MockHandler[commands.AddCartItemCommand, *cart.Cart]
	updateCartItem    *MockHandler[commands.UpdateCartItemQuantityCommand, *cart.Cart]
	removeCartItem    *MockHandler[commands.RemoveCartItemCommand, *cart.Cart]
	clearCart         *MockClearCartHandler
	checkout          *MockHandler[commands.CheckoutCommand, commands.CheckoutResult]
	listOrders        *MockHandler[queries.ListOrdersQuery, []queries.OrderSummary]
	getOrder          *MockHandler[queries.GetOrderQuery, *order.Order]
	getOrderEvents    *MockHandler[queries.GetOrderEventsQuery, []*event.Event]
	transitionOrder   *MockHandler[commands.TransitionOrderCommand, *order.Order]
	reportDiscrepancy *MockHandler[commands.ReportDiscrepancyCommand, commands.ReportDiscrepancyResult]
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	api := &testAPI{
		metrics:           metrics.NewNop(),
		getCart:           new(MockHandler[queries.GetCartQuery, *cart.Cart]),
		addCartItem:       new(MockHandler[commands.AddCartItemCommand, *cart.Cart]),
		updateCartItem:    new(MockHandler[commands.UpdateCartItemQuantityCommand, *cart.Cart]),
		removeCartItem:    new(MockHandler[commands.RemoveCartItemCommand, *cart.Cart]),
		clearCart:         new(MockClearCartHandler),
		checkout:          new(MockHandler[commands.CheckoutCommand, commands.CheckoutResult]),
		listOrders:        new(MockHandler[queries.ListOrdersQuery, []queries.OrderSummary]),
		getOrder:          new(MockHandler[queries.GetOrderQuery, *order.Order]),
		getOrderEvents:    new(MockHandler[queries.GetOrderEventsQuery, []*event.Event]),
		transitionOrder:   new(MockHandler[commands.TransitionOrderCommand, *order.Order]),
		reportDiscrepancy: new(MockHandler[commands.ReportDiscrepancyCommand, commands.ReportDiscrepancyResult]),
	}

	server := NewServer(Handlers{
		GetCart:           api.getCart,
		AddCartItem:       api.addCartItem,
		UpdateCartItem:    api.updateCartItem,
		RemoveCartItem:    api.removeCartItem,
		ClearCart:         api.clearCart,
		Checkout:          api.checkout,
		ListOrders:        api.listOrders,
		GetOrder:          api.getOrder,
		GetOrderEvents:    api.getOrderEvents,
		TransitionOrder:   api.transitionOrder,
		ReportDiscrepancy: api.reportDiscrepancy,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	e, err := NewRouter(t.Context(), server, api.metrics)
	require.NoError(t, err)
	api.echo = e
	return api
}

func (a *testAPI) do(t *testing.T, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Error {
	t.Helper()

	var body Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func customer(id kernel.UUID) map[string]string {
	return map[string]string{HeaderCustomerID: id.String()}
}

func supplier(id kernel.UUID) map[string]string {
	return map[string]string{HeaderSupplierID: id.String()}
}

func testCart(t *testing.T, customerID kernel.UUID) *cart.Cart {
	t.Helper()

	c, err := cart.NewCart(kernel.NewUUID(), customerID)
	require.NoError(t, err)

	price, err := kernel.MoneyFromString("12.50")
	require.NoError(t, err)
	rate, err := kernel.VatRateFromString("20")
	require.NoError(t, err)

	_, err = c.AddItem(cart.Product{
		ID:         kernel.NewUUID(),
		SupplierID: kernel.NewUUID(),
		Name:       "Olive oil",
		Sku:        "OO-5L",
		UnitPrice:  price,
		VatRate:    rate,
	}, 2)
	require.NoError(t, err)
	return c
}

func testOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	price, err := kernel.MoneyFromString("5.00")
	require.NoError(t, err)
	rate, err := kernel.VatRateFromString("10")
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Tea", "", price, rate, 4)
	require.NoError(t, err)

	id := kernel.NewUUID()
	now := time.Now().UTC()
	o, err := order.RestoreOrder(order.Snapshot{
		ID:              id,
		Number:          order.NewOrderNumber(id, now),
		SupplierID:      kernel.NewUUID(),
		CustomerID:      kernel.NewUUID(),
		Status:          status,
		DeliveryAddress: "9 Harbour Lane",
		Items:           []*order.Item{item},
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	require.NoError(t, err)
	return o
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
	assert.InDelta(t, 1, testutil.ToFloat64(api.metrics.HTTPRequests.WithLabelValues("GET", "/health", "200")), 0)
}

func TestGetCart(t *testing.T) {
	t.Run("missing identity is 401", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, http.MethodGet, "/api/v1/cart", "", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, http.StatusUnauthorized, decodeError(t, rec).Code)
	})

	t.Run("supplier may not read a cart", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, http.MethodGet, "/api/v1/cart", "", supplier(kernel.NewUUID()))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		api.getCart.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("returns the cart with totals", func(t *testing.T) {
		api := newTestAPI(t)
		customerID := kernel.NewUUID()
		c := testCart(t, customerID)

		api.getCart.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetCartQuery) bool {
			return q.CustomerID().IsEqual(customerID)
		})).Return(c, nil).Once()

		rec := api.do(t, http.MethodGet, "/api/v1/cart", "", customer(customerID))

		require.Equal(t, http.StatusOK, rec.Code)
		var body Cart
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, customerID.String(), body.CustomerID)
		require.Len(t, body.Items, 1)
		assert.Equal(t, "25.00", body.TotalAmount)
		assert.Equal(t, "5.00", body.TotalVat)
		api.getCart.AssertExpectations(t)
	})
}

func TestAddCartItem(t *testing.T) {
	t.Run("body that breaks the schema is rejected before the handler", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, http.MethodPost, "/api/v1/cart/items",
			`{"productId":"`+kernel.NewUUID().String()+`","productName":"Tea"}`,
			customer(kernel.NewUUID()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		api.addCartItem.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("adds the product snapshot", func(t *testing.T) {
		api := newTestAPI(t)
		customerID := kernel.NewUUID()
		productID := kernel.NewUUID()
		supplierID := kernel.NewUUID()

		api.addCartItem.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AddCartItemCommand) bool {
			p := cmd.Product()
			return cmd.CustomerID().IsEqual(customerID) &&
				p.ID.IsEqual(productID) &&
				p.SupplierID.IsEqual(supplierID) &&
				p.UnitPrice.String() == "3.20" &&
				cmd.Quantity() == 5
		})).Return(testCart(t, customerID), nil).Once()

		body := `{"productId":"` + productID.String() + `","supplierId":"` + supplierID.String() +
			`","productName":"Rice","sku":"R-1","unitPrice":"3.2","vatRate":"10","quantity":5}`
		rec := api.do(t, http.MethodPost, "/api/v1/cart/items", body, customer(customerID))

		assert.Equal(t, http.StatusOK, rec.Code)
		api.addCartItem.AssertExpectations(t)
	})
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	t.Run("invalid product id is 400", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, http.MethodDelete, "/api/v1/cart/items/not-a-uuid", "", customer(kernel.NewUUID()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		api.removeCartItem.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("update passes the quantity", func(t *testing.T) {
		api := newTestAPI(t)
		customerID := kernel.NewUUID()
		productID := kernel.NewUUID()

		api.updateCartItem.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateCartItemQuantityCommand) bool {
			return cmd.ProductID().IsEqual(productID) && cmd.Quantity() == 0
		})).Return(testCart(t, customerID), nil).Once()

		rec := api.do(t, http.MethodPut, "/api/v1/cart/items/"+productID.String(), `{"quantity":0}`, customer(customerID))

		assert.Equal(t, http.StatusOK, rec.Code)
		api.updateCartItem.AssertExpectations(t)
	})

	t.Run("unknown product maps to 404", func(t *testing.T) {
		api := newTestAPI(t)
		productID := kernel.NewUUID()

		api.removeCartItem.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("cart item", productID)).Once()

		rec := api.do(t, http.MethodDelete, "/api/v1/cart/items/"+productID.String(), "", customer(kernel.NewUUID()))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, productID.String())
	})

	t.Run("clear returns 204", func(t *testing.T) {
		api := newTestAPI(t)
		api.clearCart.On("Handle", mock.Anything, mock.Anything).Return(nil).Once()

		rec := api.do(t, http.MethodDelete, "/api/v1/cart", "", customer(kernel.NewUUID()))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		api.clearCart.AssertExpectations(t)
	})
}

func TestCheckout(t *testing.T) {
	t.Run("forwards delivery data and idempotency key", func(t *testing.T) {
		api := newTestAPI(t)
		customerID := kernel.NewUUID()
		date := time.Now().UTC().AddDate(0, 0, 7).Format(dateLayout)
		created := testOrder(t, order.PendingConfirmation)

		api.checkout.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CheckoutCommand) bool {
			return cmd.CustomerID().IsEqual(customerID) &&
				cmd.DeliveryAddress() == "1 Quay Street" &&
				cmd.DesiredDeliveryDate().Format(dateLayout) == date &&
				cmd.IdempotencyKey() == "req-42"
		})).Return(commands.CheckoutResult{Orders: []*order.Order{created}, Count: 1}, nil).Once()

		headers := customer(customerID)
		headers[HeaderIdempotencyKey] = "req-42"
		rec := api.do(t, http.MethodPost, "/api/v1/checkout",
			`{"deliveryAddress":"1 Quay Street","desiredDeliveryDate":"`+date+`"}`, headers)

		require.Equal(t, http.StatusCreated, rec.Code)
		var body CheckoutResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Count)
		require.Len(t, body.Orders, 1)
		assert.Equal(t, "PENDING_CONFIRMATION", body.Orders[0].Status)
		assert.Equal(t, "20.00", body.Orders[0].TotalAmount)
	})

	t.Run("empty cart is 400", func(t *testing.T) {
		api := newTestAPI(t)
		api.checkout.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewInvalidOperationError("cart is empty")).Once()

		rec := api.do(t, http.MethodPost, "/api/v1/checkout", `{"deliveryAddress":"1 Quay Street"}`,
			customer(kernel.NewUUID()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "cart is empty")
	})
}

func TestListOrders(t *testing.T) {
	api := newTestAPI(t)
	supplierID := kernel.NewUUID()
	summary := queries.OrderSummary{
		ID:          kernel.NewUUID(),
		Number:      "ORD-20261019-1",
		SupplierID:  supplierID,
		CustomerID:  kernel.NewUUID(),
		Status:      order.Shipped,
		TotalAmount: kernel.ZeroMoney(),
		VatAmount:   kernel.ZeroMoney(),
		ItemCount:   2,
	}

	api.listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		statuses := q.Statuses()
		return q.Actor().Role == services.RoleSupplier &&
			q.Actor().ID.IsEqual(supplierID) &&
			len(statuses) == 2 && statuses[0] == order.Shipped && statuses[1] == order.Delivered &&
			q.Limit() == 10
	})).Return([]queries.OrderSummary{summary}, nil).Once()

	rec := api.do(t, http.MethodGet, "/api/v1/orders?status=SHIPPED&status=delivered&limit=10", "", supplier(supplierID))

	require.Equal(t, http.StatusOK, rec.Code)
	var body []OrderSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "SHIPPED", body[0].Status)
	api.listOrders.AssertExpectations(t)
}

func TestListOrders_OptionalQueryParameters(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		statuses []order.Status
		limit    int
		offset   int
	}{
		{name: "no query string", query: "", limit: queries.DefaultListLimit},
		{name: "offset only", query: "?offset=0", limit: queries.DefaultListLimit},
		{name: "limit only", query: "?limit=10", limit: 10},
		{name: "single status", query: "?status=delivered", statuses: []order.Status{order.Delivered}, limit: queries.DefaultListLimit},
		{name: "all parameters", query: "?status=CREATED&limit=5&offset=20", statuses: []order.Status{order.Created}, limit: 5, offset: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			customerID := kernel.NewUUID()

			api.listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
				return q.Actor().ID.IsEqual(customerID) &&
					len(q.Statuses()) == len(tt.statuses) &&
					(len(tt.statuses) == 0 || assert.ObjectsAreEqual(tt.statuses, q.Statuses())) &&
					q.Limit() == tt.limit &&
					q.Offset() == tt.offset
			})).Return([]queries.OrderSummary{}, nil).Once()

			rec := api.do(t, http.MethodGet, "/api/v1/orders"+tt.query, "", customer(customerID))

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.JSONEq(t, "[]", rec.Body.String())
			api.listOrders.AssertExpectations(t)
		})
	}
}

func TestListOrders_InvalidLimit(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/v1/orders?limit=abc", "", customer(kernel.NewUUID()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	api.listOrders.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestTransitionOrder_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not found", errs.NewObjectNotFoundError("order", "x"), http.StatusNotFound},
		{"access denied", errs.NewAccessDeniedError("order", "x"), http.StatusForbidden},
		{"invalid transition", errs.NewInvalidStateTransitionError(order.Closed, order.Confirmed), http.StatusConflict},
		{"version conflict", errs.NewVersionIsInvalidError("event version"), http.StatusConflict},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			api.transitionOrder.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := api.do(t, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/actions/confirm", "",
				supplier(kernel.NewUUID()))

			assert.Equal(t, tt.wantCode, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, body.Code)
			if tt.wantCode == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, "connection reset")
			}
		})
	}
}

func TestTransitionOrder(t *testing.T) {
	t.Run("ship forwards the tracking number", func(t *testing.T) {
		api := newTestAPI(t)
		o := testOrder(t, order.Shipped)

		api.transitionOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TransitionOrderCommand) bool {
			return cmd.OrderID().IsEqual(o.ID()) &&
				cmd.Action() == services.ActionShip &&
				cmd.Details().TrackingNumber == "TRK-1"
		})).Return(o, nil).Once()

		rec := api.do(t, http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/actions/ship",
			`{"trackingNumber":"TRK-1"}`, supplier(o.SupplierID()))

		require.Equal(t, http.StatusOK, rec.Code)
		var body Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "SHIPPED", body.Status)
	})

	t.Run("deliver forwards received quantities", func(t *testing.T) {
		api := newTestAPI(t)
		o := testOrder(t, order.Delivered)
		itemID := o.Items()[0].ID()

		api.transitionOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TransitionOrderCommand) bool {
			return cmd.Action() == services.ActionDeliver && cmd.Details().Received[itemID] == 3
		})).Return(o, nil).Once()

		rec := api.do(t, http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/actions/deliver",
			`{"received":[{"orderItemId":"`+itemID.String()+`","quantity":3}]}`, customer(o.CustomerID()))

		assert.Equal(t, http.StatusOK, rec.Code)
		api.transitionOrder.AssertExpectations(t)
	})

	t.Run("unknown action is rejected by the document", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/actions/teleport", "",
			supplier(kernel.NewUUID()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		api.transitionOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestReportDiscrepancy(t *testing.T) {
	api := newTestAPI(t)
	o := testOrder(t, order.Delivered)
	itemID := o.Items()[0].ID()
	d, _, err := o.ReportDiscrepancy([]order.DiscrepancyReport{{OrderItemID: itemID, ActualQuantity: 2}}, "two missing")
	require.NoError(t, err)

	api.reportDiscrepancy.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ReportDiscrepancyCommand) bool {
		reports := cmd.Reports()
		return cmd.Notes() == "two missing" && len(reports) == 1 && reports[0].ActualQuantity == 2
	})).Return(commands.ReportDiscrepancyResult{Order: o, Discrepancy: d, StatusChanged: false}, nil).Once()

	rec := api.do(t, http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/discrepancies",
		`{"notes":"two missing","items":[{"orderItemId":"`+itemID.String()+`","actualQuantity":2}]}`,
		customer(o.CustomerID()))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body DiscrepancyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.StatusChanged)
	assert.Equal(t, "10.00", body.Discrepancy.TotalAmount)
	require.Len(t, body.Discrepancy.Items, 1)
	assert.Equal(t, 2, body.Discrepancy.Items[0].DiscrepancyQuantity)
}

func TestGetOrderEvents(t *testing.T) {
	api := newTestAPI(t)
	o := testOrder(t, order.Confirmed)
	e, err := event.NewEvent(event.AggregateOrder, o.ID(), 1, event.OrderCreated, map[string]string{"number": o.Number()})
	require.NoError(t, err)

	api.getOrderEvents.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderEventsQuery) bool {
		return q.OrderID().IsEqual(o.ID()) && q.Actor().Role == services.RoleCustomer
	})).Return([]*event.Event{e}, nil).Once()

	rec := api.do(t, http.MethodGet, "/api/v1/orders/"+o.ID().String()+"/events", "", customer(o.CustomerID()))

	require.Equal(t, http.StatusOK, rec.Code)
	var body []Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, event.OrderCreated, body[0].EventType)
	assert.JSONEq(t, `{"number":"`+o.Number()+`"}`, string(body[0].Payload))
	assert.Nil(t, body[0].PublishedAt)
}

func TestActorFrom_BothHeaders(t *testing.T) {
	api := newTestAPI(t)
	headers := customer(kernel.NewUUID())
	headers[HeaderSupplierID] = kernel.NewUUID().String()

	rec := api.do(t, http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), "", headers)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	api.getOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/v1/nowhere", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decodeError(t, rec).Code)
}
