package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"ordering/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance with the API, health, metrics and docs routes.
func NewRouter(ctx context.Context, server *Server, m *metrics.Metrics) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(server.logger)
	e.Use(middleware.Recover())
	e.Use(Metrics(m))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validator)
	api.GET("/cart", server.GetCart)
	api.DELETE("/cart", server.ClearCart)
	api.POST("/cart/items", server.AddCartItem)
	api.PUT("/cart/items/:productId", server.UpdateCartItem)
	api.DELETE("/cart/items/:productId", server.RemoveCartItem)
	api.POST("/checkout", server.Checkout)
	api.GET("/orders", server.ListOrders)
	api.GET("/orders/:orderId", server.GetOrder)
	api.GET("/orders/:orderId/events", server.GetOrderEvents)
	api.POST("/orders/:orderId/actions/:action", server.TransitionOrder)
	api.POST("/orders/:orderId/discrepancies", server.ReportDiscrepancy)

	return e, nil
}

// Metrics records request count and latency per route template.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			m.HTTPRequests.WithLabelValues(method, route, status).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
