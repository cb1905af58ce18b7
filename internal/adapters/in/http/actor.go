package http

import (
	"net/http"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Authentication happens upstream; the gateway forwards the caller identity in
// one of these headers.
const (
	HeaderCustomerID     = "X-Customer-ID"
	HeaderSupplierID     = "X-Supplier-ID"
	HeaderIdempotencyKey = "Idempotency-Key"
)

var errMissingActor = echo.NewHTTPError(http.StatusUnauthorized, "caller identity header is missing")

// actorFrom reads the caller. Exactly one identity header must be present.
func actorFrom(c echo.Context) (services.Actor, error) {
	customer := strings.TrimSpace(c.Request().Header.Get(HeaderCustomerID))
	supplier := strings.TrimSpace(c.Request().Header.Get(HeaderSupplierID))

	switch {
	case customer != "" && supplier != "":
		return services.Actor{}, errs.NewValueIsInvalidError("only one of X-Customer-ID and X-Supplier-ID may be set")
	case customer != "":
		id, err := parseID(HeaderCustomerID, customer)
		if err != nil {
			return services.Actor{}, err
		}
		return services.NewCustomerActor(id), nil
	case supplier != "":
		id, err := parseID(HeaderSupplierID, supplier)
		if err != nil {
			return services.Actor{}, err
		}
		return services.NewSupplierActor(id), nil
	default:
		return services.Actor{}, errMissingActor
	}
}

// customerFrom reads the caller and requires a customer.
func customerFrom(c echo.Context) (kernel.UUID, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return kernel.UUID{}, err
	}
	if actor.Role != services.RoleCustomer {
		return kernel.UUID{}, errs.NewAccessDeniedError("cart", actor.ID)
	}
	return actor.ID, nil
}

func parseID(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}
