package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vogelpark/storefront/api/middleware"
	"github.com/vogelpark/storefront/api/responses"
	"github.com/vogelpark/storefront/api/validators"
	cartstore "github.com/vogelpark/storefront/internal/cart"
	orderssvc "github.com/vogelpark/storefront/internal/orders"
	"github.com/vogelpark/storefront/pkg/db/models"
	"github.com/vogelpark/storefront/pkg/enums"
	pkgerrors "github.com/vogelpark/storefront/pkg/errors"
	"github.com/vogelpark/storefront/pkg/logger"
)

// OrdersCheckout turns the submitted cart into an order. Prices are frozen
// from the catalog, never taken from the client.
func OrdersCheckout(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			userID = uuid.Nil
		}

		result, err := svc.Checkout(r.Context(), orderssvc.CheckoutRequest{
			UserID:    userID,
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Email:     payload.Email,
			Address:   payload.Address,
			City:      payload.City,
			Country:   payload.Country,
			Payment:   payload.Payment,
			Cart:      payload.Cart,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// OrdersList serves the caller's order history; staff see every order.
func OrdersList(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context"))
			return
		}

		role, _ := enums.ParseRole(middleware.RoleFromContext(r.Context()))
		rows, err := svc.ListForUser(r.Context(), userID, role.IsStaff())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders"))
			return
		}

		out := make([]orderResponse, len(rows))
		for i, row := range rows {
			out[i] = newOrderResponse(row)
		}
		responses.WriteSuccess(w, out)
	}
}

// OrdersSetStatus moves an order through its fulfilment states.
func OrdersSetStatus(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload orderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := uuid.Parse(payload.OrderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid order id"))
			return
		}

		if err := svc.SetStatus(r.Context(), orderID, payload.Status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, http.StatusOK, "order status updated")
	}
}

type checkoutRequest struct {
	FirstName string            `json:"firstname" validate:"required"`
	LastName  string            `json:"lastname" validate:"required"`
	Email     string            `json:"email" validate:"required,email"`
	Address   string            `json:"address" validate:"required"`
	City      string            `json:"city" validate:"required"`
	Country   string            `json:"country" validate:"required"`
	Payment   string            `json:"payment" validate:"required"`
	Cart      []cartstore.Entry `json:"cart"`
}

type orderStatusRequest struct {
	OrderID string `json:"orderId" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	FirstName string              `json:"firstname"`
	LastName  string              `json:"lastname"`
	Email     string              `json:"email"`
	Address   string              `json:"address"`
	City      string              `json:"city"`
	Country   string              `json:"country"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []orderItemResponse `json:"items"`
}

type orderItemResponse struct {
	ProductID string          `json:"idproducts"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func newOrderResponse(o models.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	return orderResponse{
		ID:        o.ID.String(),
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Email:     o.Email,
		Address:   o.Address,
		City:      o.City,
		Country:   o.Country,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		Items:     items,
	}
}
