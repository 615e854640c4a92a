package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vogelpark/storefront/internal/cart"
	"github.com/vogelpark/storefront/pkg/db/models"
	pkgerrors "github.com/vogelpark/storefront/pkg/errors"
)

// CheckoutRequest carries one checkout submission. Payment is opaque
// passthrough data; nothing here processes it.
type CheckoutRequest struct {
	UserID    uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Address   string
	City      string
	Country   string
	Payment   string
	Cart      []cart.Entry
}

// CheckoutResponse acknowledges a stored order.
type CheckoutResponse struct {
	Message string    `json:"message"`
	OrderID uuid.UUID `json:"orderId"`
}

// Service defines the behavior needed by the order controllers.
type Service interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID, seeAll bool) ([]models.Order, error)
	SetStatus(ctx context.Context, orderID uuid.UUID, status string) error
}

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type productCatalog interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	orders  orderRepository
	catalog productCatalog
}

// NewService constructs an orders service.
func NewService(orders orderRepository, catalog productCatalog) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("product catalog is required")
	}
	return &service{orders: orders, catalog: catalog}, nil
}

func (s *service) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	valid := cart.SanitizeEntries(req.Cart)
	if len(valid) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items := make([]models.OrderItem, 0, len(valid))
	for _, entry := range valid {
		product, err := s.catalog.FindByID(ctx, entry.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// product vanished between cart and checkout
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  entry.Quantity,
			Price:     product.Price,
		})
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	var userID *uuid.UUID
	if req.UserID != uuid.Nil {
		id := req.UserID
		userID = &id
	}

	order := &models.Order{
		UserID:    userID,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Address:   strings.TrimSpace(req.Address),
		City:      strings.TrimSpace(req.City),
		Country:   strings.TrimSpace(req.Country),
		Payment:   req.Payment,
		Status:    "pending",
		Items:     items,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}

	return &CheckoutResponse{Message: "Order placed", OrderID: order.ID}, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, seeAll bool) ([]models.Order, error) {
	if seeAll {
		rows, err := s.orders.ListAll(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
		}
		return rows, nil
	}
	rows, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return rows, nil
}

func (s *service) SetStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "status is required")
	}
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update status")
	}
	return nil
}
