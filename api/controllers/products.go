package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vogelpark/storefront/api/responses"
	"github.com/vogelpark/storefront/api/validators"
	"github.com/vogelpark/storefront/internal/products"
	"github.com/vogelpark/storefront/pkg/db/models"
	pkgerrors "github.com/vogelpark/storefront/pkg/errors"
	"github.com/vogelpark/storefront/pkg/logger"
	"github.com/vogelpark/storefront/pkg/pagination"
)

type productCatalog interface {
	List(ctx context.Context, params products.ListParams) ([]models.Product, int64, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductsList serves the paginated catalog with optional category and
// free-text filters.
func ProductsList(repo productCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product store unavailable"))
			return
		}

		query := r.URL.Query()
		rows, total, err := repo.List(r.Context(), products.ListParams{
			Page:     pagination.FromQuery(query),
			Category: query.Get("category"),
			Search:   query.Get("search"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products"))
			return
		}

		results := make([]productResponse, len(rows))
		for i, row := range rows {
			results[i] = newProductResponse(row)
		}
		responses.WriteSuccess(w, listResponse[productResponse]{Results: results, Count: total})
	}
}

// ProductsCategories serves the distinct category names as a bare array.
func ProductsCategories(repo productCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product store unavailable"))
			return
		}

		categories, err := repo.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories"))
			return
		}
		if categories == nil {
			categories = []string{}
		}
		responses.WriteSuccess(w, categories)
	}
}

// ProductsCreate adds a catalog entry.
func ProductsCreate(repo productCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product store unavailable"))
			return
		}

		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := decimal.NewFromString(payload.Price)
		if err != nil || price.IsNegative() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price must be a non-negative number"))
			return
		}

		product := models.Product{
			Title:       payload.Title,
			Price:       price,
			Description: payload.Description,
			Category:    payload.Category,
			AmountLeft:  payload.AmountLeft,
			Image:       payload.Image,
		}
		if err := repo.Create(r.Context(), &product); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, createdResponse{
			Message: "product created",
			ID:      product.ID.String(),
		})
	}
}

// ProductsUpdate applies a partial update to one catalog entry.
func ProductsUpdate(repo productCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product store unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id"))
			return
		}

		var payload productUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fields, err := payload.fields()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(fields) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update"))
			return
		}

		if err := repo.Update(r.Context(), id, fields); err != nil {
			if err == gorm.ErrRecordNotFound {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product"))
			return
		}

		responses.WriteMessage(w, http.StatusOK, "product updated")
	}
}

// ProductsDelete removes one catalog entry.
func ProductsDelete(repo productCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product store unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id"))
			return
		}

		if err := repo.Delete(r.Context(), id); err != nil {
			if err == gorm.ErrRecordNotFound {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product"))
			return
		}

		responses.WriteMessage(w, http.StatusOK, "product deleted")
	}
}

type listResponse[T any] struct {
	Results []T   `json:"results"`
	Count   int64 `json:"count"`
}

type createdResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type productPayload struct {
	Title       string `json:"title" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	AmountLeft  int    `json:"amount_left" validate:"min=0"`
	Image       string `json:"image" validate:"required"`
}

type productUpdatePayload struct {
	Title       *string `json:"title"`
	Price       *string `json:"price"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	AmountLeft  *int    `json:"amount_left"`
	Image       *string `json:"image"`
}

func (p productUpdatePayload) fields() (map[string]any, error) {
	fields := map[string]any{}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Price != nil {
		price, err := decimal.NewFromString(*p.Price)
		if err != nil || price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be a non-negative number")
		}
		fields["price"] = price
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.AmountLeft != nil {
		if *p.AmountLeft < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount_left must not be negative")
		}
		fields["amount_left"] = *p.AmountLeft
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	return fields, nil
}

type productResponse struct {
	ID          string          `json:"idproducts"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	AmountLeft  int             `json:"amount_left"`
	Image       string          `json:"image"`
}

func newProductResponse(p models.Product) productResponse {
	return productResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		AmountLeft:  p.AmountLeft,
		Image:       p.Image,
	}
}
