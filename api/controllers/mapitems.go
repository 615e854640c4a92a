package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/vogelpark/storefront/api/responses"
	"github.com/vogelpark/storefront/api/validators"
	"github.com/vogelpark/storefront/pkg/db/models"
	pkgerrors "github.com/vogelpark/storefront/pkg/errors"
	"github.com/vogelpark/storefront/pkg/logger"
)

type mapItemStore interface {
	List(ctx context.Context) ([]models.MapItem, error)
	Create(ctx context.Context, item *models.MapItem) error
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// MapItemsList serves every enclosure marker as a bare array.
func MapItemsList(repo mapItemStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "map store unavailable"))
			return
		}

		rows, err := repo.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list map items"))
			return
		}

		out := make([]mapItemResponse, len(rows))
		for i, row := range rows {
			out[i] = newMapItemResponse(row)
		}
		responses.WriteSuccess(w, out)
	}
}

// MapItemsCreate places a marker. Class and status fall back to their
// defaults when omitted.
func MapItemsCreate(repo mapItemStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "map store unavailable"))
			return
		}

		var payload mapItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item := models.MapItem{
			Label:       payload.Label,
			Class:       payload.Class,
			X:           payload.X,
			Y:           payload.Y,
			Image:       payload.Image,
			Name:        payload.Name,
			Species:     payload.Species,
			Age:         payload.Age,
			Description: payload.Description,
			Status:      payload.Status,
		}
		if err := repo.Create(r.Context(), &item); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create map item"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newMapItemResponse(item))
	}
}

// MapItemsUpdate moves or re-labels a marker.
func MapItemsUpdate(repo mapItemStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "map store unavailable"))
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid map item id"))
			return
		}

		var payload mapItemUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fields := payload.fields()
		if len(fields) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update"))
			return
		}

		if err := repo.Update(r.Context(), id, fields); err != nil {
			if err == gorm.ErrRecordNotFound {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "map item not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update map item"))
			return
		}

		responses.WriteMessage(w, http.StatusOK, "map item updated")
	}
}

// MapItemsDelete removes a marker.
func MapItemsDelete(repo mapItemStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "map store unavailable"))
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid map item id"))
			return
		}

		if err := repo.Delete(r.Context(), id); err != nil {
			if err == gorm.ErrRecordNotFound {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "map item not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete map item"))
			return
		}

		responses.WriteMessage(w, http.StatusOK, "map item deleted")
	}
}

type mapItemPayload struct {
	Label       string  `json:"label" validate:"required"`
	Class       string  `json:"class"`
	X           float64 `json:"x" validate:"min=0,max=100"`
	Y           float64 `json:"y" validate:"min=0,max=100"`
	Image       string  `json:"image"`
	Name        string  `json:"name" validate:"required"`
	Species     string  `json:"species"`
	Age         string  `json:"age"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

type mapItemUpdatePayload struct {
	Label       *string  `json:"label"`
	Class       *string  `json:"class"`
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	Image       *string  `json:"image"`
	Name        *string  `json:"name"`
	Species     *string  `json:"species"`
	Age         *string  `json:"age"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
}

func (p mapItemUpdatePayload) fields() map[string]any {
	fields := map[string]any{}
	if p.Label != nil {
		fields["label"] = *p.Label
	}
	if p.Class != nil {
		fields["class"] = *p.Class
	}
	if p.X != nil {
		fields["x"] = *p.X
	}
	if p.Y != nil {
		fields["y"] = *p.Y
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Species != nil {
		fields["species"] = *p.Species
	}
	if p.Age != nil {
		fields["age"] = *p.Age
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Status != nil {
		fields["status"] = *p.Status
	}
	return fields
}

// mapItemResponse nests the resident's details the way the map front-end
// consumes them.
type mapItemResponse struct {
	ID      int64          `json:"id"`
	Label   string         `json:"label"`
	Class   string         `json:"class"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Image   string         `json:"image"`
	Details mapItemDetails `json:"details"`
}

type mapItemDetails struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Age         string `json:"age"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func newMapItemResponse(m models.MapItem) mapItemResponse {
	return mapItemResponse{
		ID:    m.ID,
		Label: m.Label,
		Class: m.Class,
		X:     m.X,
		Y:     m.Y,
		Image: m.Image,
		Details: mapItemDetails{
			Name:        m.Name,
			Species:     m.Species,
			Age:         m.Age,
			Description: m.Description,
			Status:      m.Status,
		},
	}
}
