package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vogelpark/storefront/api/responses"
	"github.com/vogelpark/storefront/api/validators"
	"github.com/vogelpark/storefront/pkg/db/models"
	pkgerrors "github.com/vogelpark/storefront/pkg/errors"
	"github.com/vogelpark/storefront/pkg/logger"
	"github.com/vogelpark/storefront/pkg/pagination"
)

type contactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
	List(ctx context.Context, page pagination.Params) ([]models.Contact, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactsCreate accepts a submission from the public contact form.
func ContactsCreate(repo contactStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact store unavailable"))
			return
		}

		var payload contactPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact := models.Contact{
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Email:     payload.Email,
			Phone:     payload.Phone,
			Message:   payload.Message,
		}
		if err := repo.Create(r.Context(), &contact); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create contact"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, createdResponse{
			Message: "message received",
			ID:      contact.ID.String(),
		})
	}
}

// ContactsList serves the paginated inbox, newest first.
func ContactsList(repo contactStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact store unavailable"))
			return
		}

		rows, total, err := repo.List(r.Context(), pagination.FromQuery(r.URL.Query()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list contacts"))
			return
		}

		results := make([]contactResponse, len(rows))
		for i, row := range rows {
			results[i] = newContactResponse(row)
		}
		responses.WriteSuccess(w, listResponse[contactResponse]{Results: results, Count: total})
	}
}

// ContactsUpdateStatus moves a submission through its triage states.
func ContactsUpdateStatus(repo contactStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact store unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "contactId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid contact id"))
			return
		}

		var payload contactStatusPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := repo.UpdateStatus(r.Context(), id, payload.Status); err != nil {
			if err == gorm.ErrRecordNotFound {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "contact not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update contact"))
			return
		}

		responses.WriteMessage(w, http.StatusOK, "contact updated")
	}
}

// ContactsDelete removes a submission.
func ContactsDelete(repo contactStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact store unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "contactId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid contact id"))
			return
		}

		if err := repo.Delete(r.Context(), id); err != nil {
			if err == gorm.ErrRecordNotFound {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "contact not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete contact"))
			return
		}

		responses.WriteMessage(w, http.StatusOK, "contact deleted")
	}
}

type contactPayload struct {
	FirstName string  `json:"firstname" validate:"required"`
	LastName  string  `json:"lastname" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     string  `json:"phone" validate:"required,min=6,max=30"`
	Message   *string `json:"message"`
}

type contactStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

type contactResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   *string   `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func newContactResponse(c models.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID.String(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Message:   c.Message,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}
