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

type patientStore interface {
	List(ctx context.Context, page pagination.Params) ([]models.Patient, int64, error)
	Create(ctx context.Context, patient *models.Patient) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
}

// PatientsList serves the rescue records, most recent admission first.
func PatientsList(repo patientStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "patient store unavailable"))
			return
		}

		rows, total, err := repo.List(r.Context(), pagination.FromQuery(r.URL.Query()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list patients"))
			return
		}

		results := make([]patientResponse, len(rows))
		for i, row := range rows {
			results[i] = newPatientResponse(row)
		}
		responses.WriteSuccess(w, listResponse[patientResponse]{Results: results, Count: total})
	}
}

// PatientsCreate opens a new rescue record.
func PatientsCreate(repo patientStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "patient store unavailable"))
			return
		}

		var payload patientPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		admitted, err := time.Parse("2006-01-02", payload.AdmissionDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "admission_date must be YYYY-MM-DD"))
			return
		}

		patient := models.Patient{
			Name:          payload.Name,
			Species:       payload.Species,
			Status:        payload.Status,
			AdmissionDate: admitted,
			Details:       payload.Details,
		}
		if err := repo.Create(r.Context(), &patient); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create patient"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, createdResponse{
			Message: "patient admitted",
			ID:      patient.ID.String(),
		})
	}
}

// PatientsUpdate changes a record's status or care notes.
func PatientsUpdate(repo patientStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "patient store unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "patientId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid patient id"))
			return
		}

		var payload patientUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fields := map[string]any{}
		if payload.Status != nil {
			fields["status"] = *payload.Status
		}
		if payload.Details != nil {
			fields["details"] = *payload.Details
		}
		if len(fields) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update"))
			return
		}

		if err := repo.Update(r.Context(), id, fields); err != nil {
			if err == gorm.ErrRecordNotFound {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "patient not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update patient"))
			return
		}

		responses.WriteMessage(w, http.StatusOK, "patient updated")
	}
}

type patientPayload struct {
	Name          string  `json:"name" validate:"required"`
	Species       string  `json:"species" validate:"required"`
	Status        string  `json:"status" validate:"required"`
	AdmissionDate string  `json:"admission_date" validate:"required"`
	Details       *string `json:"details"`
}

type patientUpdatePayload struct {
	Status  *string `json:"status"`
	Details *string `json:"details"`
}

type patientResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Species       string  `json:"species"`
	Status        string  `json:"status"`
	AdmissionDate string  `json:"admission_date"`
	Details       *string `json:"details"`
}

func newPatientResponse(p models.Patient) patientResponse {
	return patientResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Species:       p.Species,
		Status:        p.Status,
		AdmissionDate: p.AdmissionDate.Format("2006-01-02"),
		Details:       p.Details,
	}
}
