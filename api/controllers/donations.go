package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vogelpark/storefront/api/responses"
	"github.com/vogelpark/storefront/api/validators"
	"github.com/vogelpark/storefront/pkg/db/models"
	pkgerrors "github.com/vogelpark/storefront/pkg/errors"
	"github.com/vogelpark/storefront/pkg/logger"
	"github.com/vogelpark/storefront/pkg/pagination"
)

type donationStore interface {
	List(ctx context.Context, page pagination.Params) ([]models.Donation, int64, error)
	Top(ctx context.Context, limit int) ([]models.Donation, error)
	Create(ctx context.Context, donation *models.Donation) error
}

// DonationsList serves the paginated donation history.
func DonationsList(repo donationStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "donation store unavailable"))
			return
		}

		rows, total, err := repo.List(r.Context(), pagination.FromQuery(r.URL.Query()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list donations"))
			return
		}

		results := make([]donationResponse, len(rows))
		for i, row := range rows {
			results[i] = newDonationResponse(row)
		}
		responses.WriteSuccess(w, listResponse[donationResponse]{Results: results, Count: total})
	}
}

// DonationsTop serves the largest donations for the supporter board.
func DonationsTop(repo donationStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "donation store unavailable"))
			return
		}

		rows, err := repo.Top(r.Context(), 10)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list top donations"))
			return
		}

		out := make([]donationResponse, len(rows))
		for i, row := range rows {
			out[i] = newDonationResponse(row)
		}
		responses.WriteSuccess(w, out)
	}
}

// DonationsCreate records a contribution from the donation form.
func DonationsCreate(repo donationStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "donation store unavailable"))
			return
		}

		var payload donationPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amount, err := decimal.NewFromString(payload.Amount)
		if err != nil || !amount.IsPositive() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a positive number"))
			return
		}

		donation := models.Donation{
			DonorName: payload.DonorName,
			Amount:    amount,
		}
		if err := repo.Create(r.Context(), &donation); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create donation"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, createdResponse{
			Message: "donation received",
			ID:      donation.ID.String(),
		})
	}
}

type donationPayload struct {
	DonorName string `json:"donor_name" validate:"required"`
	Amount    string `json:"amount" validate:"required"`
}

type donationResponse struct {
	ID        string          `json:"id"`
	DonorName string          `json:"donor_name"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

func newDonationResponse(d models.Donation) donationResponse {
	return donationResponse{
		ID:        d.ID.String(),
		DonorName: d.DonorName,
		Amount:    d.Amount,
		CreatedAt: d.CreatedAt,
	}
}
