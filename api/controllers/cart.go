package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/vogelpark/storefront/api/middleware"
	"github.com/vogelpark/storefront/api/responses"
	"github.com/vogelpark/storefront/api/validators"
	cartstore "github.com/vogelpark/storefront/internal/cart"
	pkgerrors "github.com/vogelpark/storefront/pkg/errors"
	"github.com/vogelpark/storefront/pkg/logger"
)

type cartRepository interface {
	Fetch(ctx context.Context, userID uuid.UUID) ([]cartstore.Row, error)
	Replace(ctx context.Context, userID uuid.UUID, entries []cartstore.Entry) error
}

// CartFetch serves the caller's cart as a bare JSON array. Clients parse
// exactly this shape, so it never gains an envelope.
func CartFetch(repo cartRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context"))
			return
		}

		rows, err := repo.Fetch(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetch cart"))
			return
		}
		if rows == nil {
			rows = []cartstore.Row{}
		}
		responses.WriteSuccess(w, rows)
	}
}

// CartReplace swaps the caller's entire cart for the submitted one. Rows
// with a missing id or non-positive quantity are skipped, not rejected.
func CartReplace(repo cartRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context"))
			return
		}

		var payload replaceCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := payload.entries()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := repo.Replace(r.Context(), userID, entries); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace cart"))
			return
		}

		responses.WriteMessage(w, http.StatusOK, "cart updated")
	}
}

type replaceCartRequest struct {
	Cart json.RawMessage `json:"cart"`
}

func (r replaceCartRequest) entries() ([]cartstore.Entry, error) {
	raw := bytes.TrimSpace(r.Cart)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart must be an array")
	}

	var entries []cartstore.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "cart must be an array")
	}
	return entries, nil
}
