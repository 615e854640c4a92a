package cartstate_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vogelpark/storefront/internal/cartstate"
	pkgerrors "github.com/vogelpark/storefront/pkg/errors"
)

func newGateway(t *testing.T, handler http.Handler) *cartstate.HTTPGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	gw, err := cartstate.NewHTTPGateway(srv.URL, srv.Client())
	require.NoError(t, err)
	return gw
}

func TestHTTPGatewayFetchCart(t *testing.T) {
	gw := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/cart", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"idproducts":"a","title":"Ara","price":"4.50","image":"ara.jpg","quantity":2}]`))
	}))

	rows, err := gw.FetchCart(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].ProductID)
	assert.Equal(t, "Ara", rows[0].Title)
	assert.Equal(t, "4.5", rows[0].Price.String())
	assert.Equal(t, 2, rows[0].Quantity)
}

func TestHTTPGatewayFetchCartEmptyArray(t *testing.T) {
	gw := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	rows, err := gw.FetchCart(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestHTTPGatewayFetchCartRejectsNonArray(t *testing.T) {
	gw := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"nope"}`))
	}))

	_, err := gw.FetchCart(context.Background(), "tok")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConsistency, typed.Code())
}

func TestHTTPGatewayFetchCartServerError(t *testing.T) {
	gw := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"database is down"}`))
	}))

	_, err := gw.FetchCart(context.Background(), "tok")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
	assert.Contains(t, typed.Message(), "database is down")
}

func TestHTTPGatewayReplaceCartBody(t *testing.T) {
	var captured []byte
	gw := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cart", r.URL.Path)
		assert.Equal(t, "Bearer tok-2", r.Header.Get("Authorization"))
		captured, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"message":"cart updated"}`))
	}))

	err := gw.ReplaceCart(context.Background(), "tok-2", []cartstate.Entry{
		{ID: "a", Quantity: 2},
		{ID: "b", Quantity: 1},
	})
	require.NoError(t, err)

	var body struct {
		Cart []map[string]any `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(captured, &body))
	require.Len(t, body.Cart, 2)
	// only identifiers and quantities cross the wire
	assert.Equal(t, map[string]any{"id": "a", "quantity": float64(2)}, body.Cart[0])
	assert.Equal(t, map[string]any{"id": "b", "quantity": float64(1)}, body.Cart[1])
}

func TestHTTPGatewayReplaceCartNilIsEmptyArray(t *testing.T) {
	var captured []byte
	gw := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"message":"cart updated"}`))
	}))

	require.NoError(t, gw.ReplaceCart(context.Background(), "tok", nil))
	assert.JSONEq(t, `{"cart":[]}`, string(captured))
}

func TestHTTPGatewayReplaceCartRejected(t *testing.T) {
	gw := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"cart must be an array"}`))
	}))

	err := gw.ReplaceCart(context.Background(), "tok", []cartstate.Entry{{ID: "a", Quantity: 1}})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
	assert.Contains(t, typed.Message(), "cart must be an array")
}
