package cartstate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/vogelpark/storefront/pkg/errors"
)

// Gateway is the server collaborator behind cart synchronization.
type Gateway interface {
	// FetchCart retrieves the authoritative cart for the token's user.
	FetchCart(ctx context.Context, token string) ([]Line, error)
	// ReplaceCart swaps the server cart wholesale for the given entries.
	ReplaceCart(ctx context.Context, token string, entries []Entry) error
}

// Session supplies the caller's identity to the cart store.
type Session interface {
	Token() string
	Authenticated() bool
}

// HTTPGateway talks to the storefront cart endpoints.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway builds a gateway against the API at baseURL.
func NewHTTPGateway(baseURL string, client *http.Client) (*HTTPGateway, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPGateway{baseURL: baseURL, client: client}, nil
}

func (g *HTTPGateway) FetchCart(ctx context.Context, token string) ([]Line, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/api/cart", nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build cart request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch cart")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read cart response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, body, "fetch cart")
	}

	// The contract is a bare JSON array; anything else is a malformed
	// payload, not a transport failure.
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, pkgerrors.New(pkgerrors.CodeConsistency, "cart payload is not an array")
	}

	var lines []Line
	if err := json.Unmarshal(trimmed, &lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConsistency, err, "decode cart payload")
	}
	return lines, nil
}

func (g *HTTPGateway) ReplaceCart(ctx context.Context, token string, lines []Entry) error {
	if lines == nil {
		lines = []Entry{}
	}
	payload, err := json.Marshal(map[string][]Entry{"cart": lines})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/cart", bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build cart request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace cart")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return statusError(resp.StatusCode, body, "replace cart")
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func statusError(status int, body []byte, op string) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("%s: %s (status %d)", op, payload.Error, status))
	}
	return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("%s: status %d", op, status))
}
