// Package clientsession manages the storefront client's identity: logging
// in against the API, persisting the credential locally, and telling
// interested parties (the cart) when a login happened.
package clientsession

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/vogelpark/storefront/pkg/errors"
)

// CredentialStore persists the session token between runs. The cart's
// snapshot store satisfies it; a file-backed implementation lives next to
// the cart snapshot under the user's config directory.
type CredentialStore interface {
	Load() (value string, ok bool, err error)
	Save(value string) error
	Clear() error
}

// LoginListener is invoked after a successful login has been committed to
// the credential store. The cart registers its merge here; by the time a
// listener runs, Token and Authenticated already reflect the new identity.
type LoginListener func(ctx context.Context) error

// Identity describes the logged-in user as returned by the API.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type credential struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
}

// Session holds the client's authentication state. It satisfies the cart's
// Session interface and is safe for concurrent use.
type Session struct {
	baseURL string
	client  *http.Client
	store   CredentialStore

	mu       sync.RWMutex
	cred     credential
	loggedIn bool

	listenerMu sync.Mutex
	listeners  []LoginListener
}

// New builds a session backed by the given credential store. A previously
// saved credential is restored; a corrupt one is discarded.
func New(baseURL string, client *http.Client, store CredentialStore) (*Session, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if store == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	s := &Session{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		store:   store,
	}

	value, ok, err := store.Load()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read credential store")
	}
	if ok {
		var cred credential
		if jsonErr := json.Unmarshal([]byte(value), &cred); jsonErr == nil && cred.Token != "" {
			s.cred = cred
			s.loggedIn = true
		}
	}
	return s, nil
}

// Token returns the current access token, or "" when anonymous.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred.Token
}

// Authenticated reports whether a login credential is held.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// Whoami returns the stored identity of the logged-in user.
func (s *Session) Whoami() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred.Identity, s.loggedIn
}

// OnLogin registers a listener fired after each successful login.
func (s *Session) OnLogin(fn LoginListener) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Login authenticates against the API and commits the credential before
// any listener runs. A failed login leaves the stored credential exactly
// as it was.
func (s *Session) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode login request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build login request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "login request failed")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read login response")
	}

	if resp.StatusCode != http.StatusOK {
		return loginError(resp.StatusCode, payload)
	}

	var result struct {
		Token    string `json:"token"`
		ID       string `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := json.Unmarshal(payload, &result); err != nil || result.Token == "" {
		return pkgerrors.New(pkgerrors.CodeConsistency, "malformed login response")
	}

	cred := credential{
		Token: result.Token,
		Identity: Identity{
			ID:       result.ID,
			Username: result.Username,
			Role:     result.Role,
		},
	}

	encoded, err := json.Marshal(cred)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode credential")
	}
	if err := s.store.Save(string(encoded)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save credential")
	}

	s.mu.Lock()
	s.cred = cred
	s.loggedIn = true
	s.mu.Unlock()

	return s.notifyLogin(ctx)
}

// Logout revokes the server session and clears local state. Local state is
// cleared even when the revoke call fails, so a broken server cannot trap
// the client in a logged-in state.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.RLock()
	token := s.cred.Token
	loggedIn := s.loggedIn
	s.mu.RUnlock()

	if !loggedIn {
		return nil
	}

	var revokeErr error
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/logout", nil)
	if err == nil {
		req.Header.Set("Authorization", "Bearer "+token)
		resp, doErr := s.client.Do(req)
		if doErr != nil {
			revokeErr = pkgerrors.Wrap(pkgerrors.CodeDependency, doErr, "logout request failed")
		} else {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
	}

	s.mu.Lock()
	s.cred = credential{}
	s.loggedIn = false
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear credential store")
	}
	return revokeErr
}

func (s *Session) notifyLogin(ctx context.Context) error {
	s.listenerMu.Lock()
	listeners := make([]LoginListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.listenerMu.Unlock()

	for _, fn := range listeners {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func loginError(status int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	message := "login failed"
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		message = payload.Error
	}
	if status == http.StatusUnauthorized {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, message)
	}
	return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("login rejected (status %d): %s", status, message))
}
