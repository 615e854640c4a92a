package cartstate

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	pkgerrors "github.com/vogelpark/storefront/pkg/errors"
	"github.com/vogelpark/storefront/pkg/logger"
	"github.com/vogelpark/storefront/pkg/metrics"
)

// Metric labels for sync operations.
const (
	opLoad    = "load"
	opPersist = "persist"
	opMerge   = "merge"
)

// Store owns the in-memory cart and drives synchronization with the local
// snapshot and the server. All methods are safe for concurrent use; a merge
// in flight holds the store lock, so mutations serialize behind it instead
// of interleaving with it.
type Store struct {
	mu    sync.Mutex
	lines []Line

	session  Session
	gateway  Gateway
	snapshot SnapshotStore
	logg     *logger.Logger
	metrics  *metrics.SyncMetrics

	// single-in-flight persist gate: concurrent best-effort persists
	// coalesce into the one already running instead of stacking requests
	gateMu    sync.Mutex
	gateBusy  bool
	gateDirty bool
}

// StoreParams bundles the collaborators a Store needs.
type StoreParams struct {
	Session  Session
	Gateway  Gateway
	Snapshot SnapshotStore
	Logger   *logger.Logger
	Metrics  *metrics.SyncMetrics
}

// NewStore builds an empty cart store. Metrics and Logger may be nil.
func NewStore(params StoreParams) (*Store, error) {
	if params.Session == nil {
		return nil, fmt.Errorf("session is required")
	}
	if params.Gateway == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	if params.Snapshot == nil {
		return nil, fmt.Errorf("snapshot store is required")
	}
	return &Store{
		session:  params.Session,
		gateway:  params.Gateway,
		snapshot: params.Snapshot,
		logg:     params.Logger,
		metrics:  params.Metrics,
	}, nil
}

// Add increments the product's quantity, or appends a new line with
// quantity one. The change is persisted best-effort; failures never roll
// back the in-memory cart.
func (s *Store) Add(ctx context.Context, product Line) {
	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].ProductID == product.ProductID {
			s.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		product.Quantity = 1
		s.lines = append(s.lines, product)
	}
	s.mu.Unlock()

	s.persistBestEffort(ctx)
}

// Remove decrements the product's quantity, deleting the line when it
// reaches zero. Unknown products are a no-op (still persisted, matching
// Add's behavior).
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		s.lines[i].Quantity--
		if s.lines[i].Quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
		break
	}
	s.mu.Unlock()

	s.persistBestEffort(ctx)
}

// Count returns the total quantity across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countLines(s.lines)
}

// Snapshot returns a copy of the current lines for display.
func (s *Store) Snapshot() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Load initializes the in-memory cart: from the local snapshot when
// anonymous, from the server when authenticated. Transport failures are
// logged and leave the current (stale) state untouched — they never reach
// the caller.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = sanitize(s.lines)

	if !s.session.Authenticated() {
		s.lines = s.loadSnapshotLocked(ctx)
		return
	}

	start := time.Now()
	rows, err := s.gateway.FetchCart(ctx, s.session.Token())
	s.metrics.ObserveDuration(opLoad, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(opLoad)
		s.logError(ctx, "cart.load.failed", err)
		return
	}
	s.metrics.IncSuccess(opLoad)
	s.lines = sanitize(rows)
}

// Persist pushes the current cart to its durable home: the local snapshot
// when anonymous, the server when authenticated. The in-memory cart is
// sanitized in place first; the wire payload is deduplicated and carries
// identifiers and quantities only.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	s.lines = sanitize(s.lines)
	payload := entries(dedupe(s.lines))
	authed := s.session.Authenticated()
	token := s.session.Token()

	if !authed {
		err := s.saveSnapshotLocked()
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	start := time.Now()
	err := s.gateway.ReplaceCart(ctx, token, payload)
	s.metrics.ObserveDuration(opPersist, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(opPersist)
		return err
	}
	s.metrics.IncSuccess(opPersist)
	return nil
}

// MergeOnLogin folds the anonymous cart into the freshly authenticated
// user's server cart: server lines are authoritative, local quantities are
// added in, local-only lines are appended. The pre-login snapshot is
// cleared and the merged cart persisted. The store lock is held for the
// whole merge, so concurrent Add/Remove calls wait rather than racing the
// merge base.
func (s *Store) MergeOnLogin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Authenticated() {
		return nil
	}

	local := s.loadSnapshotLocked(ctx)

	start := time.Now()
	server, err := s.gateway.FetchCart(ctx, s.session.Token())
	if err != nil {
		s.metrics.ObserveDuration(opMerge, time.Since(start))
		s.metrics.IncFailure(opMerge)
		s.logError(ctx, "cart.merge.fetch_failed", err)
		// snapshot stays put so nothing is lost; the caller may retry
		return err
	}

	s.lines = sanitize(mergeLines(sanitize(server), local))

	if err := s.snapshot.Clear(); err != nil {
		s.logError(ctx, "cart.merge.clear_snapshot_failed", err)
	}

	payload := entries(dedupe(s.lines))
	err = s.gateway.ReplaceCart(ctx, s.session.Token(), payload)
	s.metrics.ObserveDuration(opMerge, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(opMerge)
		s.logError(ctx, "cart.merge.persist_failed", err)
		// merged state stays in memory; the next persist retries
		return nil
	}
	s.metrics.IncSuccess(opMerge)
	return nil
}

// persistBestEffort runs Persist without surfacing failures. Concurrent
// callers coalesce: whoever holds the gate re-runs until no new request
// arrived during its round.
func (s *Store) persistBestEffort(ctx context.Context) {
	s.gateMu.Lock()
	if s.gateBusy {
		s.gateDirty = true
		s.gateMu.Unlock()
		return
	}
	s.gateBusy = true
	s.gateMu.Unlock()

	for {
		if err := s.Persist(ctx); err != nil {
			s.logError(ctx, "cart.persist.failed", err)
		}

		s.gateMu.Lock()
		if !s.gateDirty {
			s.gateBusy = false
			s.gateMu.Unlock()
			return
		}
		s.gateDirty = false
		s.gateMu.Unlock()
	}
}

// loadSnapshotLocked reads and parses the local snapshot. A missing or
// corrupt snapshot yields an empty cart. Callers must hold s.mu.
func (s *Store) loadSnapshotLocked(ctx context.Context) []Line {
	value, ok, err := s.snapshot.Load()
	if err != nil {
		s.logError(ctx, "cart.snapshot.read_failed", err)
		return []Line{}
	}
	if !ok {
		return []Line{}
	}

	var lines []Line
	if err := json.Unmarshal([]byte(value), &lines); err != nil {
		s.logError(ctx, "cart.snapshot.corrupt", err)
		return []Line{}
	}
	return sanitize(lines)
}

// saveSnapshotLocked serializes the current lines into the snapshot store.
// Callers must hold s.mu.
func (s *Store) saveSnapshotLocked() error {
	data, err := json.Marshal(s.lines)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode snapshot")
	}
	if err := s.snapshot.Save(string(data)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save snapshot")
	}
	return nil
}

func (s *Store) logError(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Error(ctx, msg, err)
}
