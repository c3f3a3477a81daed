// Package refresh keeps the in-memory listing store in sync with the
// CMS on a cron schedule, with the SQLite cache as the fallback source.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/didzisbondars-dot/officebase/internal/listing"
)

// Fetcher retrieves the full published listing set from the CMS.
type Fetcher interface {
	FetchListings(ctx context.Context, criteria listing.Criteria) ([]*listing.Listing, error)
}

// Refresher periodically pulls listings from the CMS, swaps them into
// the store, and mirrors them to the cache. A failed fetch keeps the
// previous snapshot serving.
type Refresher struct {
	fetcher Fetcher
	store   *listing.Store
	repo    *listing.Repository
	cron    *cron.Cron
	timeout time.Duration
}

// NewRefresher creates a refresher. repo may be nil to run without a
// persistent cache.
func NewRefresher(fetcher Fetcher, store *listing.Store, repo *listing.Repository) *Refresher {
	return &Refresher{
		fetcher: fetcher,
		store:   store,
		repo:    repo,
		cron:    cron.New(),
		timeout: 2 * time.Minute,
	}
}

// Start performs an initial load and schedules recurring refreshes with
// the given cron spec. When the first fetch fails it falls back to the
// cached set so the server can start while the CMS is down.
func (r *Refresher) Start(ctx context.Context, spec string) error {
	if err := r.Refresh(ctx); err != nil {
		slog.Error("Initial listing fetch failed, falling back to cache", "error", err)
		if err := r.loadFromCache(); err != nil {
			return fmt.Errorf("loading listings: %w", err)
		}
	}

	_, err := r.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.Refresh(ctx); err != nil {
			slog.Error("Listing refresh failed, keeping previous snapshot", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling refresh %q: %w", spec, err)
	}

	r.cron.Start()
	return nil
}

// Stop cancels the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

// Refresh fetches the published set and swaps it into the store. The
// store is only updated on a successful fetch.
func (r *Refresher) Refresh(ctx context.Context) error {
	listings, err := r.fetcher.FetchListings(ctx, listing.Criteria{})
	if err != nil {
		return fmt.Errorf("fetching listings: %w", err)
	}

	r.store.Load(listings)
	slog.Info("Refreshed listings", "count", len(listings))

	if r.repo != nil {
		if err := r.repo.ReplaceAll(listings); err != nil {
			// The in-memory snapshot is already current; a stale cache
			// only matters for the next cold start.
			slog.Error("Failed to update listing cache", "error", err)
		}
	}
	return nil
}

// loadFromCache populates the store from the SQLite cache.
func (r *Refresher) loadFromCache() error {
	if r.repo == nil {
		return fmt.Errorf("no listing cache configured")
	}
	listings, err := r.repo.List()
	if err != nil {
		return err
	}
	if len(listings) == 0 {
		return fmt.Errorf("listing cache is empty")
	}

	r.store.Load(listings)
	slog.Info("Loaded listings from cache", "count", len(listings))
	return nil
}
