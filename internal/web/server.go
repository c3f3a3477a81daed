// Package web provides the officebase HTTP API server.
package web

import (
	"context"
	"net/http"

	"github.com/didzisbondars-dot/officebase/internal/lead"
	"github.com/didzisbondars-dot/officebase/internal/listing"
	"github.com/didzisbondars-dot/officebase/internal/logging"
)

// LeadSubmitter writes an inquiry back to the CMS.
type LeadSubmitter interface {
	SubmitLead(ctx context.Context, l lead.Lead) error
}

// ProjectSource reads projects straight from the CMS. The server falls
// back to it when the in-memory snapshot cannot answer: before the
// first refresh has landed, or for a project published since the last
// one.
type ProjectSource interface {
	FetchListingBySlug(ctx context.Context, slug string) (*listing.Listing, error)
	FetchListingsByIDs(ctx context.Context, ids []string) ([]*listing.Listing, error)
	FetchFeatured(ctx context.Context, limit int) ([]*listing.Listing, error)
	Cities(ctx context.Context) ([]string, error)
}

// Server is the JSON API server. Listings are served from the shared
// in-memory store, which the refresher keeps current; leads go straight
// to the CMS.
type Server struct {
	store    *listing.Store
	cms      LeadSubmitter
	source   ProjectSource    // optional CMS fallback for reads
	leadRepo *lead.Repository // optional local lead log
	notify   func(lead.Lead)
	handler  http.Handler
}

// NewServer creates an API server over the given store. cms may be nil
// when lead capture is not configured; leadRepo may be nil to skip the
// local lead log.
func NewServer(store *listing.Store, cms LeadSubmitter, leadRepo *lead.Repository) *Server {
	s := &Server{
		store:    store,
		cms:      cms,
		leadRepo: leadRepo,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/projects", s.handleProjects)
	mux.HandleFunc("/api/projects/", s.handleProjectRoute)
	mux.HandleFunc("/api/cities", s.handleCities)
	mux.HandleFunc("/api/leads", s.handleLeads)
	s.handler = logging.RequestLogger(mux)

	return s
}

// SetProjectSource registers a CMS fallback for read endpoints. Without
// one, misses against the in-memory snapshot are final.
func (s *Server) SetProjectSource(src ProjectSource) {
	s.source = src
}

// OnLeadAccepted registers a callback invoked after a lead has been
// accepted by the CMS, for notifications. It runs outside the request
// path.
func (s *Server) OnLeadAccepted(fn func(lead.Lead)) {
	s.notify = fn
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on addr.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]interface{}{
		"status":   "ok",
		"listings": s.store.Len(),
	}, http.StatusOK)
}
