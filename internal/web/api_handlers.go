package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/didzisbondars-dot/officebase/internal/lead"
	"github.com/didzisbondars-dot/officebase/internal/listing"
)

// apiJSON writes v as a JSON response with the given status.
func apiJSON(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, message string, status int) {
	apiJSON(w, map[string]string{"error": message}, status)
}

// apiErrorDetails writes a JSON error response with per-field details.
func apiErrorDetails(w http.ResponseWriter, message string, details map[string]string, status int) {
	apiJSON(w, map[string]interface{}{
		"error":   message,
		"details": details,
	}, status)
}

// listResponse is the envelope for collection endpoints.
type listResponse struct {
	Data  []*listing.Listing `json:"data"`
	Total int                `json:"total"`
}

// criteriaFromQuery assembles filter criteria from request query
// parameters. Repeated status and type parameters build OR groups;
// malformed numeric bounds are ignored rather than rejected.
func criteriaFromQuery(r *http.Request) listing.Criteria {
	q := r.URL.Query()
	return listing.Criteria{
		Query:        strings.TrimSpace(q.Get("q")),
		City:         strings.TrimSpace(q.Get("city")),
		District:     strings.TrimSpace(q.Get("district")),
		Status:       nonEmpty(q["status"]),
		PropertyType: nonEmpty(q["type"]),
		MinArea:      listing.ParseBound(q.Get("minArea")),
		MaxArea:      listing.ParseBound(q.Get("maxArea")),
		MinRent:      listing.ParseBound(q.Get("minRent")),
		MaxRent:      listing.ParseBound(q.Get("maxRent")),
	}
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// handleProjects serves GET /api/projects with optional filter
// parameters applied against the current snapshot.
func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	matched := s.store.VisibleWith(criteriaFromQuery(r))
	apiJSON(w, listResponse{Data: matched, Total: len(matched)}, http.StatusOK)
}

// handleProjectRoute dispatches /api/projects/{featured|compare|slug}.
func (s *Server) handleProjectRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/projects/"), "/")
	switch rest {
	case "":
		s.handleProjects(w, r)
	case "featured":
		s.handleFeatured(w, r)
	case "compare":
		s.handleCompare(w, r)
	default:
		s.handleProjectBySlug(w, r, rest)
	}
}

// handleFeatured serves the featured subset, optionally truncated by a
// limit parameter. A cold store defers to the CMS.
func (s *Server) handleFeatured(w http.ResponseWriter, r *http.Request) {
	limit := -1
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			limit = n
		}
	}

	var featured []*listing.Listing
	if s.store.Len() == 0 && s.source != nil {
		fetched, err := s.source.FetchFeatured(r.Context(), limit)
		if err != nil {
			slog.Error("Featured fallback fetch failed", "error", err)
		} else {
			featured = fetched
		}
	} else {
		for _, l := range s.store.All() {
			if l.Featured {
				featured = append(featured, l)
			}
		}
	}

	if limit >= 0 && limit < len(featured) {
		featured = featured[:limit]
	}
	if featured == nil {
		featured = []*listing.Listing{}
	}

	apiJSON(w, listResponse{Data: featured, Total: len(featured)}, http.StatusOK)
}

// handleCompare resolves the ids parameter into listings, preserving
// the requested order. Ids arrive either repeated (ids=a&ids=b) or as a
// comma-separated list; both forms may mix. Ids the store does not hold
// are retried against the CMS when a fallback source is set; ids known
// nowhere are silently dropped so a stale saved selection still renders
// its surviving members.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var ids []string
	for _, raw := range r.URL.Query()["ids"] {
		ids = append(ids, nonEmpty(strings.Split(raw, ","))...)
	}
	if len(ids) == 0 {
		apiError(w, "ids parameter is required", http.StatusBadRequest)
		return
	}

	matched := s.store.ByIDs(ids)
	if len(matched) < len(ids) && s.source != nil {
		matched = s.resolveMissing(r.Context(), ids, matched)
	}
	if matched == nil {
		matched = []*listing.Listing{}
	}
	apiJSON(w, listResponse{Data: matched, Total: len(matched)}, http.StatusOK)
}

// resolveMissing fetches the ids absent from matched out of the CMS and
// rebuilds the result in the requested order. On a fetch failure the
// store's answer stands.
func (s *Server) resolveMissing(ctx context.Context, ids []string, matched []*listing.Listing) []*listing.Listing {
	found := make(map[string]*listing.Listing, len(matched))
	for _, l := range matched {
		found[l.ID] = l
	}

	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}

	fetched, err := s.source.FetchListingsByIDs(ctx, missing)
	if err != nil {
		slog.Error("Compare fallback fetch failed", "error", err, "ids", missing)
		return matched
	}
	for _, l := range fetched {
		found[l.ID] = l
	}

	var merged []*listing.Listing
	for _, id := range ids {
		if l, ok := found[id]; ok {
			merged = append(merged, l)
		}
	}
	return merged
}

func (s *Server) handleProjectBySlug(w http.ResponseWriter, r *http.Request, slug string) {
	l := s.store.BySlug(slug)
	if l == nil && s.source != nil {
		fetched, err := s.source.FetchListingBySlug(r.Context(), slug)
		if err != nil {
			slog.Error("Slug fallback fetch failed", "error", err, "slug", slug)
		} else {
			l = fetched
		}
	}
	if l == nil {
		apiError(w, "Project not found", http.StatusNotFound)
		return
	}
	apiJSON(w, l, http.StatusOK)
}

// handleCities serves the distinct sorted city list for filter options.
// A cold store defers to the CMS.
func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cities := s.store.Cities()
	if len(cities) == 0 && s.store.Len() == 0 && s.source != nil {
		fetched, err := s.source.Cities(r.Context())
		if err != nil {
			slog.Error("Cities fallback fetch failed", "error", err)
		} else {
			cities = fetched
		}
	}
	if cities == nil {
		cities = []string{}
	}
	apiJSON(w, map[string]interface{}{"data": cities, "total": len(cities)}, http.StatusOK)
}

// handleLeads accepts POST /api/leads. The lead is validated, written
// to the CMS, and on success logged locally. A local log failure does
// not fail the request since the CMS already holds the record.
func (s *Server) handleLeads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.cms == nil {
		apiError(w, "Lead capture is not configured", http.StatusServiceUnavailable)
		return
	}

	var l lead.Lead
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		apiError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if problems := l.Validate(); len(problems) > 0 {
		apiErrorDetails(w, "Lead is invalid", problems, http.StatusBadRequest)
		return
	}

	if err := s.cms.SubmitLead(r.Context(), l); err != nil {
		slog.Error("Failed to submit lead", "error", err, "project", l.ProjectName)
		apiError(w, "Failed to submit lead", http.StatusInternalServerError)
		return
	}

	if s.leadRepo != nil {
		if _, err := s.leadRepo.Insert(l); err != nil {
			slog.Error("Failed to log lead locally", "error", err)
		}
	}
	if s.notify != nil {
		go s.notify(l)
	}

	apiJSON(w, map[string]bool{"success": true}, http.StatusCreated)
}
