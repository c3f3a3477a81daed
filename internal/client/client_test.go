package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/didzisbondars-dot/officebase/internal/lead"
	"github.com/didzisbondars-dot/officebase/internal/listing"
)

func TestListProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects" {
			t.Errorf("path = %q, want /api/projects", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		resp := listResponse{
			Data:  []*listing.Listing{{ID: "rec1", Name: "Skanstes Business Center"}},
			Total: 1,
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	projects, err := c.ListProjects(ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}
	if projects[0].Name != "Skanstes Business Center" {
		t.Errorf("name = %q", projects[0].Name)
	}
}

func TestListProjectsWithFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("city") != "Riga" {
			t.Errorf("city = %q, want Riga", q.Get("city"))
		}
		if q.Get("minArea") != "500" {
			t.Errorf("minArea = %q, want 500", q.Get("minArea"))
		}
		if got := q["status"]; len(got) != 2 {
			t.Errorf("status = %v, want two values", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(listResponse{Data: []*listing.Listing{}}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	opts := ListOptions{
		City:    "Riga",
		MinArea: "500",
		Status:  []string{"Available", "Under Construction"},
	}
	if _, err := c.ListProjects(opts); err != nil {
		t.Fatalf("list: %v", err)
	}
}

func TestFeaturedProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/featured" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "4" {
			t.Errorf("limit = %q, want 4", r.URL.Query().Get("limit"))
		}
		w.Header().Set("Content-Type", "application/json")
		resp := listResponse{Data: []*listing.Listing{{ID: "rec1", Featured: true}}, Total: 1}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	projects, err := c.FeaturedProjects(4)
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(projects) != 1 || !projects[0].Featured {
		t.Errorf("got %+v", projects)
	}
}

func TestGetProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/old-town-hub" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		l := listing.Listing{ID: "rec2", Slug: "old-town-hub", Name: "Old Town Hub"}
		if err := json.NewEncoder(w).Encode(l); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	l, err := c.GetProject("old-town-hub")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if l.ID != "rec2" {
		t.Errorf("id = %q", l.ID)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		if _, err := w.Write([]byte(`{"error":"Project not found"}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.GetProject("no-such-project"); err == nil || err.Error() != "Project not found" {
		t.Errorf("err = %v, want server error message", err)
	}
}

func TestCompareProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/compare" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("ids") != "rec2,rec1" {
			t.Errorf("ids = %q", r.URL.Query().Get("ids"))
		}
		w.Header().Set("Content-Type", "application/json")
		resp := listResponse{Data: []*listing.Listing{{ID: "rec2"}, {ID: "rec1"}}, Total: 2}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	projects, err := c.CompareProjects([]string{"rec2", "rec1"})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(projects) != 2 || projects[0].ID != "rec2" {
		t.Errorf("got %+v", projects)
	}
}

func TestCompareProjectsEmpty(t *testing.T) {
	c := New("http://unused.invalid")
	projects, err := c.CompareProjects(nil)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if projects != nil {
		t.Errorf("expected no request and no projects, got %+v", projects)
	}
}

func TestCities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cities" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"data":["Riga","Tallinn"],"total":2}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	cities, err := c.Cities()
	if err != nil {
		t.Fatalf("cities: %v", err)
	}
	if len(cities) != 2 || cities[0] != "Riga" {
		t.Errorf("cities = %v", cities)
	}
}

func TestSubmitLead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/leads" {
			t.Errorf("%s %s, want POST /api/leads", r.Method, r.URL.Path)
		}
		var l lead.Lead
		if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if l.Email != "anna@example.com" {
			t.Errorf("email = %q", l.Email)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if _, err := w.Write([]byte(`{"success":true}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.SubmitLead(lead.Lead{Name: "Anna Berzina", Email: "anna@example.com"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestSubmitLeadValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		body := `{"error":"Lead is invalid","details":{"email":"email is required"}}`
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.SubmitLead(lead.Lead{Name: "Anna Berzina"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "email is required") {
		t.Errorf("err = %v, want field detail included", err)
	}
}
