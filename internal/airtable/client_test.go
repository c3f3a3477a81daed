package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/didzisbondars-dot/officebase/internal/lead"
	"github.com/didzisbondars-dot/officebase/internal/listing"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		baseID  string
		wantErr bool
	}{
		{"valid", "key", "appBase", false},
		{"missing key", "", "appBase", true},
		{"missing base", "key", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.key, tt.baseID)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c == nil {
				t.Fatal("expected client, got nil")
			}
		})
	}
}

func TestFetchListingBySlug(t *testing.T) {
	var gotFormula string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotFormula = r.URL.Query().Get("filterByFormula")
		fmt.Fprintf(w, `{"records": [%s, %s]}`,
			recordJSON("rec1", "Riverside One", `"Status": "Available"`),
			recordJSON("rec2", "Skanste Towers", `"Status": "Available"`),
		)
	})

	got, err := c.FetchListingBySlug(context.Background(), "skanste-towers")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotFormula != `{Published} = 1` {
		t.Errorf("formula = %q, want published-only", gotFormula)
	}
	// The slug is derived in the mapper, so the match is client-side.
	if got == nil || got.ID != "rec2" {
		t.Fatalf("got %+v, want rec2", got)
	}
}

func TestFetchListingBySlugMiss(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"records": [%s]}`, recordJSON("rec1", "Riverside One", ""))
	})

	got, err := c.FetchListingBySlug(context.Background(), "no-such-project")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got != nil {
		t.Fatalf("got %+v, want nil for an unknown slug", got)
	}
}

// testClient points a client at a fake Airtable.
func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient("test-key", "appTest")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	SetTestBaseURL(c, server.URL)
	return c
}

func recordJSON(id, name string, extra string) string {
	rec := fmt.Sprintf(`{"id": %q, "createdTime": "2026-03-01T10:00:00Z", "fields": {"Project Name": %q`, id, name)
	if extra != "" {
		rec += ", " + extra
	}
	return rec + "}}"
}

func TestFetchListings(t *testing.T) {
	var gotFormula, gotAuth string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotFormula = r.URL.Query().Get("filterByFormula")
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprintf(w, `{"records": [%s, %s]}`,
			recordJSON("rec1", "Riverside One", `"Status": "Available", "Total Area (sqm)": 100`),
			recordJSON("rec2", "Skanste Towers", `"Status": "Sold Out", "Total Area (sqm)": 200`),
		)
	})

	got, err := c.FetchListings(context.Background(), listing.Criteria{Status: []string{"Available"}})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("authorization = %q, want bearer key", gotAuth)
	}
	if !strings.Contains(gotFormula, `{Published} = 1`) {
		t.Errorf("formula %q should always exclude unpublished rows", gotFormula)
	}
	if !strings.Contains(gotFormula, `{Status} = "Available"`) {
		t.Errorf("formula %q should push the status constraint upstream", gotFormula)
	}

	// The criteria recheck drops rec2 even though the fake returned it.
	if len(got) != 1 || got[0].ID != "rec1" {
		t.Fatalf("listings = %d, want only rec1", len(got))
	}
}

func TestFetchListingsPagination(t *testing.T) {
	page := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		page++
		switch r.URL.Query().Get("offset") {
		case "":
			fmt.Fprintf(w, `{"records": [%s], "offset": "page2"}`, recordJSON("rec1", "Alpha", ""))
		case "page2":
			fmt.Fprintf(w, `{"records": [%s]}`, recordJSON("rec2", "Beta", ""))
		default:
			t.Error("unexpected offset")
		}
	})

	got, err := c.FetchListings(context.Background(), listing.Criteria{})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if page != 2 {
		t.Errorf("requests = %d, want 2 pages", page)
	}
	if len(got) != 2 {
		t.Fatalf("listings = %d, want 2 across pages", len(got))
	}
}

func TestFetchListingsServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "INVALID_PERMISSIONS"}`, http.StatusForbidden)
	})

	if _, err := c.FetchListings(context.Background(), listing.Criteria{}); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestFetchListingsByIDs(t *testing.T) {
	var gotFormula string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotFormula = r.URL.Query().Get("filterByFormula")
		fmt.Fprintf(w, `{"records": [%s]}`, recordJSON("recA", "Alpha", ""))
	})

	got, err := c.FetchListingsByIDs(context.Background(), []string{"recA", "recGone"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(gotFormula, `RECORD_ID() = "recA"`) {
		t.Errorf("formula %q should select by record id", gotFormula)
	}
	if len(got) != 1 || got[0].ID != "recA" {
		t.Fatalf("listings = %d, want unknown ids dropped", len(got))
	}
}

func TestFetchListingsByIDsEmpty(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty id list")
	})
	got, err := c.FetchListingsByIDs(context.Background(), nil)
	if err != nil || got != nil {
		t.Fatalf("got = %v, %v; want nil, nil", got, err)
	}
}

func TestFetchFeatured(t *testing.T) {
	var gotFormula, gotMax string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotFormula = r.URL.Query().Get("filterByFormula")
		gotMax = r.URL.Query().Get("maxRecords")
		fmt.Fprintf(w, `{"records": [%s]}`, recordJSON("rec1", "Alpha", `"Featured": true`))
	})

	got, err := c.FetchFeatured(context.Background(), 6)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(gotFormula, `{Featured} = 1`) {
		t.Errorf("formula = %q, want featured constraint", gotFormula)
	}
	if gotMax != "6" {
		t.Errorf("maxRecords = %q, want 6", gotMax)
	}
	if len(got) != 1 || !got[0].Featured {
		t.Fatalf("listings = %v, want one featured", got)
	}
}

func TestCities(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"records": [%s, %s, %s]}`,
			recordJSON("r1", "A", `"City": "Riga"`),
			recordJSON("r2", "B", `"City": "Vilnius"`),
			recordJSON("r3", "C", `"City": "Riga"`),
		)
	})

	got, err := c.Cities(context.Background())
	if err != nil {
		t.Fatalf("cities: %v", err)
	}
	if len(got) != 2 || got[0] != "Riga" || got[1] != "Vilnius" {
		t.Fatalf("cities = %v, want sorted distinct [Riga Vilnius]", got)
	}
}

func TestSubmitLead(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		fmt.Fprint(w, `{"records": [{"id": "recLead1"}]}`)
	})

	size := 450.0
	err := c.SubmitLead(context.Background(), lead.Lead{
		Name:        "Anna Ozola",
		Email:       "anna@example.com",
		ProjectID:   "rec1",
		ProjectName: "Riverside One",
		Message:     "Looking for a full floor",
		UnitSize:    &size,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !strings.HasSuffix(gotPath, "/appTest/Leads") {
		t.Errorf("path = %q, want leads table", gotPath)
	}
	records := gotBody["records"].([]interface{})
	fields := records[0].(map[string]interface{})["fields"].(map[string]interface{})
	if fields["Name"] != "Anna Ozola" {
		t.Errorf("Name = %v", fields["Name"])
	}
	if fields["Status"] != "New" || fields["Source"] != "Website" {
		t.Errorf("workflow fields = %v / %v, want New / Website", fields["Status"], fields["Source"])
	}
	if fields["Unit Size (sqm)"] != 450.0 {
		t.Errorf("Unit Size = %v, want 450", fields["Unit Size (sqm)"])
	}
}

func TestSubmitLeadFailure(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "INVALID_REQUEST"}`, http.StatusUnprocessableEntity)
	})
	if err := c.SubmitLead(context.Background(), lead.Lead{Name: "A", Email: "a@b.co"}); err == nil {
		t.Fatal("expected error on rejected lead")
	}
}

func TestSetTables(t *testing.T) {
	var gotPath string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"records": []}`)
	})
	c.SetTables("Objekti", "Pieteikumi")

	if _, err := c.FetchListings(context.Background(), listing.Criteria{}); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.HasSuffix(gotPath, "/Objekti") {
		t.Errorf("path = %q, want overridden projects table", gotPath)
	}
}
