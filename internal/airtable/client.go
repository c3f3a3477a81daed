// Package airtable fetches office-project listings from the
// spreadsheet-backed CMS and writes lead inquiries back to it.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/didzisbondars-dot/officebase/internal/lead"
	"github.com/didzisbondars-dot/officebase/internal/listing"
)

const (
	defaultBaseURL       = "https://api.airtable.com/v0"
	defaultProjectsTable = "Projects"
	defaultLeadsTable    = "Leads"
)

// Client talks to the Airtable REST API for one base.
type Client struct {
	httpClient    *http.Client
	apiKey        string
	baseID        string
	projectsTable string
	leadsTable    string

	// Overridable URL for testing.
	baseURL string
}

// NewClient creates a CMS client for the given base.
func NewClient(apiKey, baseID string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("airtable API key is required")
	}
	if baseID == "" {
		return nil, fmt.Errorf("airtable base ID is required")
	}
	return &Client{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		apiKey:        apiKey,
		baseID:        baseID,
		projectsTable: defaultProjectsTable,
		leadsTable:    defaultLeadsTable,
		baseURL:       defaultBaseURL,
	}, nil
}

// SetTables overrides the table names when the base uses nonstandard ones.
func (c *Client) SetTables(projects, leads string) {
	if projects != "" {
		c.projectsTable = projects
	}
	if leads != "" {
		c.leadsTable = leads
	}
}

// record is one raw Airtable row.
type record struct {
	ID          string                     `json:"id"`
	CreatedTime time.Time                  `json:"createdTime"`
	Fields      map[string]json.RawMessage `json:"fields"`
}

// selectResponse is one page of a table select.
type selectResponse struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

// FetchListings returns all published listings matching the criteria,
// sorted featured-first then by name. Status, type, city and area
// constraints are pushed into the Airtable formula; the free-text query,
// district and rent constraints are applied client-side because the
// formula language cannot express them over drifting columns.
func (c *Client) FetchListings(ctx context.Context, criteria listing.Criteria) ([]*listing.Listing, error) {
	params := url.Values{}
	params.Set("filterByFormula", buildFormula(criteria))
	params.Set("sort[0][field]", "Featured")
	params.Set("sort[0][direction]", "desc")
	params.Set("sort[1][field]", "Project Name")
	params.Set("sort[1][direction]", "asc")

	records, err := c.selectRecords(ctx, c.projectsTable, params)
	if err != nil {
		return nil, fmt.Errorf("fetching listings: %w", err)
	}

	listings := make([]*listing.Listing, 0, len(records))
	for _, rec := range records {
		listings = append(listings, transformRecord(rec))
	}

	// Re-apply the whole criteria: this enforces the client-side parts
	// and is a harmless recheck of what the formula already filtered.
	listings = listing.Apply(listings, criteria)
	listing.SortDefault(listings)
	return listings, nil
}

// FetchListingBySlug returns the published listing carrying the given
// slug, or nil when none does. Slugs are derived from project names
// during mapping, so the match happens here rather than in a formula.
func (c *Client) FetchListingBySlug(ctx context.Context, slug string) (*listing.Listing, error) {
	params := url.Values{}
	params.Set("filterByFormula", `{Published} = 1`)

	records, err := c.selectRecords(ctx, c.projectsTable, params)
	if err != nil {
		return nil, fmt.Errorf("fetching listing %q: %w", slug, err)
	}

	for _, rec := range records {
		if l := transformRecord(rec); l.Slug == slug {
			return l, nil
		}
	}
	return nil, nil
}

// FetchFeatured returns up to limit published featured listings.
func (c *Client) FetchFeatured(ctx context.Context, limit int) ([]*listing.Listing, error) {
	params := url.Values{}
	params.Set("filterByFormula", `AND({Published} = 1, {Featured} = 1)`)
	params.Set("sort[0][field]", "Project Name")
	params.Set("sort[0][direction]", "asc")
	if limit > 0 {
		params.Set("maxRecords", fmt.Sprintf("%d", limit))
	}

	records, err := c.selectRecords(ctx, c.projectsTable, params)
	if err != nil {
		return nil, fmt.Errorf("fetching featured listings: %w", err)
	}

	listings := make([]*listing.Listing, 0, len(records))
	for _, rec := range records {
		listings = append(listings, transformRecord(rec))
	}
	return listings, nil
}

// FetchListingsByIDs resolves record ids for the comparison view. Ids
// unknown to the CMS are simply absent from the result.
func (c *Client) FetchListingsByIDs(ctx context.Context, ids []string) ([]*listing.Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	clauses := make([]string, len(ids))
	for i, id := range ids {
		clauses[i] = fmt.Sprintf(`RECORD_ID() = %s`, quoteFormula(id))
	}
	params := url.Values{}
	params.Set("filterByFormula", fmt.Sprintf("OR(%s)", strings.Join(clauses, ", ")))

	records, err := c.selectRecords(ctx, c.projectsTable, params)
	if err != nil {
		return nil, fmt.Errorf("fetching listings by ids: %w", err)
	}

	listings := make([]*listing.Listing, 0, len(records))
	for _, rec := range records {
		listings = append(listings, transformRecord(rec))
	}
	return listings, nil
}

// Cities returns the sorted distinct city names across published listings.
func (c *Client) Cities(ctx context.Context) ([]string, error) {
	params := url.Values{}
	params.Set("filterByFormula", `{Published} = 1`)
	params.Add("fields[]", "City")

	records, err := c.selectRecords(ctx, c.projectsTable, params)
	if err != nil {
		return nil, fmt.Errorf("fetching cities: %w", err)
	}

	seen := make(map[string]bool)
	var cities []string
	for _, rec := range records {
		city := fieldString(rec.Fields, "City")
		if city != "" && !seen[city] {
			seen[city] = true
			cities = append(cities, city)
		}
	}
	sort.Strings(cities)
	return cities, nil
}

// SubmitLead creates a row in the leads table. There is no retry: a
// failed submission is reported and the caller resubmits.
func (c *Client) SubmitLead(ctx context.Context, l lead.Lead) error {
	fields := map[string]interface{}{
		"Name":         l.Name,
		"Email":        l.Email,
		"Phone":        l.Phone,
		"Company":      l.Company,
		"Project Name": l.ProjectName,
		"Project ID":   l.ProjectID,
		"Message":      l.Message,
		"Status":       "New",
		"Source":       "Website",
		"Submitted At": time.Now().UTC().Format(time.RFC3339),
	}
	if l.UnitSize != nil {
		fields["Unit Size (sqm)"] = *l.UnitSize
	}
	if l.Budget != nil {
		fields["Budget (USD)"] = *l.Budget
	}

	payload := map[string]interface{}{
		"records": []map[string]interface{}{{"fields": fields}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding lead: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(c.leadsTable))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submitting lead: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("submitting lead: status %d: %s", resp.StatusCode, snippet)
	}
	return nil
}

// selectRecords pages through a table select until the offset runs out.
func (c *Client) selectRecords(ctx context.Context, table string, params url.Values) ([]record, error) {
	var all []record
	offset := ""

	for {
		page := url.Values{}
		for k, vs := range params {
			page[k] = vs
		}
		if offset != "" {
			page.Set("offset", offset)
		}

		endpoint := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.baseID, url.PathEscape(table), page.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("querying %s: %w", table, err)
		}

		if resp.StatusCode != http.StatusOK {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			_ = resp.Body.Close()
			return nil, fmt.Errorf("querying %s: status %d: %s", table, resp.StatusCode, snippet)
		}

		var sel selectResponse
		err = json.NewDecoder(resp.Body).Decode(&sel)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding %s response: %w", table, err)
		}

		all = append(all, sel.Records...)
		if sel.Offset == "" {
			return all, nil
		}
		offset = sel.Offset
	}
}

// buildFormula translates the formula-expressible criteria into the
// Airtable filter language. Unpublished rows are always excluded.
func buildFormula(criteria listing.Criteria) string {
	clauses := []string{`{Published} = 1`}

	if len(criteria.Status) > 0 {
		or := make([]string, len(criteria.Status))
		for i, s := range criteria.Status {
			or[i] = fmt.Sprintf(`{Status} = %s`, quoteFormula(s))
		}
		clauses = append(clauses, fmt.Sprintf("OR(%s)", strings.Join(or, ", ")))
	}
	if len(criteria.PropertyType) > 0 {
		or := make([]string, len(criteria.PropertyType))
		for i, t := range criteria.PropertyType {
			or[i] = fmt.Sprintf(`{Property Type} = %s`, quoteFormula(t))
		}
		clauses = append(clauses, fmt.Sprintf("OR(%s)", strings.Join(or, ", ")))
	}
	if criteria.City != "" {
		clauses = append(clauses, fmt.Sprintf(`{City} = %s`, quoteFormula(criteria.City)))
	}
	if criteria.MinArea != nil {
		clauses = append(clauses, fmt.Sprintf(`{Total Area (sqm)} >= %g`, *criteria.MinArea))
	}
	if criteria.MaxArea != nil {
		clauses = append(clauses, fmt.Sprintf(`{Total Area (sqm)} <= %g`, *criteria.MaxArea))
	}

	if len(clauses) == 1 {
		return clauses[0]
	}
	return fmt.Sprintf("AND(%s)", strings.Join(clauses, ", "))
}

// quoteFormula escapes a string literal for the formula language.
func quoteFormula(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
