// Package client provides an HTTP client for the officebase REST API.
package client

import (
	"bytes"
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

// Client is an HTTP client for the officebase API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// listResponse is the collection envelope the server wraps results in.
type listResponse struct {
	Data  []*listing.Listing `json:"data"`
	Total int                `json:"total"`
}

// ListOptions controls filtering for ListProjects. Zero values impose
// no constraint.
type ListOptions struct {
	Query        string
	City         string
	District     string
	Status       []string
	PropertyType []string
	MinArea      string
	MaxArea      string
	MinRent      string
	MaxRent      string
}

func (o ListOptions) values() url.Values {
	params := url.Values{}
	set := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}
	set("q", o.Query)
	set("city", o.City)
	set("district", o.District)
	set("minArea", o.MinArea)
	set("maxArea", o.MaxArea)
	set("minRent", o.MinRent)
	set("maxRent", o.MaxRent)
	for _, s := range o.Status {
		params.Add("status", s)
	}
	for _, pt := range o.PropertyType {
		params.Add("type", pt)
	}
	return params
}

// ListProjects returns the published projects, optionally filtered.
func (c *Client) ListProjects(opts ListOptions) ([]*listing.Listing, error) {
	path := "/api/projects"
	if params := opts.values(); len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp listResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// FeaturedProjects returns the featured subset. limit <= 0 means all.
func (c *Client) FeaturedProjects(limit int) ([]*listing.Listing, error) {
	path := "/api/projects/featured"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}

	var resp listResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetProject returns a single project by slug.
func (c *Client) GetProject(slug string) (*listing.Listing, error) {
	var l listing.Listing
	if err := c.get("/api/projects/"+url.PathEscape(slug), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// CompareProjects resolves ids into projects, preserving order.
func (c *Client) CompareProjects(ids []string) ([]*listing.Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))

	var resp listResponse
	if err := c.get("/api/projects/compare?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Cities returns the distinct cities with published projects.
func (c *Client) Cities() ([]string, error) {
	var resp struct {
		Data []string `json:"data"`
	}
	if err := c.get("/api/cities", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SubmitLead submits a space inquiry.
func (c *Client) SubmitLead(l lead.Lead) error {
	return c.post("/api/leads", l, nil)
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// do executes an HTTP request and handles error responses.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			if len(errResp.Details) > 0 {
				var parts []string
				for field, problem := range errResp.Details {
					parts = append(parts, field+": "+problem)
				}
				sort.Strings(parts)
				return fmt.Errorf("%s (%s)", errResp.Error, strings.Join(parts, "; "))
			}
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
