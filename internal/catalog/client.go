package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/raphaelgruber/eventsync/internal/models"
)

// DefaultBaseURL is the catalog API endpoint.
const DefaultBaseURL = "https://connpass.com/api/v2"

// eventURLPattern matches canonical catalog event pages, e.g.
// https://gophers.connpass.com/event/12345/
var eventURLPattern = regexp.MustCompile(`^https?://(?:[a-z0-9-]+\.)?connpass\.com/event/(\d+)/?`)

// ExtractEventID translates a canonical event page URL into the catalog's
// numeric event identifier. It returns false on anything it does not
// recognize; callers must treat that as an item-level condition, not a crash.
func ExtractEventID(rawURL string) (string, bool) {
	m := eventURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SearchResult is the outcome of a keyword search.
type SearchResult struct {
	Items      []models.CatalogItem
	TotalCount int
}

// Client talks to the external event catalog. Every operation funnels
// through the injected RateLimiter before issuing its network call.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *RateLimiter
	log     *slog.Logger
}

// NewClient creates a catalog client. If baseURL is empty, DefaultBaseURL is
// used. The limiter is shared state: pass the same instance to every client
// constructed in the process.
func NewClient(baseURL, apiKey string, limiter *RateLimiter, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: limiter,
		log:     log,
	}
}

// apiEvent is the catalog's event representation.
type apiEvent struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	StartedAt   string `json:"started_at"`
	EndedAt     string `json:"ended_at"`
	Description string `json:"description"`
}

// searchResponse is the payload of the keyword search endpoint.
type searchResponse struct {
	ResultsReturned  int        `json:"results_returned"`
	ResultsAvailable int        `json:"results_available"`
	Events           []apiEvent `json:"events"`
}

// apiPresentation is one presentation resource attached to an event.
type apiPresentation struct {
	Name             string  `json:"name"`
	URL              string  `json:"url"`
	ThumbnailURL     *string `json:"thumbnail_url"`
	PresentationType *string `json:"presentation_type"`
	Presenter        *struct {
		Nickname string `json:"nickname"`
	} `json:"presenter"`
	CreatedAt string `json:"created_at"`
}

type presentationsResponse struct {
	Presentations []apiPresentation `json:"presentations"`
}

// get paces, issues the request and classifies failures. The returned body
// is fully read and the response closed.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	c.limiter.Wait()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, transportError(err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.log.Debug("catalog request", "path", path)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, statusError(resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}
	return body, nil
}

// FetchMaterials retrieves the current presentation materials for an event.
// The returned list fully replaces whatever was stored before.
func (c *Client) FetchMaterials(ctx context.Context, eventID string) ([]models.MaterialItem, error) {
	body, err := c.get(ctx, "/events/"+eventID+"/presentations/", nil)
	if err != nil {
		return nil, err
	}

	var payload presentationsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, transportError(fmt.Errorf("decode presentations: %w", err))
	}

	materials := make([]models.MaterialItem, 0, len(payload.Presentations))
	for i, p := range payload.Presentations {
		providerCategory := ""
		if p.PresentationType != nil {
			providerCategory = *p.PresentationType
		}

		item := models.MaterialItem{
			ID:               fmt.Sprintf("%s-%d", eventID, i),
			Title:            p.Name,
			URL:              p.URL,
			ThumbnailURL:     p.ThumbnailURL,
			Category:         InferCategory(providerCategory, p.URL),
			ProviderCategory: p.PresentationType,
			CreatedAt:        parseEventTime(p.CreatedAt),
		}
		if p.Presenter != nil && p.Presenter.Nickname != "" {
			nickname := p.Presenter.Nickname
			item.Presenter = &nickname
		}
		materials = append(materials, item)
	}

	c.log.Debug("fetched materials", "event_id", eventID, "count", len(materials))
	return materials, nil
}

// SearchByKeyword searches the catalog and returns up to limit matches plus
// the total number of matches the catalog reports.
func (c *Client) SearchByKeyword(ctx context.Context, keyword string, limit int) (SearchResult, error) {
	query := url.Values{}
	query.Set("keyword", keyword)
	query.Set("count", strconv.Itoa(limit))

	body, err := c.get(ctx, "/events/", query)
	if err != nil {
		return SearchResult{}, err
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return SearchResult{}, transportError(fmt.Errorf("decode search: %w", err))
	}

	items := make([]models.CatalogItem, 0, len(payload.Events))
	for _, e := range payload.Events {
		items = append(items, models.CatalogItem{
			EventID:     strconv.Itoa(e.ID),
			Title:       e.Title,
			URL:         e.URL,
			StartsAt:    parseEventTime(e.StartedAt),
			EndsAt:      parseEventTime(e.EndedAt),
			Description: e.Description,
		})
	}

	c.log.Debug("search complete", "keyword", keyword, "returned", len(items), "available", payload.ResultsAvailable)
	return SearchResult{Items: items, TotalCount: payload.ResultsAvailable}, nil
}

// ValidateCredential checks the API key with a minimal search call.
// Any failure, whatever the kind, is reported as an invalid credential.
func (c *Client) ValidateCredential(ctx context.Context) bool {
	query := url.Values{}
	query.Set("count", "1")

	if _, err := c.get(ctx, "/events/", query); err != nil {
		c.log.Warn("credential validation failed", "error", err)
		return false
	}
	return true
}

// parseEventTime parses the catalog's RFC 3339 timestamps, returning the
// zero time for absent or unparseable values.
func parseEventTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
