package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/firesync/firesync/internal/models"
	"github.com/firesync/firesync/internal/stats"
)

var httpClient = &http.Client{Timeout: 8 * time.Second}

// Config holds API configuration
type Config struct {
	BaseURL string
}

// Client talks to the FireSync data API: catalogue reads and match reports.
type Client struct {
	config Config
}

func NewClient(baseURL string) *Client {
	return &Client{
		config: Config{BaseURL: baseURL},
	}
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.config.BaseURL, "/") + path
}

func (c *Client) apiGet(ctx context.Context, path string, out interface{}) error {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	req.Header.Set("Accept", "application/json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("api status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) apiPost(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 && resp.StatusCode != 201 {
		return fmt.Errorf("api status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchCatalog pulls the full weapon catalogue (records plus cached scores)
// from the data API.
func (c *Client) FetchCatalog(ctx context.Context) (*models.Catalog, error) {
	var cat models.Catalog
	if err := c.apiGet(ctx, "/api/weapons", &cat); err != nil {
		return nil, err
	}
	if cat.Len() == 0 {
		return nil, fmt.Errorf("api returned an empty catalogue")
	}
	if len(cat.Scores) != cat.Len() {
		return nil, fmt.Errorf("api catalogue has %d records but %d scores", cat.Len(), len(cat.Scores))
	}
	return &cat, nil
}

// ReportMatch posts a finished match summary.
func (c *Client) ReportMatch(ctx context.Context, m models.MatchSummary) error {
	return c.apiPost(ctx, "/api/matches", m, nil)
}

// FetchDailyStats reads today's best-margin stats.
func (c *Client) FetchDailyStats(ctx context.Context) (stats.DailyBest, error) {
	var d stats.DailyBest
	if err := c.apiGet(ctx, "/api/stats/daily", &d); err != nil {
		return stats.DailyBest{}, err
	}
	return d, nil
}
