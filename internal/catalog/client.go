package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lcamargo/puzzlefeed/internal/logger"
)

// Client fetches puzzle packs from a remote catalog feed. The feed is a plain
// JSON index listing pack URLs, each resolving to a pack document.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("catalog"),
	}
}

type indexResp struct {
	Packs []string `json:"packs"`
}

// Pack is one downloadable puzzle pack.
type Pack struct {
	ID      string       `json:"id"`
	Puzzles []PackPuzzle `json:"puzzles"`
}

// PackPuzzle is a catalog puzzle as published by the feed. ID is the pack-scoped
// external identifier used for import deduplication.
type PackPuzzle struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Difficulty int    `json:"difficulty"`
	Title      string `json:"title"`
	Payload    string `json:"payload"`
}

// FetchIndex returns the pack URLs published by the catalog.
func (c *Client) FetchIndex(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog")
	url := c.baseURL + "/packs"

	log.Debug("fetching pack index from: %s", url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch pack index: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("index response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("index request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("pack index status %d: %s", resp.StatusCode, string(body))
	}

	var out indexResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode pack index: %v", err)
		return nil, err
	}

	log.Info("fetched index with %d packs", len(out.Packs))
	return out.Packs, nil
}

// FetchPack downloads one pack document.
func (c *Client) FetchPack(ctx context.Context, packURL string) (*Pack, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog").WithField("pack_url", packURL)

	log.Debug("fetching pack")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, packURL, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch pack: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("pack response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("pack request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("pack status %d: %s", resp.StatusCode, string(body))
	}

	var pack Pack
	if err := json.NewDecoder(resp.Body).Decode(&pack); err != nil {
		log.Error("failed to decode pack: %v", err)
		return nil, err
	}

	log.Info("fetched pack %s with %d puzzles", pack.ID, len(pack.Puzzles))
	return &pack, nil
}
