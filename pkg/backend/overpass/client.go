// Package overpass queries the live OpenStreetMap Overpass API.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultURL     = "https://overpass-api.de/api/interpreter"
	DefaultTimeout = 60 * time.Second
)

type Config struct {
	URL               string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables client side rate limiting
	UserAgent         string
}

type Client struct {
	url       string
	timeout   time.Duration
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	log       *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		url:       cfg.URL,
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(limit, 1),
		log:       log,
	}
}

func (c *Client) Name() string {
	return "overpass"
}

func (c *Client) Lookup(ctx context.Context, kind datastructure.Kind, id int64) (datastructure.RawFeature, error) {
	resp, err := c.run(ctx, lookupQuery(kind, id, c.timeout))
	if err != nil {
		return datastructure.RawFeature{}, err
	}
	if len(resp.Elements) == 0 {
		return datastructure.RawFeature{}, datastructure.ErrFeatureNotFound
	}
	return resp.Elements[0].toRawFeature()
}

func (c *Client) Query(ctx context.Context, criteria datastructure.SearchCriteria) ([]datastructure.RawFeature, error) {
	if criteria.Limit <= 0 {
		return []datastructure.RawFeature{}, nil
	}

	resp, err := c.run(ctx, searchQuery(criteria, c.timeout))
	if err != nil {
		return nil, err
	}

	features := make([]datastructure.RawFeature, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		f, err := el.toRawFeature()
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, nil
}

// run posts an Overpass QL query and decodes the JSON envelope.
func (c *Client) run(ctx context.Context, query string) (*response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("overpass rate limiter: %w", err)
	}

	body := url.Values{"data": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.log.Debug("overpass query", zap.Int("status", resp.StatusCode), zap.Duration("took", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("overpass error %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}
	if out.Remark != "" && len(out.Elements) == 0 && strings.Contains(out.Remark, "error") {
		return nil, fmt.Errorf("overpass runtime error: %s", out.Remark)
	}
	return &out, nil
}
