// Package canonical resolves and caches externally-hosted canonical
// resources (value sets, code systems) referenced from question schemas.
// Resolution failures are typed so callers can distinguish "enrichment
// unavailable" from a validation failure.
package canonical

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a fetched resource stays fresh.
const DefaultTTL = time.Hour

// maxPayloadBytes caps how much of a canonical resource is read.
const maxPayloadBytes = 4 << 20

// ResolutionError reports a canonical resource that could not be fetched or
// parsed. It is never silently coerced into an empty payload.
type ResolutionError struct {
	URL string
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve canonical %s: %v", e.URL, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Resource is a cached canonical resource. Instances are replaced wholesale
// on refresh, never mutated in place.
type Resource struct {
	URL         string    `json:"url"`
	Type        string    `json:"type"`
	Payload     any       `json:"payload"`
	LastFetched time.Time `json:"lastFetched"`
}

// ResourceInfo is the cache snapshot entry exposed to callers.
type ResourceInfo struct {
	URL         string    `json:"url"`
	Type        string    `json:"type"`
	LastFetched time.Time `json:"lastFetched"`
}

// Service caches canonical resources with time-based invalidation. Duplicate
// in-flight resolutions for the same URL are coalesced into a single fetch
// shared by all waiters.
type Service struct {
	client *http.Client
	ttl    time.Duration
	now    func() time.Time

	mu    sync.RWMutex
	cache map[string]*Resource
	group singleflight.Group
}

// Option customizes a Service.
type Option func(*Service)

// WithHTTPClient overrides the HTTP client used for fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) { s.client = c }
}

// WithTTL overrides the freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithClock overrides the time source. Tests use this to expire entries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an empty canonical cache.
func NewService(opts ...Option) *Service {
	s := &Service{
		client: &http.Client{Timeout: 30 * time.Second},
		ttl:    DefaultTTL,
		now:    time.Now,
		cache:  make(map[string]*Resource),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize seeds the cache with persisted resources from a collaborator.
// Without seeds the cache starts empty.
func (s *Service) Initialize(seed []*Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range seed {
		if r == nil || r.URL == "" {
			continue
		}
		s.cache[r.URL] = r
	}
}

// Resources returns a snapshot of the cached resources, sorted by URL.
func (s *Service) Resources() []ResourceInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ResourceInfo, 0, len(s.cache))
	for _, r := range s.cache {
		out = append(out, ResourceInfo{URL: r.URL, Type: r.Type, LastFetched: r.LastFetched})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out
}

func (s *Service) fresh(r *Resource) bool {
	return r != nil && s.now().Sub(r.LastFetched) < s.ttl
}

// Resolve returns the cached resource when fresh, otherwise fetches it. On
// fetch failure a previously cached (stale) value is retained and returned;
// with nothing cached the typed ResolutionError surfaces to the caller and
// the next request retries.
func (s *Service) Resolve(ctx context.Context, url string) (*Resource, error) {
	if url == "" {
		return nil, &ResolutionError{URL: url, Err: fmt.Errorf("url is required")}
	}

	s.mu.RLock()
	cached := s.cache[url]
	s.mu.RUnlock()
	if s.fresh(cached) {
		return cached, nil
	}

	v, err, _ := s.group.Do(url, func() (any, error) {
		// Another waiter may have refreshed the entry while this call was
		// queued on the flight group.
		s.mu.RLock()
		current := s.cache[url]
		s.mu.RUnlock()
		if s.fresh(current) {
			return current, nil
		}

		res, fetchErr := s.fetch(ctx, url)
		if fetchErr != nil {
			if current != nil {
				// Keep serving the stale value until a refresh succeeds.
				return current, nil
			}
			return nil, fetchErr
		}

		s.mu.Lock()
		s.cache[url] = res
		s.mu.Unlock()
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Resource), nil
}

func (s *Service) fetch(ctx context.Context, url string) (*Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ResolutionError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/fhir+json, application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &ResolutionError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ResolutionError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, &ResolutionError{URL: url, Err: err}
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ResolutionError{URL: url, Err: fmt.Errorf("parse payload: %w", err)}
	}

	return &Resource{
		URL:         url,
		Type:        resourceType(payload),
		Payload:     payload,
		LastFetched: s.now(),
	}, nil
}

// resourceType reports the FHIR resourceType of a payload, or "unknown".
func resourceType(payload any) string {
	doc, ok := payload.(map[string]any)
	if !ok {
		return "unknown"
	}
	if t, ok := doc["resourceType"].(string); ok && t != "" {
		return t
	}
	return "unknown"
}
