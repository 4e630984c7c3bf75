// Package upstream fetches event listings from Eventbrite, either directly
// or through a forwarding endpoint that holds the API token on our behalf.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ocai-community/eventfeed/internal/config"
	"github.com/ocai-community/eventfeed/internal/events"
)

// DefaultStatus is the listing filter applied when the caller supplies none.
const DefaultStatus = "live"

// ErrMissingConfig means one or more required configuration values are
// absent. No network call is attempted in that state.
var ErrMissingConfig = errors.New("missing required environment variables")

// StatusError is a non-2xx upstream response. Code and Reason are passed
// through to the caller verbatim.
type StatusError struct {
	Code   int
	Reason string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream responded %d: %s", e.Code, e.Reason)
}

// Client fetches a single page of events matching a status filter. Exactly
// one attempt per call; the subscribing calendar client retries by
// re-requesting, so retrying here would only stack latency.
type Client interface {
	FetchEvents(ctx context.Context, status string) (*events.Collection, error)
}

// New selects a backend from which credential pathway the configuration
// carries: a direct Eventbrite token wins over a forwarding endpoint. The
// organization and organizer identifiers are required either way.
func New(cfg config.UpstreamConfig, logger zerolog.Logger) (Client, error) {
	if cfg.OrganizationID == "" || cfg.OrganizerID == "" {
		return nil, ErrMissingConfig
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	switch {
	case cfg.Token != "":
		return &eventbriteClient{cfg: cfg, http: httpClient, logger: logger}, nil
	case cfg.ForwardURL != "" && cfg.ForwardToken != "":
		return &forwarderClient{cfg: cfg, http: httpClient, logger: logger}, nil
	}
	return nil, ErrMissingConfig
}

func decodeCollection(resp *http.Response) (*events.Collection, error) {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Reason: reasonPhrase(resp)}
	}

	var col events.Collection
	if err := json.NewDecoder(resp.Body).Decode(&col); err != nil {
		return nil, fmt.Errorf("decode upstream response: %w", err)
	}
	return &col, nil
}

func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

func orDefault(status string) string {
	if status == "" {
		return DefaultStatus
	}
	return status
}
