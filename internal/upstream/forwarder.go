package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ocai-community/eventfeed/internal/config"
	"github.com/ocai-community/eventfeed/internal/events"
)

// forwarderClient posts the listing parameters to an automation endpoint
// that holds the provider token. Used when direct credentials are not
// distributed to this service. Response shape matches the provider's.
type forwarderClient struct {
	cfg    config.UpstreamConfig
	http   *http.Client
	logger zerolog.Logger
}

type forwardRequest struct {
	OrganizationID  string `json:"organization_id"`
	OrganizerFilter string `json:"organizer_filter"`
	Status          string `json:"status"`
}

func (c *forwarderClient) FetchEvents(ctx context.Context, status string) (*events.Collection, error) {
	body, err := json.Marshal(forwardRequest{
		OrganizationID:  c.cfg.OrganizationID,
		OrganizerFilter: c.cfg.OrganizerID,
		Status:          orDefault(status),
	})
	if err != nil {
		return nil, fmt.Errorf("encode forward request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ForwardURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build forward request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.ForwardToken)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("status", orDefault(status)).Msg("fetching events via forwarder")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forward request: %w", err)
	}
	return decodeCollection(resp)
}
