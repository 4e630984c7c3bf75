package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/ocai-community/eventfeed/internal/config"
	"github.com/ocai-community/eventfeed/internal/events"
)

// eventbriteClient calls the provider's listing endpoint with bearer auth.
type eventbriteClient struct {
	cfg    config.UpstreamConfig
	http   *http.Client
	logger zerolog.Logger
}

func (c *eventbriteClient) FetchEvents(ctx context.Context, status string) (*events.Collection, error) {
	q := url.Values{}
	q.Set("status", orDefault(status))
	q.Set("organizer_filter", c.cfg.OrganizerID)

	u := fmt.Sprintf("%s/organizations/%s/events/?%s",
		c.cfg.APIBase, url.PathEscape(c.cfg.OrganizationID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build eventbrite request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	c.logger.Debug().Str("status", orDefault(status)).Msg("fetching events from eventbrite")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eventbrite request: %w", err)
	}
	return decodeCollection(resp)
}
