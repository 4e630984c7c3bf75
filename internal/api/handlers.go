// Package api exposes the event feed over HTTP: a JSON listing for the web
// UI and an iCalendar download for subscribing clients.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ocai-community/eventfeed/internal/config"
	"github.com/ocai-community/eventfeed/internal/events"
	"github.com/ocai-community/eventfeed/internal/upstream"
	"github.com/ocai-community/eventfeed/pkg/ical"
)

const icsFilename = "events.ics"

// Outward message for the missing-configuration case; the web UI matches on
// this text.
const missingConfigMsg = "Missing required environment variables"

type Handlers struct {
	cfg    *config.Config
	client upstream.Client
	logger zerolog.Logger

	// now is swappable so encoder output is deterministic under test.
	now func() time.Time
}

// NewHandlers wires the feed endpoints. client may be nil when the upstream
// configuration is incomplete; event endpoints then fail per request while
// the diagnostic endpoints stay up.
func NewHandlers(cfg *config.Config, client upstream.Client, logger zerolog.Logger) *Handlers {
	return &Handlers{
		cfg:    cfg,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": h.cfg.ICS.ProductName})
}

// Env reports the non-secret configuration values for diagnostics. Unset
// values surface as a literal "not set" marker, never as empty strings.
func (h *Handlers) Env(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"organizationId": valueOrNotSet(h.cfg.Upstream.OrganizationID),
		"organizerId":    valueOrNotSet(h.cfg.Upstream.OrganizerID),
	})
}

// Events serves the JSON listing: the upstream page passed through
// verbatim, pagination included, so the UI sees every field the provider
// sent even for records the ICS path would drop.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		writeJSONError(w, http.StatusInternalServerError, missingConfigMsg)
		return
	}

	col, err := h.client.FetchEvents(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		code, msg := classify(err)
		writeJSONError(w, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, col)
}

// EventsICS serves the calendar download. Records that fail normalization
// are dropped rather than aborting the feed; an upstream failure never
// yields a partial document.
func (h *Handlers) EventsICS(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		http.Error(w, missingConfigMsg, http.StatusInternalServerError)
		return
	}

	col, err := h.client.FetchEvents(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		code, msg := classify(err)
		http.Error(w, msg, code)
		return
	}

	records, dropped := events.NormalizeAll(col.Events)
	if dropped > 0 {
		h.logger.Warn().Int("dropped", dropped).Msg("skipped malformed upstream records")
	}

	body := ical.Encode(events.ToCalendar(records), h.now(), ical.Options{
		ProdID:       h.cfg.ICS.BuildProdID(),
		UIDDomain:    h.cfg.ICS.UIDDomain,
		CalendarName: h.cfg.ICS.CalendarName,
		CalendarDesc: h.cfg.ICS.CalendarDesc,
		Color:        h.cfg.ICS.Color,
		Reminders:    h.cfg.ICS.Reminders,
	})

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+icsFilename+`"`)
	_, _ = w.Write([]byte(body))
}

// classify maps an upstream failure onto an outward status and message.
// Upstream HTTP errors keep their status code and reason; configuration and
// transport failures collapse into a generic 500.
func classify(err error) (int, string) {
	var se *upstream.StatusError
	switch {
	case errors.Is(err, upstream.ErrMissingConfig):
		return http.StatusInternalServerError, missingConfigMsg
	case errors.As(err, &se):
		return se.Code, "Eventbrite API error: " + se.Reason
	default:
		return http.StatusInternalServerError, "Failed to fetch events from Eventbrite"
	}
}

func valueOrNotSet(v string) string {
	if v == "" {
		return "not set"
	}
	return v
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
