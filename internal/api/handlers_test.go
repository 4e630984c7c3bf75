package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ocai-community/eventfeed/internal/config"
	"github.com/ocai-community/eventfeed/internal/events"
	"github.com/ocai-community/eventfeed/internal/upstream"
)

type stubClient struct {
	col   *events.Collection
	err   error
	calls int
}

func (s *stubClient) FetchEvents(ctx context.Context, status string) (*events.Collection, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.col, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Upstream: config.UpstreamConfig{
			OrganizationID: "100",
			OrganizerID:    "200",
			Token:          "t",
		},
		ICS: config.ICSConfig{
			CompanyName: "OCAI Calendar",
			ProductName: "Event Feed",
			Language:    "EN",
			UIDDomain:   "eventbrite.com",
		},
	}
}

func newTestHandlers(client upstream.Client) *Handlers {
	h := NewHandlers(testConfig(), client, zerolog.Nop())
	h.now = func() time.Time {
		return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	}
	return h
}

func fixtureCollection() *events.Collection {
	return &events.Collection{
		Events: []events.RawEvent{{
			ID:   "9001",
			Name: events.TextField{Text: "AI, Meetup"},
			Start: events.When{
				UTC: "2024-06-01T17:00:00Z", Local: "2024-06-01T10:00:00", Timezone: "America/Los_Angeles",
			},
			End: events.When{
				UTC: "2024-06-01T19:00:00Z", Local: "2024-06-01T12:00:00", Timezone: "America/Los_Angeles",
			},
			URL:            "https://www.eventbrite.com/e/9001",
			Status:         "live",
			OrganizationID: "100",
		}},
		Pagination: &events.Pagination{PageNumber: 1, PageSize: 50, PageCount: 1},
	}
}

func TestEventsMissingConfig(t *testing.T) {
	h := newTestHandlers(nil)

	rec := httptest.NewRecorder()
	h.Events(rec, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["error"] != "Missing required environment variables" {
		t.Errorf("error = %q", body["error"])
	}
}

// A missing organizer identifier must fail the request before any upstream
// call is attempted: the client constructor refuses, so the handlers never
// hold anything to call.
func TestMissingConfigAttemptsNoNetwork(t *testing.T) {
	cfg := testConfig()
	cfg.Upstream.OrganizerID = ""

	if _, err := upstream.New(cfg.Upstream, zerolog.Nop()); err == nil {
		t.Fatal("client constructed despite missing organizer identifier")
	}

	rec := httptest.NewRecorder()
	newTestHandlers(nil).Events(rec, httptest.NewRequest(http.MethodGet, "/api/events", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestEventsJSONPassthrough(t *testing.T) {
	h := newTestHandlers(&stubClient{col: fixtureCollection()})

	rec := httptest.NewRecorder()
	h.Events(rec, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type = %q", ct)
	}

	var col events.Collection
	if err := json.Unmarshal(rec.Body.Bytes(), &col); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(col.Events) != 1 || col.Events[0].Name.Text != "AI, Meetup" {
		t.Errorf("unexpected events: %+v", col.Events)
	}
	if col.Pagination == nil || col.Pagination.PageSize != 50 {
		t.Errorf("pagination not passed through: %+v", col.Pagination)
	}
}

func TestEventsUpstreamHTTPError(t *testing.T) {
	h := newTestHandlers(&stubClient{err: &upstream.StatusError{Code: 404, Reason: "Not Found"}})

	rec := httptest.NewRecorder()
	h.Events(rec, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "Eventbrite API error: Not Found" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestEventsICSSuccess(t *testing.T) {
	h := newTestHandlers(&stubClient{col: fixtureCollection()})

	rec := httptest.NewRecorder()
	h.EventsICS(rec, httptest.NewRequest(http.MethodGet, "/api/events.ics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="events.ics"` {
		t.Errorf("content disposition = %q", cd)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"UID:9001@eventbrite.com",
		"DTSTART:20240601T170000Z",
		"DTEND:20240601T190000Z",
		"SUMMARY:AI\\, Meetup",
		"STATUS:CONFIRMED",
		"DTSTAMP:20240520T120000Z",
		"END:VCALENDAR",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("ICS body missing %q", want)
		}
	}
}

func TestEventsICSDropsMalformedRecords(t *testing.T) {
	col := fixtureCollection()
	col.Events = append(col.Events, events.RawEvent{
		ID:     "bad",
		Start:  events.When{UTC: "not-a-date"},
		End:    events.When{UTC: "2024-06-01T19:00:00Z"},
		Status: "live",
	})
	h := newTestHandlers(&stubClient{col: col})

	rec := httptest.NewRecorder()
	h.EventsICS(rec, httptest.NewRequest(http.MethodGet, "/api/events.ics", nil))

	body := rec.Body.String()
	if got := strings.Count(body, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("emitted %d events, want 1 (malformed record dropped)", got)
	}
	if strings.Contains(body, "UID:bad@") {
		t.Error("malformed record leaked into ICS output")
	}
}

func TestEventsICSUpstreamHTTPError(t *testing.T) {
	h := newTestHandlers(&stubClient{err: &upstream.StatusError{Code: 404, Reason: "Not Found"}})

	rec := httptest.NewRecorder()
	h.EventsICS(rec, httptest.NewRequest(http.MethodGet, "/api/events.ics", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Not Found") {
		t.Errorf("body %q does not carry upstream reason", body)
	}
	if strings.Contains(body, "BEGIN:VCALENDAR") {
		t.Error("partial ICS emitted on upstream failure")
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q, want plain text", ct)
	}
}

func TestEventsICSUnreachable(t *testing.T) {
	h := newTestHandlers(&stubClient{err: context.DeadlineExceeded})

	rec := httptest.NewRecorder()
	h.EventsICS(rec, httptest.NewRequest(http.MethodGet, "/api/events.ics", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed to fetch events from Eventbrite") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestEnvReportsNotSet(t *testing.T) {
	cfg := testConfig()
	cfg.Upstream.OrganizerID = ""
	h := NewHandlers(cfg, nil, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Env(rec, httptest.NewRequest(http.MethodGet, "/api/env", nil))

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["organizationId"] != "100" {
		t.Errorf("organizationId = %q", body["organizationId"])
	}
	if body["organizerId"] != "not set" {
		t.Errorf("organizerId = %q, want literal not set marker", body["organizerId"])
	}
}

func TestRootBanner(t *testing.T) {
	h := newTestHandlers(nil)

	rec := httptest.NewRecorder()
	h.Root(rec, httptest.NewRequest(http.MethodGet, "/api/", nil))

	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["name"] != "Event Feed" {
		t.Errorf("name = %q", body["name"])
	}
}
