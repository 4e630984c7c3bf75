package events

import (
	"time"

	"github.com/ocai-community/eventfeed/pkg/ical"
)

// Event is the normalized record. Constructed fresh per request, never
// mutated afterwards.
type Event struct {
	ID    string
	Title string

	// Description is nil when upstream sent none. An empty string means
	// upstream sent a description with empty text; the encoder treats the
	// two differently.
	Description *string

	StartLocal string
	StartUTC   time.Time
	EndLocal   string
	EndUTC     time.Time
	Timezone   string

	URL    string
	Status string

	// Presentation-only fields, never serialized into ICS.
	IsFree   bool
	IsOnline bool
	LogoURL  *string

	OrganizationID string
}

// Normalize maps one raw upstream event into an Event. It reports false for
// records that must not reach the encoder: a missing id, or start/end UTC
// instants that do not parse. A single malformed record never aborts the
// batch.
func Normalize(raw RawEvent) (Event, bool) {
	if raw.ID == "" {
		return Event{}, false
	}
	start, err := time.Parse(time.RFC3339, raw.Start.UTC)
	if err != nil {
		return Event{}, false
	}
	end, err := time.Parse(time.RFC3339, raw.End.UTC)
	if err != nil {
		return Event{}, false
	}

	ev := Event{
		ID:             raw.ID,
		Title:          raw.Name.Text,
		StartLocal:     raw.Start.Local,
		StartUTC:       start,
		EndLocal:       raw.End.Local,
		EndUTC:         end,
		Timezone:       raw.Start.Timezone,
		URL:            raw.URL,
		Status:         raw.Status,
		IsFree:         raw.IsFree,
		IsOnline:       raw.OnlineEvent,
		OrganizationID: raw.OrganizationID,
	}
	if raw.Description != nil {
		text := raw.Description.Text
		ev.Description = &text
	}
	if raw.Logo != nil {
		url := raw.Logo.URL
		ev.LogoURL = &url
	}
	return ev, true
}

// NormalizeAll maps a raw collection page, dropping malformed records. The
// second result is the number of records dropped.
func NormalizeAll(raws []RawEvent) ([]Event, int) {
	out := make([]Event, 0, len(raws))
	for _, raw := range raws {
		ev, ok := Normalize(raw)
		if !ok {
			continue
		}
		out = append(out, ev)
	}
	return out, len(raws) - len(out)
}

// Calendar converts the record into the encoder's shape. Only the fields
// that belong in a VEVENT cross over.
func (e *Event) Calendar() ical.Event {
	return ical.Event{
		ID:            e.ID,
		Summary:       e.Title,
		Description:   e.Description,
		Start:         e.StartUTC,
		End:           e.EndUTC,
		URL:           e.URL,
		Status:        e.Status,
		OrganizerName: "Organization " + e.OrganizationID,
	}
}

// ToCalendar converts a normalized batch for the encoder, preserving order.
func ToCalendar(evs []Event) []ical.Event {
	out := make([]ical.Event, len(evs))
	for i := range evs {
		out[i] = evs[i].Calendar()
	}
	return out
}
