// Package ical serializes event feeds into RFC 5545 iCalendar documents.
//
// The encoder is deliberately hand-rolled line by line: subscribing calendar
// clients silently reject documents with wrong line endings or unescaped
// text, so every byte of the output is pinned down here rather than left to
// a general-purpose builder.
package ical

import (
	"strings"
	"time"
)

const dateTimeLayout = "20060102T150405Z"

// reminder lead time before DTSTART
const alarmTrigger = "-PT90M"

// Options carries calendar-level metadata, static per deployment.
type Options struct {
	// ProdID is the PRODID value, e.g. "-//OCAI Calendar//Event Feed//EN".
	ProdID string

	// UIDDomain suffixes every UID. Must stay stable across requests.
	UIDDomain string

	// Optional calendar display metadata. Empty values emit no line.
	CalendarName string
	CalendarDesc string
	Color        string

	// Reminders adds a 90-minute display alarm to every event.
	Reminders bool
}

// Encode serializes events into a single VCALENDAR document, one VEVENT per
// input in input order. It is pure: for a fixed input and a fixed now (used
// only for DTSTAMP) the output is byte-identical. Lines are joined with CRLF
// as RFC 5545 requires; LF-only output misparses in common clients.
//
// An empty input yields a valid calendar with zero VEVENT blocks.
func Encode(events []Event, now time.Time, opts Options) string {
	lines := make([]string, 0, 8+13*len(events))

	lines = append(lines,
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:"+opts.ProdID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	)
	if opts.CalendarName != "" {
		lines = append(lines, "X-WR-CALNAME:"+EscapeText(opts.CalendarName))
	}
	if opts.CalendarDesc != "" {
		lines = append(lines, "X-WR-CALDESC:"+EscapeText(opts.CalendarDesc))
	}
	if opts.Color != "" {
		lines = append(lines, "X-APPLE-CALENDAR-COLOR:"+opts.Color)
	}

	stamp := FormatDateTime(now)

	for _, ev := range events {
		lines = append(lines, "BEGIN:VEVENT")
		lines = append(lines, "UID:"+ev.ID+"@"+opts.UIDDomain)
		lines = append(lines, "DTSTART:"+FormatDateTime(ev.Start))
		lines = append(lines, "DTEND:"+FormatDateTime(ev.End))
		lines = append(lines, "SUMMARY:"+EscapeText(ev.Summary))
		if ev.Description != nil {
			lines = append(lines, "DESCRIPTION:"+EscapeText(*ev.Description))
		}
		lines = append(lines, "URL:"+ev.URL)
		lines = append(lines, "STATUS:"+StatusName(ev.Status))
		lines = append(lines, "DTSTAMP:"+stamp)
		if ev.OrganizerName != "" {
			lines = append(lines, "ORGANIZER:CN="+EscapeText(ev.OrganizerName))
		}
		if opts.Reminders {
			lines = append(lines,
				"BEGIN:VALARM",
				"TRIGGER:"+alarmTrigger,
				"ACTION:DISPLAY",
				"DESCRIPTION:"+EscapeText(ev.Summary),
				"END:VALARM",
			)
		}
		lines = append(lines, "END:VEVENT")
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n")
}

// StatusName maps a provider status onto an RFC 5545 STATUS value. Anything
// that is not live or canceled (started, completed, draft, ...) becomes
// TENTATIVE.
func StatusName(status string) string {
	switch status {
	case "live":
		return "CONFIRMED"
	case "canceled":
		return "CANCELLED"
	default:
		return "TENTATIVE"
	}
}

// FormatDateTime renders an instant as an RFC 5545 UTC date-time,
// YYYYMMDDTHHMMSSZ. The instant is converted to UTC first.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(dateTimeLayout)
}

// EscapeText escapes a free-text property value per RFC 5545 §3.3.11.
// Backslash must go first or the later substitutions would be
// double-escaped. Carriage returns are dropped, so CRLF in input collapses
// to the literal two-character "\n" sequence.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
