package ical

import "time"

// Event is one calendar entry to serialize. Start and End are UTC instants;
// the encoder never consults wall-clock or timezone data.
type Event struct {
	// ID is the stable source identifier. The emitted UID is
	// "<ID>@<Options.UIDDomain>", so the same source event always yields
	// the same UID and subscribing clients can detect updates instead of
	// accumulating duplicates.
	ID string

	Summary string

	// Description nil means no DESCRIPTION line at all. A non-nil empty
	// string emits an empty DESCRIPTION line.
	Description *string

	Start time.Time
	End   time.Time

	URL string

	// Status is the provider's status string ("live", "canceled", ...).
	Status string

	// OrganizerName is a display name only; no mailto is available.
	OrganizerName string
}
