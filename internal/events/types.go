package events

// Raw payload shapes as Eventbrite's listing endpoint returns them. Optional
// fields are pointers so absence survives a decode/encode round trip instead
// of collapsing into zero values.

type TextField struct {
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
}

// When is Eventbrite's date triple. UTC is authoritative; local and
// timezone are display-only.
type When struct {
	Local    string `json:"local"`
	UTC      string `json:"utc"`
	Timezone string `json:"timezone"`
}

type LogoSize struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Logo struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Original    LogoSize `json:"original"`
	EdgeColor   *string  `json:"edge_color,omitempty"`
	AspectRatio *string  `json:"aspect_ratio,omitempty"`
}

type RawEvent struct {
	ID             string     `json:"id"`
	Name           TextField  `json:"name"`
	Start          When       `json:"start"`
	End            When       `json:"end"`
	URL            string     `json:"url"`
	Logo           *Logo      `json:"logo,omitempty"`
	Summary        *string    `json:"summary,omitempty"`
	Description    *TextField `json:"description,omitempty"`
	VenueID        *string    `json:"venue_id,omitempty"`
	Capacity       *int       `json:"capacity,omitempty"`
	IsFree         bool       `json:"is_free"`
	Status         string     `json:"status"`
	Currency       *string    `json:"currency,omitempty"`
	OnlineEvent    bool       `json:"online_event"`
	OrganizerID    string     `json:"organizer_id"`
	OrganizationID string     `json:"organization_id"`
}

type Pagination struct {
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
	PageCount  int `json:"page_count"`
}

// Collection is a single upstream page of events. The JSON feed passes it
// through verbatim; the ICS path normalizes each entry first.
type Collection struct {
	Events     []RawEvent  `json:"events"`
	Pagination *Pagination `json:"pagination,omitempty"`
}
