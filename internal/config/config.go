package config

import "os"

type HTTPConfig struct {
	Addr string
}

// UpstreamConfig selects one of two credential pathways: a direct Eventbrite
// bearer token, or a forwarding endpoint that holds the token on our behalf.
// Exactly one pathway is expected per deployment.
type UpstreamConfig struct {
	APIBase        string
	OrganizationID string
	OrganizerID    string
	Token          string
	ForwardURL     string
	ForwardToken   string
}

type Config struct {
	HTTP     HTTPConfig
	Upstream UpstreamConfig
	ICS      ICSConfig
	LogLevel string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return &Config{
		HTTP: HTTPConfig{
			Addr: getenv("HTTP_ADDR", ":8080"),
		},
		Upstream: UpstreamConfig{
			APIBase:        getenv("EVENTBRITE_API_BASE", "https://www.eventbriteapi.com/v3"),
			OrganizationID: getenv("ORGANIZATION_ID", ""),
			OrganizerID:    getenv("ORGANIZER_ID", ""),
			Token:          getenv("PRIVATE_TOKEN", ""),
			ForwardURL:     getenv("FORWARD_URL", ""),
			ForwardToken:   getenv("FORWARD_TOKEN", ""),
		},
		ICS: ICSConfig{
			CompanyName:  getenv("ICS_COMPANY_NAME", "OCAI Calendar"),
			ProductName:  getenv("ICS_PRODUCT_NAME", "Event Feed"),
			Version:      getenv("ICS_VERSION", ""),
			Language:     getenv("ICS_LANGUAGE", "EN"),
			UIDDomain:    getenv("ICS_UID_DOMAIN", "eventbrite.com"),
			CalendarName: getenv("ICS_CALENDAR_NAME", ""),
			CalendarDesc: getenv("ICS_CALENDAR_DESC", ""),
			Color:        getenv("ICS_CALENDAR_COLOR", ""),
			Reminders:    getenv("ICS_REMINDERS", "true") == "true",
		},
		LogLevel: getenv("LOG_LEVEL", "info"),
	}, nil
}
