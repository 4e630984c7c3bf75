package config

import "fmt"

// ICSConfig holds calendar-level metadata that is static per deployment.
type ICSConfig struct {
	CompanyName string
	ProductName string
	Version     string
	Language    string

	// UIDDomain is the suffix appended to every event UID. It must stay
	// stable across deployments so subscribing clients can dedupe.
	UIDDomain string

	CalendarName string
	CalendarDesc string
	Color        string
	Reminders    bool
}

func (cfg *ICSConfig) BuildProdID() string {
	if cfg.Version != "" {
		return fmt.Sprintf("-//%s//%s %s//%s",
			cfg.CompanyName, cfg.ProductName, cfg.Version, cfg.Language)
	}
	return fmt.Sprintf("-//%s//%s//%s",
		cfg.CompanyName, cfg.ProductName, cfg.Language)
}
