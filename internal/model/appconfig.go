package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied when the corresponding flag is not given
	DefaultDistribute bool   `json:"default_distribute"`
	DefaultManifest   bool   `json:"default_manifest"`
	OutputDir         string `json:"output_dir"`
	FleetPath         string `json:"fleet_path"`

	// Application preferences
	RecentPlans []string `json:"recent_plans"`
}

// maxRecentPlans caps the recent-plan history length.
const maxRecentPlans = 10

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultDistribute: false,
		DefaultManifest:   false,
		OutputDir:         ".",
		FleetPath:         "",
		RecentPlans:       []string{},
	}
}

// AddRecentPlan records a plan path at the front of the recent list,
// de-duplicating and trimming to the history cap.
func (c *AppConfig) AddRecentPlan(path string) {
	recent := []string{path}
	for _, p := range c.RecentPlans {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentPlans {
		recent = recent[:maxRecentPlans]
	}
	c.RecentPlans = recent
}
