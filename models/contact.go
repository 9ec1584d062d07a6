package models

// ContactRecord is the per-target output unit of a run. The batch runner
// creates exactly one record per target, in target order, and never mutates
// it after emission. A target whose scrape fails still yields a record with
// empty fields.
type ContactRecord struct {
	// Target is the normalized domain/URL this record was scraped from.
	Target string `json:"url"`

	// Emails and Phones are deduplicated; ordering within each slice is
	// not significant.
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`

	// One URL per platform, first match wins; empty when absent.
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
}

// EmptyRecord returns the degraded record emitted for a target whose
// navigation or extraction failed.
func EmptyRecord(target string) ContactRecord {
	return ContactRecord{
		Target: target,
		Emails: []string{},
		Phones: []string{},
	}
}

// PoolStats reports the state of the browser session for health checks.
type PoolStats struct {
	MaxPages    int `json:"max_pages"`
	ActivePages int `json:"active_pages"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status    string    `json:"status"` // "healthy" or "degraded"
	Uptime    string    `json:"uptime"`
	PoolStats PoolStats `json:"pool_stats"`
	Version   string    `json:"version"`
}
