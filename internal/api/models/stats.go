package models

import "time"

// ServerStatsResponse contains server runtime statistics.
type ServerStatsResponse struct {
	Uptime        string              `json:"uptime"`
	UptimeSeconds int64               `json:"uptime_seconds"`
	StartTime     time.Time           `json:"start_time"`
	GoRoutines    int                 `json:"goroutines"`
	MemoryAllocMB float64             `json:"memory_alloc_mb"`
	MemoryRSSMB   float64             `json:"memory_rss_mb"`
	NumCPU        int                 `json:"num_cpu"`
	Authority     AuthorityStats      `json:"authority"`
	Store         *StoreStatsResponse `json:"store,omitempty"`
}

// AuthorityStats summarizes the root authority's configuration.
type AuthorityStats struct {
	Controllers      int    `json:"controllers"`
	DefaultRegistrar string `json:"default_registrar"`
}

// StoreStatsResponse contains row counts of the persistent store.
type StoreStatsResponse struct {
	Nodes         int64 `json:"nodes"`
	OracleRecords int64 `json:"oracle_records"`
	Registrations int64 `json:"registrations"`
}
