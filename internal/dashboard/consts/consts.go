package consts

// Redis key and channel names.
const (
	// TeamStatsKey caches the aggregated team stats payload
	TeamStatsKey = "aiboard:stats:teams"

	// ProjectEventChannel fans project change events out to peer instances
	ProjectEventChannel = "aiboard:events:project"
)
