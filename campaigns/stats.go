package campaigns

import (
	"math"
	"time"
)

// recentWindow bounds Stats.RecentCampaigns.
const recentWindow = 7 * 24 * time.Hour

// Stats is the dashboard aggregate over every record.
type Stats struct {
	TotalCampaigns    int64 `json:"totalCampaigns"`
	TotalEmailsSent   int64 `json:"totalEmailsSent"`
	TotalEmailsFailed int64 `json:"totalEmailsFailed"`
	RecentCampaigns   int64 `json:"recentCampaigns"`
	SuccessRate       int   `json:"successRate"`
}

// SuccessRate is round(100*s/(s+f)) with halves rounded up, or 0 when
// nothing was attempted.
func SuccessRate(successful, failed int64) int {
	total := successful + failed
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(successful) / float64(total)))
}
