package dto

import "sports-scheduler/internal/model"

// DashboardResponse headline numbers for the caller's scope.
type DashboardResponse struct {
	UpcomingGames    int64               `json:"upcoming_games"`
	TotalAssignments int64               `json:"total_assignments"`
	ActiveOfficials  int64               `json:"active_officials"`
	RecentGames      []model.Game        `json:"recent_games"`
	RecentActivity   []model.ActivityLog `json:"recent_activity,omitempty"`
}

// CalendarLinkResponse the signed feed URL of an official.
type CalendarLinkResponse struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}
