package dto

// AdminDashboardResponse aggregates read-only administrative statistics
type AdminDashboardResponse struct {
	TotalUsers          int64                  `json:"totalUsers"`
	TotalEvents         int64                  `json:"totalEvents"`
	ActiveEvents        int64                  `json:"activeEvents"`
	TotalRegistrations  int64                  `json:"totalRegistrations"`
	RecentRegistrations []RegistrationResponse `json:"recentRegistrations"`
	UpcomingEvents      []EventResponse        `json:"upcomingEvents"`
	RecentFeedback      []MessageResponse      `json:"recentFeedback"`
}
