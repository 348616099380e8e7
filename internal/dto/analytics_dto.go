package dto

type AnalyticsSummary struct {
	User          string           `json:"user"`
	TotalRequests int64            `json:"total_requests"`
	Breakdown     map[string]int64 `json:"breakdown"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
