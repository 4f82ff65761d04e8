package dto

type CategorySummaryItem struct {
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
	Color     string `json:"color"`
}

type CategoryStatsResponse struct {
	Category      string         `json:"category"`
	Total         int            `json:"total"`
	Completed     int            `json:"completed"`
	Pending       int            `json:"pending"`
	Overdue       int            `json:"overdue"`
	PriorityStats map[string]int `json:"priorityStats"`
	Color         string         `json:"color"`
}

type OverviewResponse struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	DueToday       int `json:"dueToday"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completionRate"`
	DailyProgress  int `json:"dailyProgress"`
	DailyCompleted int `json:"dailyCompleted"`
	TotalDaily     int `json:"totalDaily"`
}
