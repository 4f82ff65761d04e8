package dto

type SubtaskItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type AttachmentItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

type TaskItem struct {
	ID             string           `json:"id"`
	Text           string           `json:"text"`
	Description    string           `json:"description"`
	Notes          string           `json:"notes"`
	Priority       string           `json:"priority"`
	Category       string           `json:"category"`
	Tags           []string         `json:"tags"`
	DueDate        *string          `json:"dueDate,omitempty"`
	EstimatedTime  *int             `json:"estimatedTime,omitempty"`
	ActualTime     *int             `json:"actualTime,omitempty"`
	Recurring      string           `json:"recurring"`
	Completed      bool             `json:"completed"`
	CompletedAt    *string          `json:"completedAt,omitempty"`
	Progress       int              `json:"progress"`
	IsDaily        bool             `json:"isDaily"`
	DailyReset     bool             `json:"dailyReset"`
	CompletedDates []string         `json:"completedDates"`
	Subtasks       []SubtaskItem    `json:"subtasks"`
	Attachments    []AttachmentItem `json:"attachments"`
	CreatedAt      string           `json:"createdAt"`
	UpdatedAt      string           `json:"updatedAt"`
}

// TaskPayload is the decoded body of create, replace and patch requests.
// Everything is a pointer so the validation package can tell absent
// fields from explicit nulls via the raw JSON map.
type TaskPayload struct {
	Text          *string             `json:"text"`
	Description   *string             `json:"description"`
	Notes         *string             `json:"notes"`
	Completed     *bool               `json:"completed"`
	Priority      *string             `json:"priority"`
	Category      *string             `json:"category"`
	Tags          []string            `json:"tags"`
	DueDate       *string             `json:"dueDate"`
	EstimatedTime *int                `json:"estimatedTime"`
	ActualTime    *int                `json:"actualTime"`
	Recurring     *string             `json:"recurring"`
	IsDaily       *bool               `json:"isDaily"`
	DailyReset    *bool               `json:"dailyReset"`
	Progress      *int                `json:"progress"`
	Subtasks      []SubtaskPayload    `json:"subtasks"`
	Attachments   []AttachmentPayload `json:"attachments"`
}

type SubtaskPayload struct {
	ID        *string `json:"id"`
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type AttachmentPayload struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
	Type *string `json:"type"`
}

type AddSubtaskRequest struct {
	Text string `json:"text"`
}

type PatchSubtaskRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type AddTagRequest struct {
	Tag string `json:"tag"`
}

type LogTimeRequest struct {
	Minutes *int `json:"minutes"`
}

type DeleteTasksRequest struct {
	IDs []string `json:"ids"`
}

type DeleteTaskResponse struct {
	Message string `json:"message"`
}

type DeleteTasksResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}
