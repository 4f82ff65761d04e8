package mapper

import (
	"time"

	"daytrack/internal/adapter/http/dto"
	"daytrack/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:             task.ID,
		Text:           task.Text,
		Description:    task.Description,
		Notes:          task.Notes,
		Priority:       string(task.Priority),
		Category:       string(task.Category),
		Tags:           task.Tags,
		Recurring:      string(task.Recurring),
		Completed:      task.Completed,
		Progress:       task.Progress,
		IsDaily:        task.IsDaily,
		DailyReset:     task.DailyReset,
		CreatedAt:      task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      task.UpdatedAt.Format(time.RFC3339),
		CompletedDates: make([]string, 0, len(task.CompletedDates)),
		Subtasks:       make([]dto.SubtaskItem, 0, len(task.Subtasks)),
		Attachments:    make([]dto.AttachmentItem, 0, len(task.Attachments)),
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(time.RFC3339)
		item.DueDate = &value
	}
	if task.CompletedAt != nil {
		value := task.CompletedAt.Format(time.RFC3339)
		item.CompletedAt = &value
	}
	if task.EstimatedTime != nil {
		value := *task.EstimatedTime
		item.EstimatedTime = &value
	}
	if task.ActualTime != nil {
		value := *task.ActualTime
		item.ActualTime = &value
	}

	for _, completed := range task.CompletedDates {
		item.CompletedDates = append(item.CompletedDates, completed.Format(time.RFC3339))
	}
	for _, st := range task.Subtasks {
		item.Subtasks = append(item.Subtasks, dto.SubtaskItem(st))
	}
	for _, a := range task.Attachments {
		item.Attachments = append(item.Attachments, dto.AttachmentItem(a))
	}

	return item
}

func ToCategorySummaryItems(summaries []domain.CategorySummary) []dto.CategorySummaryItem {
	items := make([]dto.CategorySummaryItem, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, dto.CategorySummaryItem{
			Name:      string(summary.Name),
			Total:     summary.Total,
			Completed: summary.Completed,
			Pending:   summary.Pending,
			Color:     summary.Color,
		})
	}
	return items
}

func ToCategoryStatsResponse(stats domain.CategoryStats) dto.CategoryStatsResponse {
	priorityStats := make(map[string]int, len(stats.Priority))
	for priority, count := range stats.Priority {
		priorityStats[string(priority)] = count
	}
	return dto.CategoryStatsResponse{
		Category:      string(stats.Category),
		Total:         stats.Total,
		Completed:     stats.Completed,
		Pending:       stats.Pending,
		Overdue:       stats.Overdue,
		PriorityStats: priorityStats,
		Color:         stats.Color,
	}
}

func ToOverviewResponse(overview domain.Overview) dto.OverviewResponse {
	return dto.OverviewResponse{
		Total:          overview.Total,
		Completed:      overview.Completed,
		Pending:        overview.Pending,
		DueToday:       overview.DueToday,
		Overdue:        overview.Overdue,
		CompletionRate: overview.CompletionRate,
		DailyProgress:  overview.DailyProgress,
		DailyCompleted: overview.DailyCompleted,
		TotalDaily:     overview.TotalDaily,
	}
}
