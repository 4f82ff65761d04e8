package ports

import (
	"context"
	"time"

	"daytrack/internal/core/domain"
)

type SortOrder int

const (
	// SortCreatedDesc is the default listing order, newest first.
	SortCreatedDesc SortOrder = iota
	// SortPriorityDesc orders urgent first; ties keep insertion order.
	SortPriorityDesc
	// SortPriorityDueDate orders by priority desc then due date asc.
	SortPriorityDueDate
)

// TaskFilter describes the query shapes the store must support: exact
// match, case-insensitive substring search, date ranges and sorting.
type TaskFilter struct {
	Completed      *bool
	Category       *domain.Category
	IsDaily        *bool
	Search         string
	DueFrom        *time.Time
	DueBefore      *time.Time
	CompletedSince *time.Time
	Sort           SortOrder
}

type TaskRepository interface {
	Insert(ctx context.Context, task domain.Task) error
	Get(ctx context.Context, id string) (domain.Task, error)
	Update(ctx context.Context, task domain.Task) error
	Delete(ctx context.Context, id string) error
	// DeleteMany removes every existing id and reports how many records
	// were actually deleted; unknown ids are not an error.
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Count(ctx context.Context, filter TaskFilter) (int64, error)
	CountByPriority(ctx context.Context, category domain.Category) (map[domain.Priority]int64, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	ListTasks(ctx context.Context, completed *bool, search string) ([]domain.Task, error)
	ListCategoryTasks(ctx context.Context, category domain.Category, completed *bool, search string) ([]domain.Task, error)
	ReplaceTask(ctx context.Context, id string, input domain.ReplaceTaskInput) (domain.Task, error)
	PatchTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	DeleteTasks(ctx context.Context, ids []string) (int64, error)
	AddSubtask(ctx context.Context, id, text string) (domain.Task, error)
	PatchSubtask(ctx context.Context, id, subtaskID string, patch domain.SubtaskPatch) (domain.Task, error)
	RemoveSubtask(ctx context.Context, id, subtaskID string) (domain.Task, error)
	AddTag(ctx context.Context, id, tag string) (domain.Task, error)
	RemoveTag(ctx context.Context, id, tag string) (domain.Task, error)
	LogTime(ctx context.Context, id string, minutes int) (domain.Task, error)
}

type StatsService interface {
	CategorySummaries(ctx context.Context) ([]domain.CategorySummary, error)
	CategoryStats(ctx context.Context, category domain.Category) (domain.CategoryStats, error)
	ActiveDailyTasks(ctx context.Context) ([]domain.Task, error)
	Overview(ctx context.Context) (domain.Overview, error)
}
