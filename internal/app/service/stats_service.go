package service

import (
	"context"
	"fmt"
	"time"

	"daytrack/internal/core/domain"
	"daytrack/internal/core/ports"
)

// StatsService is the aggregation engine. Every figure is recomputed on
// demand from the store; there is no cached aggregate state. Reads are
// independent queries, so concurrent mutations may skew a snapshot
// slightly, which is acceptable for summary views. Its only write is the
// lazy daily-reset check on the active-daily listing.
type StatsService struct {
	taskRepository ports.TaskRepository
	now            func() time.Time
}

func NewStatsService(taskRepository ports.TaskRepository) *StatsService {
	return &StatsService{
		taskRepository: taskRepository,
		now:            time.Now,
	}
}

var _ ports.StatsService = (*StatsService)(nil)

func (s *StatsService) CategorySummaries(ctx context.Context) ([]domain.CategorySummary, error) {
	categories := domain.Categories()
	summaries := make([]domain.CategorySummary, 0, len(categories))
	completedTrue := true

	for _, category := range categories {
		total, err := s.taskRepository.Count(ctx, ports.TaskFilter{Category: &category})
		if err != nil {
			return nil, err
		}
		completed, err := s.taskRepository.Count(ctx, ports.TaskFilter{
			Category:  &category,
			Completed: &completedTrue,
		})
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, domain.CategorySummary{
			Name:      category,
			Total:     int(total),
			Completed: int(completed),
			Pending:   int(total - completed),
			Color:     domain.CategoryColor(category),
		})
	}

	return summaries, nil
}

func (s *StatsService) CategoryStats(ctx context.Context, category domain.Category) (domain.CategoryStats, error) {
	if !category.Valid() {
		return domain.CategoryStats{}, fmt.Errorf("%w: invalid category %q", domain.ErrValidation, category)
	}

	completedTrue := true
	completedFalse := false
	now := s.now()

	total, err := s.taskRepository.Count(ctx, ports.TaskFilter{Category: &category})
	if err != nil {
		return domain.CategoryStats{}, err
	}
	completed, err := s.taskRepository.Count(ctx, ports.TaskFilter{
		Category:  &category,
		Completed: &completedTrue,
	})
	if err != nil {
		return domain.CategoryStats{}, err
	}
	overdue, err := s.taskRepository.Count(ctx, ports.TaskFilter{
		Category:  &category,
		Completed: &completedFalse,
		DueBefore: &now,
	})
	if err != nil {
		return domain.CategoryStats{}, err
	}

	grouped, err := s.taskRepository.CountByPriority(ctx, category)
	if err != nil {
		return domain.CategoryStats{}, err
	}
	histogram := make(map[domain.Priority]int, len(domain.Priorities()))
	for _, priority := range domain.Priorities() {
		histogram[priority] = int(grouped[priority])
	}

	return domain.CategoryStats{
		Category:  category,
		Total:     int(total),
		Completed: int(completed),
		Pending:   int(total - completed),
		Overdue:   int(overdue),
		Priority:  histogram,
		Color:     domain.CategoryColor(category),
	}, nil
}

// ActiveDailyTasks lists daily tasks still actionable today, urgent
// first. Candidates get the daily-reset check applied (and persisted)
// before filtering, so a task completed yesterday shows up pending again.
func (s *StatsService) ActiveDailyTasks(ctx context.Context) ([]domain.Task, error) {
	isDaily := true
	tasks, err := s.taskRepository.List(ctx, ports.TaskFilter{
		IsDaily: &isDaily,
		Sort:    ports.SortPriorityDesc,
	})
	if err != nil {
		return nil, err
	}

	today := startOfDay(s.now())
	active := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if applyDailyReset(&task, today) {
			task.UpdatedAt = s.now()
			if err := s.taskRepository.Update(ctx, task); err != nil {
				return nil, err
			}
		}
		if task.DailyReset && task.Completed && completedForDay(task, today) {
			continue
		}
		active = append(active, task)
	}

	return active, nil
}

func (s *StatsService) Overview(ctx context.Context) (domain.Overview, error) {
	completedTrue := true
	completedFalse := false
	isDaily := true
	today := startOfDay(s.now())
	tomorrow := today.AddDate(0, 0, 1)

	total, err := s.taskRepository.Count(ctx, ports.TaskFilter{})
	if err != nil {
		return domain.Overview{}, err
	}
	completed, err := s.taskRepository.Count(ctx, ports.TaskFilter{Completed: &completedTrue})
	if err != nil {
		return domain.Overview{}, err
	}
	dueToday, err := s.taskRepository.Count(ctx, ports.TaskFilter{
		Completed: &completedFalse,
		DueFrom:   &today,
		DueBefore: &tomorrow,
	})
	if err != nil {
		return domain.Overview{}, err
	}
	overdue, err := s.taskRepository.Count(ctx, ports.TaskFilter{
		Completed: &completedFalse,
		DueBefore: &today,
	})
	if err != nil {
		return domain.Overview{}, err
	}
	dailyCompleted, err := s.taskRepository.Count(ctx, ports.TaskFilter{
		IsDaily:        &isDaily,
		Completed:      &completedTrue,
		CompletedSince: &today,
	})
	if err != nil {
		return domain.Overview{}, err
	}
	totalDaily, err := s.taskRepository.Count(ctx, ports.TaskFilter{IsDaily: &isDaily})
	if err != nil {
		return domain.Overview{}, err
	}

	return domain.Overview{
		Total:          int(total),
		Completed:      int(completed),
		Pending:        int(total - completed),
		DueToday:       int(dueToday),
		Overdue:        int(overdue),
		DailyCompleted: int(dailyCompleted),
		TotalDaily:     int(totalDaily),
		CompletionRate: roundPercent(int(completed), int(total)),
		DailyProgress:  roundPercent(int(dailyCompleted), int(totalDaily)),
	}, nil
}
