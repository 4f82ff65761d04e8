package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"daytrack/internal/core/domain"
)

// Day boundaries are UTC midnight everywhere: daily reset, dueToday,
// overdue and dailyCompleted all truncate to the same instant.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// roundPercent is round-half-away-from-zero; a zero denominator is 0,
// never an error.
func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

func clampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// finalize applies the normalize-on-write rules before every persist:
// trimmed non-empty text, fresh updatedAt, completedAt derived from
// completed, and a completedDates entry when a daily task transitions
// from incomplete to complete. It must succeed before any write.
func (s *TaskService) finalize(task *domain.Task, wasCompleted bool) error {
	task.Text = strings.TrimSpace(task.Text)
	if task.Text == "" {
		return fmt.Errorf("%w: task text is required", domain.ErrValidation)
	}

	now := s.now()
	task.UpdatedAt = now

	if task.Completed {
		if task.CompletedAt == nil {
			task.CompletedAt = &now
		}
		if task.IsDaily && !wasCompleted {
			task.CompletedDates = append(task.CompletedDates, now)
		}
	} else {
		task.CompletedAt = nil
	}

	return nil
}

// recomputeProgress derives progress from the subtask collection. It runs
// on every subtask change and supersedes any caller-supplied progress.
func recomputeProgress(task *domain.Task) {
	if len(task.Subtasks) == 0 {
		task.Progress = 0
		return
	}
	completed := 0
	for _, st := range task.Subtasks {
		if st.Completed {
			completed++
		}
	}
	task.Progress = roundPercent(completed, len(task.Subtasks))
}

// applyDailyReset flips a daily-reset task back to pending once a new
// calendar day begins. completedDates is an immutable audit history and
// is never truncated. The check is idempotent: it reports true at most
// once per day boundary and does nothing for a task already pending.
func applyDailyReset(task *domain.Task, today time.Time) bool {
	if !task.IsDaily || !task.DailyReset || !task.Completed {
		return false
	}
	if len(task.CompletedDates) == 0 {
		return false
	}
	last := task.CompletedDates[len(task.CompletedDates)-1]
	if !startOfDay(last).Before(today) {
		return false
	}

	task.Completed = false
	task.Progress = 0
	task.CompletedAt = nil
	return true
}

// completedForDay reports whether the most recent completion falls on the
// given day. Used to exclude already-done daily tasks from the active list.
func completedForDay(task domain.Task, day time.Time) bool {
	if len(task.CompletedDates) == 0 {
		return false
	}
	last := task.CompletedDates[len(task.CompletedDates)-1]
	return startOfDay(last).Equal(day)
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}

// normalizeSubtasks trims texts and assigns ids to new entries.
func normalizeSubtasks(subtasks []domain.Subtask) ([]domain.Subtask, error) {
	if len(subtasks) == 0 {
		return nil, nil
	}
	normalized := make([]domain.Subtask, 0, len(subtasks))
	for _, st := range subtasks {
		st.Text = strings.TrimSpace(st.Text)
		if st.Text == "" {
			return nil, fmt.Errorf("%w: subtask text is required", domain.ErrValidation)
		}
		if st.ID == "" {
			st.ID = domain.NewID()
		}
		normalized = append(normalized, st)
	}
	return normalized, nil
}

func validateClassification(priority domain.Priority, category domain.Category, recurring domain.Recurring) error {
	if !priority.Valid() {
		return fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, priority)
	}
	if !category.Valid() {
		return fmt.Errorf("%w: invalid category %q", domain.ErrValidation, category)
	}
	if !recurring.Valid() {
		return fmt.Errorf("%w: invalid recurring value %q", domain.ErrValidation, recurring)
	}
	return nil
}

func validateMinutes(field string, minutes *int) error {
	if minutes != nil && *minutes < 0 {
		return fmt.Errorf("%w: %s must not be negative", domain.ErrValidation, field)
	}
	return nil
}
