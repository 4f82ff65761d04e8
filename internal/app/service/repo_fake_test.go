package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"daytrack/internal/core/domain"
	"daytrack/internal/core/ports"
)

// memoryRepo is an in-memory ports.TaskRepository used by the service
// tests. It honors the same filter and sort semantics as the MySQL
// repository, with insertion order standing in for created_at ties.
type memoryRepo struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
	order []string
}

var _ ports.TaskRepository = (*memoryRepo)(nil)

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{tasks: make(map[string]domain.Task)}
}

func (r *memoryRepo) Insert(_ context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)
	return nil
}

func (r *memoryRepo) Get(_ context.Context, id string) (domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (r *memoryRepo) Update(_ context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	r.removeFromOrder(id)
	return nil
}

func (r *memoryRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for _, id := range ids {
		if _, ok := r.tasks[id]; !ok {
			continue
		}
		delete(r.tasks, id)
		r.removeFromOrder(id)
		deleted++
	}
	return deleted, nil
}

func (r *memoryRepo) List(_ context.Context, filter ports.TaskFilter) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Task, 0, len(r.order))
	for _, id := range r.order {
		task := r.tasks[id]
		if matchesFilter(task, filter) {
			matched = append(matched, task)
		}
	}

	switch filter.Sort {
	case ports.SortPriorityDesc:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Priority.Rank() > matched[j].Priority.Rank()
		})
	case ports.SortPriorityDueDate:
		sort.SliceStable(matched, func(i, j int) bool {
			if matched[i].Priority.Rank() != matched[j].Priority.Rank() {
				return matched[i].Priority.Rank() > matched[j].Priority.Rank()
			}
			di, dj := matched[i].DueDate, matched[j].DueDate
			switch {
			case di == nil:
				return false
			case dj == nil:
				return true
			default:
				return di.Before(*dj)
			}
		})
	default:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	}

	return matched, nil
}

func (r *memoryRepo) Count(ctx context.Context, filter ports.TaskFilter) (int64, error) {
	tasks, err := r.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(tasks)), nil
}

func (r *memoryRepo) CountByPriority(_ context.Context, category domain.Category) (map[domain.Priority]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	grouped := make(map[domain.Priority]int64)
	for _, task := range r.tasks {
		if task.Category == category {
			grouped[task.Priority]++
		}
	}
	return grouped, nil
}

func (r *memoryRepo) removeFromOrder(id string) {
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

func matchesFilter(task domain.Task, filter ports.TaskFilter) bool {
	if filter.Completed != nil && task.Completed != *filter.Completed {
		return false
	}
	if filter.Category != nil && task.Category != *filter.Category {
		return false
	}
	if filter.IsDaily != nil && task.IsDaily != *filter.IsDaily {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(task.Text), needle) &&
			!strings.Contains(strings.ToLower(task.Description), needle) {
			return false
		}
	}
	if filter.DueFrom != nil {
		if task.DueDate == nil || task.DueDate.Before(*filter.DueFrom) {
			return false
		}
	}
	if filter.DueBefore != nil {
		if task.DueDate == nil || !task.DueDate.Before(*filter.DueBefore) {
			return false
		}
	}
	if filter.CompletedSince != nil {
		if task.CompletedAt == nil || task.CompletedAt.Before(*filter.CompletedSince) {
			return false
		}
	}
	return true
}
