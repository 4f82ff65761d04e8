package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"daytrack/internal/core/domain"
	"daytrack/internal/core/ports"
)

// TaskService is the lifecycle engine: every mutation normalizes and
// derives fields here before the record is persisted. It holds no state
// of its own; concurrent mutations of the same task are serialized by
// the store.
type TaskService struct {
	taskRepository ports.TaskRepository
	now            func() time.Time
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{
		taskRepository: taskRepository,
		now:            time.Now,
	}
}

var _ ports.TaskService = (*TaskService)(nil)

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if input.Category == "" {
		input.Category = domain.CategoryPersonal
	}
	if input.Recurring == "" {
		input.Recurring = domain.RecurringNone
	}
	if err := validateClassification(input.Priority, input.Category, input.Recurring); err != nil {
		return domain.Task{}, err
	}
	if err := validateMinutes("estimatedTime", input.EstimatedTime); err != nil {
		return domain.Task{}, err
	}
	subtasks, err := normalizeSubtasks(input.Subtasks)
	if err != nil {
		return domain.Task{}, err
	}

	now := s.now()
	task := domain.Task{
		ID:            domain.NewID(),
		Text:          input.Text,
		Description:   input.Description,
		Notes:         input.Notes,
		Priority:      input.Priority,
		Category:      input.Category,
		Tags:          normalizeTags(input.Tags),
		DueDate:       input.DueDate,
		EstimatedTime: input.EstimatedTime,
		Recurring:     input.Recurring,
		IsDaily:       input.IsDaily,
		DailyReset:    input.DailyReset,
		Subtasks:      subtasks,
		CreatedAt:     now,
	}
	recomputeProgress(&task)
	if err := s.finalize(&task, false); err != nil {
		return domain.Task{}, err
	}

	if err := s.taskRepository.Insert(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return s.taskRepository.Get(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, completed *bool, search string) ([]domain.Task, error) {
	return s.taskRepository.List(ctx, ports.TaskFilter{
		Completed: completed,
		Search:    strings.TrimSpace(search),
		Sort:      ports.SortCreatedDesc,
	})
}

func (s *TaskService) ListCategoryTasks(ctx context.Context, category domain.Category, completed *bool, search string) ([]domain.Task, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: invalid category %q", domain.ErrValidation, category)
	}
	return s.taskRepository.List(ctx, ports.TaskFilter{
		Category:  &category,
		Completed: completed,
		Search:    strings.TrimSpace(search),
		Sort:      ports.SortPriorityDueDate,
	})
}

func (s *TaskService) ReplaceTask(ctx context.Context, id string, input domain.ReplaceTaskInput) (domain.Task, error) {
	if err := validateClassification(input.Priority, input.Category, input.Recurring); err != nil {
		return domain.Task{}, err
	}
	if err := validateMinutes("estimatedTime", input.EstimatedTime); err != nil {
		return domain.Task{}, err
	}
	if err := validateMinutes("actualTime", input.ActualTime); err != nil {
		return domain.Task{}, err
	}
	subtasks, err := normalizeSubtasks(input.Subtasks)
	if err != nil {
		return domain.Task{}, err
	}

	task, err := s.taskRepository.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	wasCompleted := task.Completed

	task.Text = input.Text
	task.Description = input.Description
	task.Notes = input.Notes
	task.Priority = input.Priority
	task.Category = input.Category
	task.Tags = normalizeTags(input.Tags)
	task.DueDate = input.DueDate
	task.EstimatedTime = input.EstimatedTime
	task.ActualTime = input.ActualTime
	task.Recurring = input.Recurring
	task.Completed = input.Completed
	task.IsDaily = input.IsDaily
	task.DailyReset = input.DailyReset
	task.Subtasks = subtasks
	task.Attachments = input.Attachments

	if len(task.Subtasks) > 0 {
		recomputeProgress(&task)
	} else {
		task.Progress = clampProgress(input.Progress)
	}

	if err := s.finalize(&task, wasCompleted); err != nil {
		return domain.Task{}, err
	}
	if err := s.taskRepository.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) PatchTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	if err := validatePatch(patch); err != nil {
		return domain.Task{}, err
	}
	subtasks, err := normalizeSubtasks(patch.Subtasks)
	if err != nil {
		return domain.Task{}, err
	}

	task, err := s.taskRepository.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	wasCompleted := task.Completed

	if patch.Text != nil {
		task.Text = *patch.Text
	}
	if patch.DescriptionSet {
		task.Description = stringOrEmpty(patch.Description)
	}
	if patch.NotesSet {
		task.Notes = stringOrEmpty(patch.Notes)
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.TagsSet {
		task.Tags = normalizeTags(patch.Tags)
	}
	if patch.DueDateSet {
		task.DueDate = patch.DueDate
	}
	if patch.EstimatedTimeSet {
		task.EstimatedTime = patch.EstimatedTime
	}
	if patch.ActualTimeSet {
		task.ActualTime = patch.ActualTime
	}
	if patch.Recurring != nil {
		task.Recurring = *patch.Recurring
	}
	if patch.IsDaily != nil {
		task.IsDaily = *patch.IsDaily
	}
	if patch.DailyReset != nil {
		task.DailyReset = *patch.DailyReset
	}

	switch {
	case patch.SubtasksSet:
		// A replaced subtask collection supersedes any caller progress.
		task.Subtasks = subtasks
		recomputeProgress(&task)
	case patch.Progress != nil:
		task.Progress = clampProgress(*patch.Progress)
	}

	if err := s.finalize(&task, wasCompleted); err != nil {
		return domain.Task{}, err
	}
	if err := s.taskRepository.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.taskRepository.Delete(ctx, id)
}

func (s *TaskService) DeleteTasks(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: at least one task id is required", domain.ErrValidation)
	}
	return s.taskRepository.DeleteMany(ctx, ids)
}

func (s *TaskService) AddSubtask(ctx context.Context, id, text string) (domain.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Task{}, fmt.Errorf("%w: subtask text is required", domain.ErrValidation)
	}

	task, err := s.taskRepository.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	wasCompleted := task.Completed

	task.Subtasks = append(task.Subtasks, domain.Subtask{
		ID:   domain.NewID(),
		Text: text,
	})
	recomputeProgress(&task)

	if err := s.finalize(&task, wasCompleted); err != nil {
		return domain.Task{}, err
	}
	if err := s.taskRepository.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) PatchSubtask(ctx context.Context, id, subtaskID string, patch domain.SubtaskPatch) (domain.Task, error) {
	var text string
	if patch.Text != nil {
		text = strings.TrimSpace(*patch.Text)
		if text == "" {
			return domain.Task{}, fmt.Errorf("%w: subtask text is required", domain.ErrValidation)
		}
	}

	task, err := s.taskRepository.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	wasCompleted := task.Completed

	found := false
	for i := range task.Subtasks {
		if task.Subtasks[i].ID != subtaskID {
			continue
		}
		if patch.Text != nil {
			task.Subtasks[i].Text = text
		}
		if patch.Completed != nil {
			task.Subtasks[i].Completed = *patch.Completed
		}
		found = true
		break
	}
	if !found {
		return domain.Task{}, domain.ErrSubtaskNotFound
	}
	recomputeProgress(&task)

	if err := s.finalize(&task, wasCompleted); err != nil {
		return domain.Task{}, err
	}
	if err := s.taskRepository.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) RemoveSubtask(ctx context.Context, id, subtaskID string) (domain.Task, error) {
	task, err := s.taskRepository.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	wasCompleted := task.Completed

	kept := task.Subtasks[:0]
	found := false
	for _, st := range task.Subtasks {
		if st.ID == subtaskID {
			found = true
			continue
		}
		kept = append(kept, st)
	}
	if !found {
		return domain.Task{}, domain.ErrSubtaskNotFound
	}
	if len(kept) == 0 {
		kept = nil
	}
	task.Subtasks = kept
	recomputeProgress(&task)

	if err := s.finalize(&task, wasCompleted); err != nil {
		return domain.Task{}, err
	}
	if err := s.taskRepository.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) AddTag(ctx context.Context, id, tag string) (domain.Task, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return domain.Task{}, fmt.Errorf("%w: tag is required", domain.ErrValidation)
	}

	task, err := s.taskRepository.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	for _, existing := range task.Tags {
		if existing == tag {
			// Already present (case-sensitive): nothing to persist.
			return task, nil
		}
	}
	wasCompleted := task.Completed
	task.Tags = append(task.Tags, tag)

	if err := s.finalize(&task, wasCompleted); err != nil {
		return domain.Task{}, err
	}
	if err := s.taskRepository.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) RemoveTag(ctx context.Context, id, tag string) (domain.Task, error) {
	task, err := s.taskRepository.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	wasCompleted := task.Completed

	kept := task.Tags[:0]
	found := false
	for _, existing := range task.Tags {
		if existing == tag {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return domain.Task{}, domain.ErrTagNotFound
	}
	if len(kept) == 0 {
		kept = nil
	}
	task.Tags = kept

	if err := s.finalize(&task, wasCompleted); err != nil {
		return domain.Task{}, err
	}
	if err := s.taskRepository.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) LogTime(ctx context.Context, id string, minutes int) (domain.Task, error) {
	if minutes <= 0 {
		return domain.Task{}, fmt.Errorf("%w: minutes must be positive", domain.ErrValidation)
	}

	task, err := s.taskRepository.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	wasCompleted := task.Completed

	total := minutes
	if task.ActualTime != nil {
		total += *task.ActualTime
	}
	task.ActualTime = &total

	if err := s.finalize(&task, wasCompleted); err != nil {
		return domain.Task{}, err
	}
	if err := s.taskRepository.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func validatePatch(patch domain.TaskPatch) error {
	if patch.Priority != nil && !patch.Priority.Valid() {
		return fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, *patch.Priority)
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return fmt.Errorf("%w: invalid category %q", domain.ErrValidation, *patch.Category)
	}
	if patch.Recurring != nil && !patch.Recurring.Valid() {
		return fmt.Errorf("%w: invalid recurring value %q", domain.ErrValidation, *patch.Recurring)
	}
	if patch.EstimatedTimeSet {
		if err := validateMinutes("estimatedTime", patch.EstimatedTime); err != nil {
			return err
		}
	}
	if patch.ActualTimeSet {
		if err := validateMinutes("actualTime", patch.ActualTime); err != nil {
			return err
		}
	}
	return nil
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
