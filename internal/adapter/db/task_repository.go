package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"daytrack/internal/core/domain"
	"daytrack/internal/core/ports"
)

const taskColumns = `
id, text, description, notes, priority, category, tags, due_date,
estimated_time, actual_time, recurring, completed, completed_at, progress,
is_daily, daily_reset, completed_dates, subtasks, attachments, created_at, updated_at`

const insertTaskQuery = `
INSERT INTO tasks (` + taskColumns + `)
VALUES (:id, :text, :description, :notes, :priority, :category, :tags, :due_date,
        :estimated_time, :actual_time, :recurring, :completed, :completed_at, :progress,
        :is_daily, :daily_reset, :completed_dates, :subtasks, :attachments, :created_at, :updated_at);
`

const updateTaskQuery = `
UPDATE tasks
SET text            = :text,
    description     = :description,
    notes           = :notes,
    priority        = :priority,
    category        = :category,
    tags            = :tags,
    due_date        = :due_date,
    estimated_time  = :estimated_time,
    actual_time     = :actual_time,
    recurring       = :recurring,
    completed       = :completed,
    completed_at    = :completed_at,
    progress        = :progress,
    is_daily        = :is_daily,
    daily_reset     = :daily_reset,
    completed_dates = :completed_dates,
    subtasks        = :subtasks,
    attachments     = :attachments,
    updated_at      = :updated_at
WHERE id = :id;
`

// priorityOrder ranks the priority enum inside MySQL so sorting matches
// urgent > high > medium > low.
const priorityOrder = `FIELD(priority, 'low', 'medium', 'high', 'urgent')`

type TaskRepository struct {
	db *sqlx.DB
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

type taskRow struct {
	ID             string          `db:"id"`
	Text           string          `db:"text"`
	Description    string          `db:"description"`
	Notes          string          `db:"notes"`
	Priority       string          `db:"priority"`
	Category       string          `db:"category"`
	Tags           json.RawMessage `db:"tags"`
	DueDate        sql.NullTime    `db:"due_date"`
	EstimatedTime  sql.NullInt64   `db:"estimated_time"`
	ActualTime     sql.NullInt64   `db:"actual_time"`
	Recurring      string          `db:"recurring"`
	Completed      bool            `db:"completed"`
	CompletedAt    sql.NullTime    `db:"completed_at"`
	Progress       int             `db:"progress"`
	IsDaily        bool            `db:"is_daily"`
	DailyReset     bool            `db:"daily_reset"`
	CompletedDates json.RawMessage `db:"completed_dates"`
	Subtasks       json.RawMessage `db:"subtasks"`
	Attachments    json.RawMessage `db:"attachments"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

type subtaskDoc struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type attachmentDoc struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

func (r *TaskRepository) Insert(ctx context.Context, task domain.Task) error {
	row, err := mapDomainTaskToRow(task)
	if err != nil {
		return err
	}
	_, err = r.db.NamedExecContext(ctx, insertTaskQuery, row)
	return err
}

func (r *TaskRepository) Get(ctx context.Context, id string) (domain.Task, error) {
	var row taskRow
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?;`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row)
}

func (r *TaskRepository) Update(ctx context.Context, task domain.Task) error {
	row, err := mapDomainTaskToRow(task)
	if err != nil {
		return err
	}
	result, err := r.db.NamedExecContext(ctx, updateTaskQuery, row)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`DELETE FROM tasks WHERE id IN (?);`, ids)
	if err != nil {
		return 0, err
	}
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *TaskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]domain.Task, error) {
	where, args := buildTaskWhere(filter)
	query := `SELECT ` + taskColumns + ` FROM tasks` + where + orderBy(filter.Sort) + `;`

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRowToDomainTask(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (r *TaskRepository) Count(ctx context.Context, filter ports.TaskFilter) (int64, error) {
	where, args := buildTaskWhere(filter)
	var count int64
	query := `SELECT COUNT(*) FROM tasks` + where + `;`
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TaskRepository) CountByPriority(ctx context.Context, category domain.Category) (map[domain.Priority]int64, error) {
	var rows []struct {
		Priority string `db:"priority"`
		Count    int64  `db:"count"`
	}
	query := `SELECT priority, COUNT(*) AS count FROM tasks WHERE category = ? GROUP BY priority;`
	if err := r.db.SelectContext(ctx, &rows, query, category); err != nil {
		return nil, err
	}

	grouped := make(map[domain.Priority]int64, len(rows))
	for _, row := range rows {
		grouped[domain.Priority(row.Priority)] = row.Count
	}
	return grouped, nil
}

func buildTaskWhere(filter ports.TaskFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Completed != nil {
		conds = append(conds, "completed = ?")
		args = append(args, *filter.Completed)
	}
	if filter.Category != nil {
		conds = append(conds, "category = ?")
		args = append(args, *filter.Category)
	}
	if filter.IsDaily != nil {
		conds = append(conds, "is_daily = ?")
		args = append(args, *filter.IsDaily)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		conds = append(conds, "(LOWER(text) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, pattern, pattern)
	}
	if filter.DueFrom != nil {
		conds = append(conds, "due_date >= ?")
		args = append(args, *filter.DueFrom)
	}
	if filter.DueBefore != nil {
		conds = append(conds, "due_date < ?")
		args = append(args, *filter.DueBefore)
	}
	if filter.CompletedSince != nil {
		conds = append(conds, "completed_at >= ?")
		args = append(args, *filter.CompletedSince)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderBy(sort ports.SortOrder) string {
	switch sort {
	case ports.SortPriorityDesc:
		// created_at(6) preserves insertion order for priority ties.
		return " ORDER BY " + priorityOrder + " DESC, created_at ASC, id ASC"
	case ports.SortPriorityDueDate:
		return " ORDER BY " + priorityOrder + " DESC, due_date IS NULL ASC, due_date ASC, created_at ASC"
	default:
		return " ORDER BY created_at DESC, id ASC"
	}
}

func mapDomainTaskToRow(task domain.Task) (taskRow, error) {
	tags := task.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return taskRow{}, fmt.Errorf("marshal tags: %w", err)
	}

	dates := task.CompletedDates
	if dates == nil {
		dates = []time.Time{}
	}
	datesJSON, err := json.Marshal(dates)
	if err != nil {
		return taskRow{}, fmt.Errorf("marshal completed dates: %w", err)
	}

	subtasks := make([]subtaskDoc, 0, len(task.Subtasks))
	for _, st := range task.Subtasks {
		subtasks = append(subtasks, subtaskDoc(st))
	}
	subtasksJSON, err := json.Marshal(subtasks)
	if err != nil {
		return taskRow{}, fmt.Errorf("marshal subtasks: %w", err)
	}

	attachments := make([]attachmentDoc, 0, len(task.Attachments))
	for _, a := range task.Attachments {
		attachments = append(attachments, attachmentDoc(a))
	}
	attachmentsJSON, err := json.Marshal(attachments)
	if err != nil {
		return taskRow{}, fmt.Errorf("marshal attachments: %w", err)
	}

	row := taskRow{
		ID:             task.ID,
		Text:           task.Text,
		Description:    task.Description,
		Notes:          task.Notes,
		Priority:       string(task.Priority),
		Category:       string(task.Category),
		Tags:           tagsJSON,
		Recurring:      string(task.Recurring),
		Completed:      task.Completed,
		Progress:       task.Progress,
		IsDaily:        task.IsDaily,
		DailyReset:     task.DailyReset,
		CompletedDates: datesJSON,
		Subtasks:       subtasksJSON,
		Attachments:    attachmentsJSON,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}

	if task.DueDate != nil {
		row.DueDate = sql.NullTime{Time: *task.DueDate, Valid: true}
	}
	if task.CompletedAt != nil {
		row.CompletedAt = sql.NullTime{Time: *task.CompletedAt, Valid: true}
	}
	if task.EstimatedTime != nil {
		row.EstimatedTime = sql.NullInt64{Int64: int64(*task.EstimatedTime), Valid: true}
	}
	if task.ActualTime != nil {
		row.ActualTime = sql.NullInt64{Int64: int64(*task.ActualTime), Valid: true}
	}

	return row, nil
}

func mapTaskRowToDomainTask(row taskRow) (domain.Task, error) {
	task := domain.Task{
		ID:          row.ID,
		Text:        row.Text,
		Description: row.Description,
		Notes:       row.Notes,
		Priority:    domain.Priority(row.Priority),
		Category:    domain.Category(row.Category),
		Recurring:   domain.Recurring(row.Recurring),
		Completed:   row.Completed,
		Progress:    row.Progress,
		IsDaily:     row.IsDaily,
		DailyReset:  row.DailyReset,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}
	if row.CompletedAt.Valid {
		value := row.CompletedAt.Time
		task.CompletedAt = &value
	}
	if row.EstimatedTime.Valid {
		value := int(row.EstimatedTime.Int64)
		task.EstimatedTime = &value
	}
	if row.ActualTime.Valid {
		value := int(row.ActualTime.Int64)
		task.ActualTime = &value
	}

	if len(row.Tags) > 0 {
		var tags []string
		if err := json.Unmarshal(row.Tags, &tags); err != nil {
			return domain.Task{}, fmt.Errorf("unmarshal tags: %w", err)
		}
		if len(tags) > 0 {
			task.Tags = tags
		}
	}
	if len(row.CompletedDates) > 0 {
		var dates []time.Time
		if err := json.Unmarshal(row.CompletedDates, &dates); err != nil {
			return domain.Task{}, fmt.Errorf("unmarshal completed dates: %w", err)
		}
		if len(dates) > 0 {
			task.CompletedDates = dates
		}
	}
	if len(row.Subtasks) > 0 {
		var docs []subtaskDoc
		if err := json.Unmarshal(row.Subtasks, &docs); err != nil {
			return domain.Task{}, fmt.Errorf("unmarshal subtasks: %w", err)
		}
		for _, doc := range docs {
			task.Subtasks = append(task.Subtasks, domain.Subtask(doc))
		}
	}
	if len(row.Attachments) > 0 {
		var docs []attachmentDoc
		if err := json.Unmarshal(row.Attachments, &docs); err != nil {
			return domain.Task{}, fmt.Errorf("unmarshal attachments: %w", err)
		}
		for _, doc := range docs {
			task.Attachments = append(task.Attachments, domain.Attachment(doc))
		}
	}

	return task, nil
}
