package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"daytrack/internal/adapter/http/dto"
	"daytrack/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// patchAllowList enumerates every field a PATCH may touch. Any other key
// rejects the entire patch before a single field is applied.
var patchAllowList = map[string]struct{}{
	"text":          {},
	"description":   {},
	"notes":         {},
	"completed":     {},
	"priority":      {},
	"category":      {},
	"tags":          {},
	"dueDate":       {},
	"estimatedTime": {},
	"actualTime":    {},
	"isDaily":       {},
	"dailyReset":    {},
	"recurring":     {},
	"subtasks":      {},
	"progress":      {},
}

// DecodeTaskPayload parses a request body into both the typed payload and
// the raw field map, so builders can distinguish absent from null.
func DecodeTaskPayload(body []byte) (dto.TaskPayload, map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return dto.TaskPayload{}, nil, ErrInvalidTaskPayload
	}
	var req dto.TaskPayload
	if err := json.Unmarshal(body, &req); err != nil {
		return dto.TaskPayload{}, nil, ErrInvalidTaskPayload
	}
	return req, raw, nil
}

func BuildCreateTaskInput(req dto.TaskPayload, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	if req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	if err := rejectNulls(req, raw); err != nil {
		return domain.CreateTaskInput{}, err
	}

	input := domain.CreateTaskInput{
		Text: strings.TrimSpace(*req.Text),
		Tags: req.Tags,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Notes != nil {
		input.Notes = *req.Notes
	}
	if req.Priority != nil {
		input.Priority = domain.Priority(*req.Priority)
	}
	if req.Category != nil {
		input.Category = domain.Category(*req.Category)
	}
	if req.Recurring != nil {
		input.Recurring = domain.Recurring(*req.Recurring)
	}
	if req.IsDaily != nil {
		input.IsDaily = *req.IsDaily
	}
	if req.DailyReset != nil {
		input.DailyReset = *req.DailyReset
	}
	input.EstimatedTime = req.EstimatedTime

	if req.DueDate != nil {
		dueDate, err := parseDate(*req.DueDate)
		if err != nil {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		input.DueDate = &dueDate
	}

	subtasks, err := buildSubtasks(req.Subtasks)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}
	input.Subtasks = subtasks

	return input, nil
}

func BuildReplaceTaskInput(req dto.TaskPayload, raw map[string]json.RawMessage) (domain.ReplaceTaskInput, error) {
	if req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		return domain.ReplaceTaskInput{}, ErrInvalidTaskPayload
	}
	if err := rejectNulls(req, raw); err != nil {
		return domain.ReplaceTaskInput{}, err
	}

	input := domain.ReplaceTaskInput{
		Text:      strings.TrimSpace(*req.Text),
		Priority:  domain.PriorityMedium,
		Category:  domain.CategoryPersonal,
		Recurring: domain.RecurringNone,
		Tags:      req.Tags,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Notes != nil {
		input.Notes = *req.Notes
	}
	if req.Completed != nil {
		input.Completed = *req.Completed
	}
	if req.Priority != nil {
		input.Priority = domain.Priority(*req.Priority)
	}
	if req.Category != nil {
		input.Category = domain.Category(*req.Category)
	}
	if req.Recurring != nil {
		input.Recurring = domain.Recurring(*req.Recurring)
	}
	if req.IsDaily != nil {
		input.IsDaily = *req.IsDaily
	}
	if req.DailyReset != nil {
		input.DailyReset = *req.DailyReset
	}
	if req.Progress != nil {
		input.Progress = *req.Progress
	}
	input.EstimatedTime = req.EstimatedTime
	input.ActualTime = req.ActualTime

	if req.DueDate != nil {
		dueDate, err := parseDate(*req.DueDate)
		if err != nil {
			return domain.ReplaceTaskInput{}, ErrInvalidTaskPayload
		}
		input.DueDate = &dueDate
	}

	subtasks, err := buildSubtasks(req.Subtasks)
	if err != nil {
		return domain.ReplaceTaskInput{}, err
	}
	input.Subtasks = subtasks

	attachments, err := buildAttachments(req.Attachments)
	if err != nil {
		return domain.ReplaceTaskInput{}, err
	}
	input.Attachments = attachments

	return input, nil
}

func BuildTaskPatch(req dto.TaskPayload, raw map[string]json.RawMessage) (domain.TaskPatch, error) {
	if len(raw) == 0 {
		return domain.TaskPatch{}, ErrInvalidTaskPayload
	}
	for field := range raw {
		if _, ok := patchAllowList[field]; !ok {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
	}

	var patch domain.TaskPatch

	if hasJSONField(raw, "text") {
		if req.Text == nil {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		value := strings.TrimSpace(*req.Text)
		if value == "" {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		patch.Text = &value
	}
	if hasJSONField(raw, "description") {
		// Null clears the description.
		patch.DescriptionSet = true
		patch.Description = req.Description
	}
	if hasJSONField(raw, "notes") {
		patch.NotesSet = true
		patch.Notes = req.Notes
	}
	if hasJSONField(raw, "completed") {
		if req.Completed == nil {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		patch.Completed = req.Completed
	}
	if hasJSONField(raw, "priority") {
		if req.Priority == nil {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		value := domain.Priority(*req.Priority)
		patch.Priority = &value
	}
	if hasJSONField(raw, "category") {
		if req.Category == nil {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		value := domain.Category(*req.Category)
		patch.Category = &value
	}
	if hasJSONField(raw, "recurring") {
		if req.Recurring == nil {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		value := domain.Recurring(*req.Recurring)
		patch.Recurring = &value
	}
	if hasJSONField(raw, "tags") {
		patch.TagsSet = true
		patch.Tags = req.Tags
	}
	if hasJSONField(raw, "dueDate") {
		patch.DueDateSet = true
		if !isJSONNull(raw["dueDate"]) {
			if req.DueDate == nil {
				return domain.TaskPatch{}, ErrInvalidTaskPayload
			}
			dueDate, err := parseDate(*req.DueDate)
			if err != nil {
				return domain.TaskPatch{}, ErrInvalidTaskPayload
			}
			patch.DueDate = &dueDate
		}
	}
	if hasJSONField(raw, "estimatedTime") {
		patch.EstimatedTimeSet = true
		if !isJSONNull(raw["estimatedTime"]) {
			if req.EstimatedTime == nil {
				return domain.TaskPatch{}, ErrInvalidTaskPayload
			}
			patch.EstimatedTime = req.EstimatedTime
		}
	}
	if hasJSONField(raw, "actualTime") {
		patch.ActualTimeSet = true
		if !isJSONNull(raw["actualTime"]) {
			if req.ActualTime == nil {
				return domain.TaskPatch{}, ErrInvalidTaskPayload
			}
			patch.ActualTime = req.ActualTime
		}
	}
	if hasJSONField(raw, "isDaily") {
		if req.IsDaily == nil {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		patch.IsDaily = req.IsDaily
	}
	if hasJSONField(raw, "dailyReset") {
		if req.DailyReset == nil {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		patch.DailyReset = req.DailyReset
	}
	if hasJSONField(raw, "progress") {
		if req.Progress == nil {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		patch.Progress = req.Progress
	}
	if hasJSONField(raw, "subtasks") {
		patch.SubtasksSet = true
		subtasks, err := buildSubtasks(req.Subtasks)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.Subtasks = subtasks
	}

	return patch, nil
}

func buildSubtasks(payloads []dto.SubtaskPayload) ([]domain.Subtask, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	subtasks := make([]domain.Subtask, 0, len(payloads))
	for _, payload := range payloads {
		if payload.Text == nil || strings.TrimSpace(*payload.Text) == "" {
			return nil, ErrInvalidTaskPayload
		}
		subtask := domain.Subtask{Text: strings.TrimSpace(*payload.Text)}
		if payload.ID != nil {
			subtask.ID = *payload.ID
		}
		if payload.Completed != nil {
			subtask.Completed = *payload.Completed
		}
		subtasks = append(subtasks, subtask)
	}
	return subtasks, nil
}

func buildAttachments(payloads []dto.AttachmentPayload) ([]domain.Attachment, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	attachments := make([]domain.Attachment, 0, len(payloads))
	for _, payload := range payloads {
		if payload.Name == nil || payload.URL == nil {
			return nil, ErrInvalidTaskPayload
		}
		attachment := domain.Attachment{Name: *payload.Name, URL: *payload.URL}
		if payload.Type != nil {
			attachment.Type = *payload.Type
		}
		attachments = append(attachments, attachment)
	}
	return attachments, nil
}

// rejectNulls guards the non-nullable scalar fields of create and replace
// bodies: present in the raw map but decoded to nil means explicit null.
func rejectNulls(req dto.TaskPayload, raw map[string]json.RawMessage) error {
	if hasJSONField(raw, "priority") && req.Priority == nil {
		return ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "category") && req.Category == nil {
		return ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "recurring") && req.Recurring == nil {
		return ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "completed") && req.Completed == nil {
		return ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "isDaily") && req.IsDaily == nil {
		return ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "dailyReset") && req.DailyReset == nil {
		return ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "progress") && req.Progress == nil {
		return ErrInvalidTaskPayload
	}
	return nil
}

// parseDate accepts a full RFC 3339 timestamp or a bare yyyy-mm-dd date.
func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
