package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daytrack/internal/core/domain"
)

func TestDecodeTaskPayload(t *testing.T) {
	req, raw, err := DecodeTaskPayload([]byte(`{"text":"buy milk","progress":40}`))
	require.NoError(t, err)
	require.NotNil(t, req.Text)
	assert.Equal(t, "buy milk", *req.Text)
	require.NotNil(t, req.Progress)
	assert.Equal(t, 40, *req.Progress)
	assert.Contains(t, raw, "text")
	assert.Contains(t, raw, "progress")

	_, _, err = DecodeTaskPayload([]byte(`{"text":`))
	require.ErrorIs(t, err, ErrInvalidTaskPayload)

	_, _, err = DecodeTaskPayload([]byte(`{"progress":"forty"}`))
	require.ErrorIs(t, err, ErrInvalidTaskPayload)
}

func TestBuildCreateTaskInput(t *testing.T) {
	t.Run("defaults stay unset for the service to fill", func(t *testing.T) {
		req, raw, err := DecodeTaskPayload([]byte(`{"text":"  buy milk  "}`))
		require.NoError(t, err)

		input, err := BuildCreateTaskInput(req, raw)
		require.NoError(t, err)
		assert.Equal(t, "buy milk", input.Text)
		assert.Empty(t, input.Priority)
		assert.Empty(t, input.Category)
		assert.Nil(t, input.DueDate)
	})

	t.Run("full body", func(t *testing.T) {
		body := `{
			"text": "plan trip",
			"description": "summer holidays",
			"priority": "high",
			"category": "personal",
			"tags": ["travel"],
			"dueDate": "2026-07-01",
			"estimatedTime": 90,
			"isDaily": false,
			"subtasks": [{"text": "book flight"}, {"text": "book hotel", "completed": true}]
		}`
		req, raw, err := DecodeTaskPayload([]byte(body))
		require.NoError(t, err)

		input, err := BuildCreateTaskInput(req, raw)
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityHigh, input.Priority)
		assert.Equal(t, []string{"travel"}, input.Tags)
		require.NotNil(t, input.DueDate)
		assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), *input.DueDate)
		require.NotNil(t, input.EstimatedTime)
		assert.Equal(t, 90, *input.EstimatedTime)
		require.Len(t, input.Subtasks, 2)
		assert.True(t, input.Subtasks[1].Completed)
	})

	t.Run("rejects missing or blank text", func(t *testing.T) {
		for _, body := range []string{`{}`, `{"text":""}`, `{"text":"   "}`, `{"text":null}`} {
			req, raw, err := DecodeTaskPayload([]byte(body))
			require.NoError(t, err)
			_, err = BuildCreateTaskInput(req, raw)
			assert.ErrorIs(t, err, ErrInvalidTaskPayload, body)
		}
	})

	t.Run("rejects null scalars", func(t *testing.T) {
		req, raw, err := DecodeTaskPayload([]byte(`{"text":"x","priority":null}`))
		require.NoError(t, err)
		_, err = BuildCreateTaskInput(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("rejects malformed due date", func(t *testing.T) {
		req, raw, err := DecodeTaskPayload([]byte(`{"text":"x","dueDate":"tomorrow"}`))
		require.NoError(t, err)
		_, err = BuildCreateTaskInput(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("rejects blank subtask text", func(t *testing.T) {
		req, raw, err := DecodeTaskPayload([]byte(`{"text":"x","subtasks":[{"text":"  "}]}`))
		require.NoError(t, err)
		_, err = BuildCreateTaskInput(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})
}

func TestBuildReplaceTaskInput(t *testing.T) {
	t.Run("omitted fields take documented defaults", func(t *testing.T) {
		req, raw, err := DecodeTaskPayload([]byte(`{"text":"rewrite me"}`))
		require.NoError(t, err)

		input, err := BuildReplaceTaskInput(req, raw)
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityMedium, input.Priority)
		assert.Equal(t, domain.CategoryPersonal, input.Category)
		assert.Equal(t, domain.RecurringNone, input.Recurring)
		assert.False(t, input.Completed)
		assert.Zero(t, input.Progress)
	})

	t.Run("attachments need name and url", func(t *testing.T) {
		req, raw, err := DecodeTaskPayload([]byte(`{"text":"x","attachments":[{"name":"receipt"}]}`))
		require.NoError(t, err)
		_, err = BuildReplaceTaskInput(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)

		req, raw, err = DecodeTaskPayload([]byte(`{"text":"x","attachments":[{"name":"receipt","url":"https://files/1","type":"pdf"}]}`))
		require.NoError(t, err)
		input, err := BuildReplaceTaskInput(req, raw)
		require.NoError(t, err)
		require.Len(t, input.Attachments, 1)
		assert.Equal(t, "pdf", input.Attachments[0].Type)
	})
}

func TestBuildTaskPatch(t *testing.T) {
	t.Run("empty body is rejected", func(t *testing.T) {
		req, raw, err := DecodeTaskPayload([]byte(`{}`))
		require.NoError(t, err)
		_, err = BuildTaskPatch(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("unknown key rejects the whole patch", func(t *testing.T) {
		req, raw, err := DecodeTaskPayload([]byte(`{"completed":true,"owner":"me"}`))
		require.NoError(t, err)
		_, err = BuildTaskPatch(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("absent and null are distinct", func(t *testing.T) {
		req, raw, err := DecodeTaskPayload([]byte(`{"description":null,"dueDate":null,"estimatedTime":null}`))
		require.NoError(t, err)

		patch, err := BuildTaskPatch(req, raw)
		require.NoError(t, err)
		assert.True(t, patch.DescriptionSet)
		assert.Nil(t, patch.Description)
		assert.True(t, patch.DueDateSet)
		assert.Nil(t, patch.DueDate)
		assert.True(t, patch.EstimatedTimeSet)
		assert.Nil(t, patch.EstimatedTime)
		// Untouched fields keep their zero flags.
		assert.False(t, patch.NotesSet)
		assert.Nil(t, patch.Completed)
	})

	t.Run("null is invalid for non-nullable fields", func(t *testing.T) {
		for _, body := range []string{
			`{"text":null}`,
			`{"completed":null}`,
			`{"priority":null}`,
			`{"progress":null}`,
			`{"isDaily":null}`,
		} {
			req, raw, err := DecodeTaskPayload([]byte(body))
			require.NoError(t, err)
			_, err = BuildTaskPatch(req, raw)
			assert.ErrorIs(t, err, ErrInvalidTaskPayload, body)
		}
	})

	t.Run("typed fields come through", func(t *testing.T) {
		body := `{
			"text": "  new title ",
			"completed": true,
			"priority": "urgent",
			"tags": [],
			"dueDate": "2026-04-01T09:00:00Z",
			"progress": 60,
			"subtasks": [{"id":"s1","text":"step one","completed":true}]
		}`
		req, raw, err := DecodeTaskPayload([]byte(body))
		require.NoError(t, err)

		patch, err := BuildTaskPatch(req, raw)
		require.NoError(t, err)
		require.NotNil(t, patch.Text)
		assert.Equal(t, "new title", *patch.Text)
		require.NotNil(t, patch.Completed)
		assert.True(t, *patch.Completed)
		require.NotNil(t, patch.Priority)
		assert.Equal(t, domain.PriorityUrgent, *patch.Priority)
		assert.True(t, patch.TagsSet)
		assert.Empty(t, patch.Tags)
		require.NotNil(t, patch.DueDate)
		assert.Equal(t, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), *patch.DueDate)
		require.NotNil(t, patch.Progress)
		assert.Equal(t, 60, *patch.Progress)
		require.True(t, patch.SubtasksSet)
		require.Len(t, patch.Subtasks, 1)
		assert.Equal(t, "s1", patch.Subtasks[0].ID)
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		req, raw, err := DecodeTaskPayload([]byte(`{"text":"   "}`))
		require.NoError(t, err)
		_, err = BuildTaskPatch(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})
}

func TestParseDate(t *testing.T) {
	parsed, err := parseDate("2026-07-01T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 15, 4, 5, 0, time.UTC), parsed)

	parsed, err = parseDate("2026-07-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), parsed)

	_, err = parseDate("July 1st")
	require.Error(t, err)
}
