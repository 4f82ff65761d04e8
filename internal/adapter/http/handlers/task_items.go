package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daytrack/internal/adapter/http/dto"
	"daytrack/internal/adapter/http/mapper"
	"daytrack/internal/core/domain"
	"daytrack/pkg/apierrors"
)

// Subtask, tag and time-log sub-resources. Each mutation returns the full
// updated task so clients can refresh derived fields (progress) in one go.

func (h *TaskHandler) AddSubtask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}
	var req dto.AddSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidPayload(c)
		return
	}

	task, err := h.taskService.AddSubtask(c.Request.Context(), id, req.Text)
	if err != nil {
		respondError(c, err, "failed to add subtask", apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) PatchSubtask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}
	var req dto.PatchSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidPayload(c)
		return
	}

	task, err := h.taskService.PatchSubtask(c.Request.Context(), id, c.Param("subtaskId"), domain.SubtaskPatch{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		respondError(c, err, "failed to patch subtask", apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteSubtask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.RemoveSubtask(c.Request.Context(), id, c.Param("subtaskId"))
	if err != nil {
		respondError(c, err, "failed to delete subtask", apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) AddTag(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}
	var req dto.AddTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidPayload(c)
		return
	}

	task, err := h.taskService.AddTag(c.Request.Context(), id, req.Tag)
	if err != nil {
		respondError(c, err, "failed to add tag", apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTag(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.RemoveTag(c.Request.Context(), id, c.Param("tag"))
	if err != nil {
		respondError(c, err, "failed to delete tag", apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) LogTime(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}
	var req dto.LogTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Minutes == nil {
		respondInvalidPayload(c)
		return
	}

	task, err := h.taskService.LogTime(c.Request.Context(), id, *req.Minutes)
	if err != nil {
		respondError(c, err, "failed to log time", apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}
