package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"daytrack/internal/adapter/http/dto"
	"daytrack/internal/adapter/http/mapper"
	"daytrack/internal/adapter/http/middleware"
	"daytrack/internal/adapter/http/validation"
	"daytrack/internal/core/ports"
	"daytrack/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	req, raw, err := validation.DecodeTaskPayload(body)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		respondInvalidPayload(c)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "failed to create task", apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	completed := completedQueryFilter(c)
	search := c.Query("search")

	tasks, err := h.taskService.ListTasks(c.Request.Context(), completed, search)
	if err != nil {
		respondError(c, err, "failed to list tasks", apierrors.MsgFailListTasks)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to fetch task", apierrors.MsgFailFetchTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ReplaceTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	req, raw, err := validation.DecodeTaskPayload(body)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	input, err := validation.BuildReplaceTaskInput(req, raw)
	if err != nil {
		respondInvalidPayload(c)
		return
	}

	task, err := h.taskService.ReplaceTask(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err, "failed to replace task", apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) PatchTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	req, raw, err := validation.DecodeTaskPayload(body)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	patch, err := validation.BuildTaskPatch(req, raw)
	if err != nil {
		respondInvalidPayload(c)
		return
	}

	task, err := h.taskService.PatchTask(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, "failed to patch task", apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete task", apierrors.MsgFailDeleteTask)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteTaskResponse{Message: "task deleted"})
}

func (h *TaskHandler) DeleteTasks(c *gin.Context) {
	var req dto.DeleteTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		respondInvalidPayload(c)
		return
	}

	deleted, err := h.taskService.DeleteTasks(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, err, "failed to delete tasks", apierrors.MsgFailDeleteTask)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteTasksResponse{
		Message:      "tasks deleted",
		DeletedCount: deleted,
	})
}

func taskIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		lang := middleware.GetLang(c)
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return "", false
	}
	return id, true
}

func completedQueryFilter(c *gin.Context) *bool {
	value, exists := c.GetQuery("completed")
	if !exists {
		return nil
	}
	completed := value == "true"
	return &completed
}
