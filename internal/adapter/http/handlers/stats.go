package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daytrack/internal/adapter/http/mapper"
	"daytrack/internal/adapter/http/middleware"
	"daytrack/internal/core/domain"
	"daytrack/internal/core/ports"
	"daytrack/pkg/apierrors"
)

type StatsHandler struct {
	taskService  ports.TaskService
	statsService ports.StatsService
}

func NewStatsHandler(taskService ports.TaskService, statsService ports.StatsService) *StatsHandler {
	return &StatsHandler{
		taskService:  taskService,
		statsService: statsService,
	}
}

func (h *StatsHandler) ListCategorySummaries(c *gin.Context) {
	summaries, err := h.statsService.CategorySummaries(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list category summaries", apierrors.MsgFailCategoryStats)
		return
	}

	c.JSON(http.StatusOK, mapper.ToCategorySummaryItems(summaries))
}

func (h *StatsHandler) ListCategoryTasks(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	completed := completedQueryFilter(c)
	search := c.Query("search")

	tasks, err := h.taskService.ListCategoryTasks(c.Request.Context(), category, completed, search)
	if err != nil {
		respondError(c, err, "failed to list category tasks", apierrors.MsgFailListTasks)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *StatsHandler) GetCategoryStats(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	stats, err := h.statsService.CategoryStats(c.Request.Context(), category)
	if err != nil {
		respondError(c, err, "failed to compute category stats", apierrors.MsgFailCategoryStats)
		return
	}

	c.JSON(http.StatusOK, mapper.ToCategoryStatsResponse(stats))
}

func (h *StatsHandler) ListActiveDailyTasks(c *gin.Context) {
	tasks, err := h.statsService.ActiveDailyTasks(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list active daily tasks", apierrors.MsgFailListDaily)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *StatsHandler) GetOverview(c *gin.Context) {
	overview, err := h.statsService.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to compute overview", apierrors.MsgFailOverview)
		return
	}

	c.JSON(http.StatusOK, mapper.ToOverviewResponse(overview))
}

func categoryParam(c *gin.Context) (domain.Category, bool) {
	category := domain.Category(c.Param("category"))
	if !category.Valid() {
		lang := middleware.GetLang(c)
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCategory, lang),
		)
		return "", false
	}
	return category, true
}
