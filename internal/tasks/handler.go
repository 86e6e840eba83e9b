package tasks

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tgbulk_go/internal/httputil"
	"tgbulk_go/models"
	"tgbulk_go/pkg/storage"
)

type Handler struct {
	Store  storage.Store
	UserID int
}

func NewHandler(store storage.Store, userID int) *Handler {
	return &Handler{Store: store, UserID: userID}
}

func (h *Handler) List(c *gin.Context) {
	tasks, err := h.Store.GetTasks(h.UserID)
	if err != nil {
		log.Error().Err(err).Msg("список задач")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) Create(c *gin.Context) {
	var request struct {
		Name   string          `json:"name" binding:"required"`
		Type   string          `json:"type" binding:"required"`
		Config json.RawMessage `json:"config"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}
	if len(request.Config) > 0 {
		if _, err := models.DecodeTaskConfig(request.Type, request.Config); err != nil {
			httputil.RespondError(c, http.StatusBadRequest, "Invalid task config: "+err.Error())
			return
		}
	}

	task, err := h.Store.CreateTask(models.Task{
		Name:   request.Name,
		Type:   request.Type,
		Config: request.Config,
		UserID: h.UserID,
	})
	if err != nil {
		log.Error().Err(err).Msg("создание задачи")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Invalid id")
		return
	}
	var upd models.TaskUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}

	task, err := h.Store.UpdateTask(id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.RespondError(c, http.StatusNotFound, "Task not found")
			return
		}
		log.Error().Err(err).Int("id", id).Msg("обновление задачи")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Invalid id")
		return
	}
	if err := h.Store.DeleteTask(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.RespondError(c, http.StatusNotFound, "Task not found")
			return
		}
		log.Error().Err(err).Int("id", id).Msg("удаление задачи")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.Status(http.StatusNoContent)
}
