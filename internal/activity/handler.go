package activity

import (
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

// List отдаёт журнал свежими записями вперёд. ?limit=N ограничивает выдачу.
func (h *Handler) List(c *gin.Context) {
	limit := 0
	if raw, ok := c.GetQuery("limit"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			httputil.RespondError(c, http.StatusBadRequest, "Invalid limit value")
			return
		}
		limit = v
	}

	logs, err := h.Store.GetActivityLogs(h.UserID, limit)
	if err != nil {
		log.Error().Err(err).Msg("чтение журнала активности")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	if logs == nil {
		logs = []models.ActivityLog{}
	}
	c.JSON(http.StatusOK, logs)
}
