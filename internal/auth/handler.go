package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tgbulk_go/internal/httputil"
	"tgbulk_go/pkg/storage"
)

type Handler struct {
	Store storage.Store
}

func NewHandler(store storage.Store) *Handler {
	return &Handler{Store: store}
}

// Login — вход по паре логин/пароль. Сессий нет: клиент получает
// идентификатор пользователя и дальше работает без токена.
func (h *Handler) Login(c *gin.Context) {
	var request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&request); err != nil || request.Username == "" || request.Password == "" {
		httputil.RespondError(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.Store.GetUserByUsername(request.Username)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error().Err(err).Msg("поиск пользователя")
		}
		httputil.RespondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if user.Password != request.Password {
		httputil.RespondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}
