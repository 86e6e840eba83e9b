package accounts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tgbulk_go/internal/httputil"
	"tgbulk_go/models"
	"tgbulk_go/pkg/storage"
	"tgbulk_go/pkg/telegram"
)

type Handler struct {
	Store   storage.Store
	Factory telegram.Factory
	UserID  int
}

func NewHandler(store storage.Store, factory telegram.Factory, userID int) *Handler {
	return &Handler{Store: store, Factory: factory, UserID: userID}
}

func (h *Handler) List(c *gin.Context) {
	accounts, err := h.Store.GetTelegramAccounts(h.UserID)
	if err != nil {
		log.Error().Err(err).Msg("список аккаунтов")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	if accounts == nil {
		accounts = []models.TelegramAccount{}
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *Handler) Create(c *gin.Context) {
	var request struct {
		PhoneNumber string `json:"phoneNumber" binding:"required"`
		ApiID       string `json:"apiId" binding:"required"`
		ApiHash     string `json:"apiHash" binding:"required,min=16"`
		BotToken    string `json:"botToken"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}

	account, err := h.Store.CreateTelegramAccount(models.TelegramAccount{
		PhoneNumber: request.PhoneNumber,
		ApiID:       request.ApiID,
		ApiHash:     request.ApiHash,
		BotToken:    request.BotToken,
		UserID:      h.UserID,
	})
	if err != nil {
		log.Error().Err(err).Msg("создание аккаунта")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Invalid id")
		return
	}
	var upd models.TelegramAccountUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}

	account, err := h.Store.UpdateTelegramAccount(id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.RespondError(c, http.StatusNotFound, "Account not found")
			return
		}
		log.Error().Err(err).Int("id", id).Msg("обновление аккаунта")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Invalid id")
		return
	}
	if err := h.Store.DeleteTelegramAccount(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.RespondError(c, http.StatusNotFound, "Account not found")
			return
		}
		log.Error().Err(err).Int("id", id).Msg("удаление аккаунта")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckLogin проверяет авторизацию аккаунта через адаптер.
func (h *Handler) CheckLogin(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Invalid id")
		return
	}
	account, err := h.Store.GetTelegramAccount(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.RespondError(c, http.StatusNotFound, "Account not found")
			return
		}
		log.Error().Err(err).Int("id", id).Msg("чтение аккаунта")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}

	client := h.Factory(account, nil)
	status := client.CheckLoginStatus(c.Request.Context())
	c.JSON(http.StatusOK, status)
}
