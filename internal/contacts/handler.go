package contacts

import (
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

// List отдаёт контакты с необязательными фильтрами
// ?blacklisted=true|false и ?whitelisted=true|false.
func (h *Handler) List(c *gin.Context) {
	var filter models.ContactFilter
	if raw, ok := c.GetQuery("blacklisted"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.RespondError(c, http.StatusBadRequest, "Invalid blacklisted value")
			return
		}
		filter.Blacklisted = &v
	}
	if raw, ok := c.GetQuery("whitelisted"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.RespondError(c, http.StatusBadRequest, "Invalid whitelisted value")
			return
		}
		filter.Whitelisted = &v
	}

	contacts, err := h.Store.GetContacts(h.UserID, filter)
	if err != nil {
		log.Error().Err(err).Msg("список контактов")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *Handler) Create(c *gin.Context) {
	var request struct {
		TelegramID    string `json:"telegramId" binding:"required"`
		Username      string `json:"username"`
		FirstName     string `json:"firstName"`
		LastName      string `json:"lastName"`
		Phone         string `json:"phone"`
		GroupSource   string `json:"groupSource"`
		IsBlacklisted bool   `json:"isBlacklisted"`
		IsWhitelisted bool   `json:"isWhitelisted"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}

	contact, err := h.Store.CreateContact(models.Contact{
		TelegramID:    request.TelegramID,
		Username:      request.Username,
		FirstName:     request.FirstName,
		LastName:      request.LastName,
		Phone:         request.Phone,
		GroupSource:   request.GroupSource,
		IsBlacklisted: request.IsBlacklisted,
		IsWhitelisted: request.IsWhitelisted,
		UserID:        h.UserID,
	})
	if err != nil {
		log.Error().Err(err).Msg("создание контакта")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Invalid id")
		return
	}
	var upd models.ContactUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}

	contact, err := h.Store.UpdateContact(id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.RespondError(c, http.StatusNotFound, "Contact not found")
			return
		}
		log.Error().Err(err).Int("id", id).Msg("обновление контакта")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Invalid id")
		return
	}
	if err := h.Store.DeleteContact(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.RespondError(c, http.StatusNotFound, "Contact not found")
			return
		}
		log.Error().Err(err).Int("id", id).Msg("удаление контакта")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.Status(http.StatusNoContent)
}
