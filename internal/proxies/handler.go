package proxies

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

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
	proxies, err := h.Store.GetProxies(h.UserID)
	if err != nil {
		log.Error().Err(err).Msg("список прокси")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	if proxies == nil {
		proxies = []models.Proxy{}
	}
	c.JSON(http.StatusOK, proxies)
}

func (h *Handler) Create(c *gin.Context) {
	var request struct {
		Host     string `json:"host" binding:"required"`
		Port     int    `json:"port" binding:"required,min=1,max=65535"`
		Username string `json:"username"`
		Password string `json:"password"`
		Type     string `json:"type" binding:"omitempty,oneof=socks5 socks4 http https"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}
	if request.Type == "" {
		request.Type = models.ProxyTypeSocks5
	}

	proxy, err := h.Store.CreateProxy(models.Proxy{
		Host:     request.Host,
		Port:     request.Port,
		Username: request.Username,
		Password: request.Password,
		Type:     request.Type,
		UserID:   h.UserID,
	})
	if err != nil {
		log.Error().Err(err).Msg("создание прокси")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusCreated, proxy)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Invalid id")
		return
	}
	var upd models.ProxyUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}

	proxy, err := h.Store.UpdateProxy(id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.RespondError(c, http.StatusNotFound, "Proxy not found")
			return
		}
		log.Error().Err(err).Int("id", id).Msg("обновление прокси")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, proxy)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Invalid id")
		return
	}
	if err := h.Store.DeleteProxy(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.RespondError(c, http.StatusNotFound, "Proxy not found")
			return
		}
		log.Error().Err(err).Int("id", id).Msg("удаление прокси")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.Status(http.StatusNoContent)
}

// Import принимает список прокси в текстовом виде, по одной на строку:
// host:port, host:port:user или host:port:user:pass. Кривые строки
// пропускаются и считаются отдельно.
func (h *Handler) Import(c *gin.Context) {
	var request struct {
		List string `json:"list" binding:"required"`
		Type string `json:"type" binding:"omitempty,oneof=socks5 socks4 http https"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}
	if request.Type == "" {
		request.Type = models.ProxyTypeSocks5
	}

	imported := 0
	skipped := 0
	for _, line := range strings.Split(request.List, "\n") {
		proxy, ok := parseProxyLine(line)
		if !ok {
			if strings.TrimSpace(line) != "" {
				skipped++
			}
			continue
		}
		proxy.Type = request.Type
		proxy.UserID = h.UserID
		if _, err := h.Store.CreateProxy(proxy); err != nil {
			log.Warn().Err(err).Str("host", proxy.Host).Msg("[ИМПОРТ ПРОКСИ] запись пропущена")
			skipped++
			continue
		}
		imported++
	}

	log.Info().Int("imported", imported).Int("skipped", skipped).Msg("[ИМПОРТ ПРОКСИ] завершено")
	c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": skipped})
}

// parseProxyLine разбирает строку host:port[:user[:pass]].
func parseProxyLine(line string) (models.Proxy, bool) {
	parts := strings.Split(strings.TrimSpace(line), ":")
	if len(parts) < 2 || len(parts) > 4 {
		return models.Proxy{}, false
	}
	host := strings.TrimSpace(parts[0])
	port, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if host == "" || err != nil || port < 1 || port > 65535 {
		return models.Proxy{}, false
	}
	proxy := models.Proxy{Host: host, Port: port}
	if len(parts) > 2 {
		proxy.Username = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		proxy.Password = strings.TrimSpace(parts[3])
	}
	return proxy, true
}

// Check имитирует проверку прокси: реального соединения нет, статус
// выбирается случайно и записывается вместе со временем проверки.
func (h *Handler) Check(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Invalid id")
		return
	}
	if _, err := h.Store.GetProxy(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.RespondError(c, http.StatusNotFound, "Proxy not found")
			return
		}
		log.Error().Err(err).Int("id", id).Msg("чтение прокси")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}

	status := models.ProxyStatusWorking
	switch rand.Intn(10) {
	case 0:
		status = models.ProxyStatusDead
	case 1, 2:
		status = models.ProxyStatusSlow
	}
	now := time.Now()

	proxy, err := h.Store.UpdateProxy(id, models.ProxyUpdate{Status: &status, LastChecked: &now})
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("обновление статуса прокси")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, proxy)
}
