package operations

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tgbulk_go/internal/httputil"
	"tgbulk_go/models"
	"tgbulk_go/pkg/storage"
	"tgbulk_go/pkg/telegram"
)

// markTaskFailedOnError управляет переводом задачи в failed при ошибке
// операции. Исторически задача остаётся в running, а сбой виден только
// в журнале активности; исключение — загрузка аватара.
// TODO: согласовать с продуктом, нужен ли статус failed для всех операций.
const markTaskFailedOnError = false

// Handler выполняет массовые операции синхронно: задача создаётся,
// помечается running, адаптер отрабатывает прямо в обработчике запроса,
// и только после этого уходит ответ.
type Handler struct {
	Store   storage.Store
	Factory telegram.Factory
	UserID  int
}

func NewHandler(store storage.Store, factory telegram.Factory, userID int) *Handler {
	return &Handler{Store: store, Factory: factory, UserID: userID}
}

// prepare выполняет общие шаги всех операций: находит аккаунт (404),
// проверяет isActive (400), находит необязательный прокси, создаёт задачу
// и переводит её в running. При false ответ уже отправлен.
func (h *Handler) prepare(c *gin.Context, accountID int, proxyID *int, taskName, taskType string, cfg any) (*models.TelegramAccount, *models.Proxy, *models.Task, bool) {
	account, err := h.Store.GetTelegramAccount(accountID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.RespondError(c, http.StatusNotFound, "Account not found")
			return nil, nil, nil, false
		}
		log.Error().Err(err).Int("accountId", accountID).Msg("[ОПЕРАЦИЯ] чтение аккаунта")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return nil, nil, nil, false
	}
	if !account.IsActive {
		httputil.RespondError(c, http.StatusBadRequest, "Account is not active")
		return nil, nil, nil, false
	}

	var proxy *models.Proxy
	if proxyID != nil {
		proxy, err = h.Store.GetProxy(*proxyID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				httputil.RespondError(c, http.StatusNotFound, "Proxy not found")
				return nil, nil, nil, false
			}
			log.Error().Err(err).Int("proxyId", *proxyID).Msg("[ОПЕРАЦИЯ] чтение прокси")
			httputil.RespondError(c, http.StatusInternalServerError, "Server error")
			return nil, nil, nil, false
		}
	}

	config, err := models.EncodeTaskConfig(cfg)
	if err != nil {
		log.Error().Err(err).Str("type", taskType).Msg("[ОПЕРАЦИЯ] сериализация конфигурации")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return nil, nil, nil, false
	}
	task, err := h.Store.CreateTask(models.Task{
		Name:   taskName,
		Type:   taskType,
		Config: config,
		UserID: h.UserID,
	})
	if err != nil {
		log.Error().Err(err).Str("type", taskType).Msg("[ОПЕРАЦИЯ] создание задачи")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return nil, nil, nil, false
	}

	running := models.TaskStatusRunning
	now := time.Now()
	task, err = h.Store.UpdateTask(task.ID, models.TaskUpdate{Status: &running, StartTime: &now})
	if err != nil {
		log.Error().Err(err).Int("taskId", task.ID).Msg("[ОПЕРАЦИЯ] запуск задачи")
		httputil.RespondError(c, http.StatusInternalServerError, "Server error")
		return nil, nil, nil, false
	}

	log.Info().Int("taskId", task.ID).Str("type", taskType).Int("accountId", account.ID).Msg("[ОПЕРАЦИЯ] задача запущена")
	return account, proxy, task, true
}

// newClient собирает адаптер и инициализирует сессию.
func (h *Handler) newClient(ctx context.Context, account *models.TelegramAccount, proxy *models.Proxy) (telegram.Client, error) {
	client := h.Factory(account, proxy)
	if !client.Initialize(ctx) {
		return nil, fmt.Errorf("не удалось инициализировать клиент аккаунта %s", account.PhoneNumber)
	}
	return client, nil
}

// complete фиксирует успех: lastUsed аккаунта, задача completed/100/endTime,
// одна запись в журнале активности.
func (h *Handler) complete(task *models.Task, account *models.TelegramAccount, activityText, details string) {
	now := time.Now()
	if _, err := h.Store.UpdateTelegramAccount(account.ID, models.TelegramAccountUpdate{LastUsed: &now}); err != nil {
		log.Warn().Err(err).Int("accountId", account.ID).Msg("[ОПЕРАЦИЯ] обновление lastUsed")
	}

	completed := models.TaskStatusCompleted
	progress := 100
	if _, err := h.Store.UpdateTask(task.ID, models.TaskUpdate{Status: &completed, Progress: &progress, EndTime: &now}); err != nil {
		log.Warn().Err(err).Int("taskId", task.ID).Msg("[ОПЕРАЦИЯ] завершение задачи")
	}

	if _, err := h.Store.CreateActivityLog(models.ActivityLog{
		TaskID:   &task.ID,
		Activity: activityText,
		Details:  details,
		UserID:   h.UserID,
	}); err != nil {
		log.Warn().Err(err).Int("taskId", task.ID).Msg("[ОПЕРАЦИЯ] запись в журнал")
	}

	log.Info().Int("taskId", task.ID).Str("activity", activityText).Msg("[ОПЕРАЦИЯ] задача завершена")
}

// fail фиксирует сбой операции: запись в журнале и ответ 500.
// Статус задачи не меняется (см. markTaskFailedOnError).
func (h *Handler) fail(c *gin.Context, task *models.Task, activityText string, opErr error) {
	if markTaskFailedOnError {
		failed := models.TaskStatusFailed
		now := time.Now()
		if _, err := h.Store.UpdateTask(task.ID, models.TaskUpdate{Status: &failed, EndTime: &now}); err != nil {
			log.Warn().Err(err).Int("taskId", task.ID).Msg("[ОПЕРАЦИЯ] перевод задачи в failed")
		}
	}

	if _, err := h.Store.CreateActivityLog(models.ActivityLog{
		TaskID:   &task.ID,
		Activity: activityText,
		Details:  opErr.Error(),
		UserID:   h.UserID,
	}); err != nil {
		log.Warn().Err(err).Int("taskId", task.ID).Msg("[ОПЕРАЦИЯ] запись о сбое в журнал")
	}

	log.Error().Err(opErr).Int("taskId", task.ID).Msg("[ОПЕРАЦИЯ] операция завершилась ошибкой")
	httputil.RespondOperationError(c, "Operation failed", opErr)
}

// ScrapeMembers собирает участников группы и сохраняет их контактами.
func (h *Handler) ScrapeMembers(c *gin.Context) {
	var request struct {
		AccountID     int    `json:"accountId" binding:"required"`
		GroupUsername string `json:"groupUsername" binding:"required"`
		Limit         int    `json:"limit"`
		ProxyID       *int   `json:"proxyId"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}

	cfg := models.ScrapeMembersConfig{
		AccountID:     request.AccountID,
		GroupUsername: request.GroupUsername,
		Limit:         request.Limit,
		ProxyID:       request.ProxyID,
	}
	account, proxy, task, ok := h.prepare(c, request.AccountID, request.ProxyID,
		"Scrape members from "+request.GroupUsername, models.TaskTypeScrapeMembers, cfg)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	client, err := h.newClient(ctx, account, proxy)
	if err != nil {
		h.fail(c, task, "Failed to scrape members from "+request.GroupUsername, err)
		return
	}
	members, err := client.ScrapeMembers(ctx, telegram.ScrapeMembersOptions{
		GroupUsername: request.GroupUsername,
		Limit:         request.Limit,
	})
	if err != nil {
		h.fail(c, task, "Failed to scrape members from "+request.GroupUsername, err)
		return
	}

	// Сбой вставки отдельного контакта (например, дубликат telegramId)
	// не прерывает сохранение остальных.
	saved := 0
	for _, m := range members {
		_, err := h.Store.CreateContact(models.Contact{
			TelegramID:  m.ID,
			Username:    m.Username,
			FirstName:   m.FirstName,
			LastName:    m.LastName,
			Phone:       m.Phone,
			GroupSource: request.GroupUsername,
			UserID:      h.UserID,
		})
		if err != nil {
			log.Warn().Err(err).Str("telegramId", m.ID).Msg("[СКРЕЙПИНГ] контакт пропущен")
			continue
		}
		saved++
	}

	h.complete(task, account,
		fmt.Sprintf("Scraped %d members from %s", len(members), request.GroupUsername),
		fmt.Sprintf("Saved %d contacts", saved))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"members": members,
		"count":   len(members),
		"taskId":  task.ID,
	})
}

// AddMembers приглашает пользователей в группу с паузами между ними.
func (h *Handler) AddMembers(c *gin.Context) {
	var request struct {
		AccountID int               `json:"accountId" binding:"required"`
		GroupID   string            `json:"groupId" binding:"required"`
		UserIDs   []string          `json:"userIds" binding:"required"`
		Delay     models.DelayRange `json:"delay"`
		ProxyID   *int              `json:"proxyId"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}

	cfg := models.AddMembersConfig{
		AccountID: request.AccountID,
		GroupID:   request.GroupID,
		UserIDs:   request.UserIDs,
		Delay:     request.Delay,
		ProxyID:   request.ProxyID,
	}
	account, proxy, task, ok := h.prepare(c, request.AccountID, request.ProxyID,
		"Add members to "+request.GroupID, models.TaskTypeAddMembers, cfg)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	client, err := h.newClient(ctx, account, proxy)
	if err != nil {
		h.fail(c, task, "Failed to add members to "+request.GroupID, err)
		return
	}
	result, err := client.AddMembers(ctx, telegram.AddMembersOptions{
		GroupID: request.GroupID,
		UserIDs: request.UserIDs,
		Delay:   request.Delay,
	})
	if err != nil {
		h.fail(c, task, "Failed to add members to "+request.GroupID, err)
		return
	}

	h.complete(task, account,
		fmt.Sprintf("Added %d members to %s", result.Added, request.GroupID),
		fmt.Sprintf("Errors: %d", result.Errors))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"added":   result.Added,
		"errors":  result.Errors,
		"taskId":  task.ID,
	})
}

// SendMessages рассылает сообщение списку пользователей.
func (h *Handler) SendMessages(c *gin.Context) {
	var request struct {
		AccountID int               `json:"accountId" binding:"required"`
		Users     []string          `json:"users" binding:"required"`
		Message   string            `json:"message" binding:"required"`
		Delay     models.DelayRange `json:"delay"`
		ProxyID   *int              `json:"proxyId"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}

	cfg := models.SendMessagesConfig{
		AccountID: request.AccountID,
		Users:     request.Users,
		Message:   request.Message,
		Delay:     request.Delay,
		ProxyID:   request.ProxyID,
	}
	account, proxy, task, ok := h.prepare(c, request.AccountID, request.ProxyID,
		fmt.Sprintf("Send messages to %d users", len(request.Users)), models.TaskTypeSendMessages, cfg)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	client, err := h.newClient(ctx, account, proxy)
	if err != nil {
		h.fail(c, task, "Failed to send messages", err)
		return
	}
	result, err := client.SendMessages(ctx, telegram.SendMessagesOptions{
		Users:   request.Users,
		Message: request.Message,
		Delay:   request.Delay,
	})
	if err != nil {
		h.fail(c, task, "Failed to send messages", err)
		return
	}

	h.complete(task, account,
		fmt.Sprintf("Sent %d messages", result.Sent),
		fmt.Sprintf("Errors: %d", result.Errors))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"sent":    result.Sent,
		"errors":  result.Errors,
		"taskId":  task.ID,
	})
}

// UploadAvatar меняет аватар аккаунта. Единственная операция, которая
// переводит задачу в failed при неуспехе и отвечает 200 с success:false.
func (h *Handler) UploadAvatar(c *gin.Context) {
	var request struct {
		AccountID  int    `json:"accountId" binding:"required"`
		AvatarPath string `json:"avatarPath" binding:"required"`
		ProxyID    *int   `json:"proxyId"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}

	cfg := models.UploadAvatarConfig{
		AccountID:  request.AccountID,
		AvatarPath: request.AvatarPath,
		ProxyID:    request.ProxyID,
	}
	account, proxy, task, ok := h.prepare(c, request.AccountID, request.ProxyID,
		fmt.Sprintf("Upload avatar for account %d", request.AccountID), models.TaskTypeUploadAvatar, cfg)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	client, err := h.newClient(ctx, account, proxy)
	if err != nil {
		h.fail(c, task, "Failed to upload avatar", err)
		return
	}
	success, err := client.UploadAvatar(ctx, telegram.UploadAvatarOptions{AvatarPath: request.AvatarPath})
	if err != nil {
		h.fail(c, task, "Failed to upload avatar", err)
		return
	}

	if !success {
		failed := models.TaskStatusFailed
		progress := 0
		now := time.Now()
		if _, err := h.Store.UpdateTask(task.ID, models.TaskUpdate{Status: &failed, Progress: &progress, EndTime: &now}); err != nil {
			log.Warn().Err(err).Int("taskId", task.ID).Msg("[АВАТАР] перевод задачи в failed")
		}
		if _, err := h.Store.CreateActivityLog(models.ActivityLog{
			TaskID:   &task.ID,
			Activity: "Avatar upload failed",
			Details:  request.AvatarPath,
			UserID:   h.UserID,
		}); err != nil {
			log.Warn().Err(err).Int("taskId", task.ID).Msg("[АВАТАР] запись в журнал")
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "taskId": task.ID})
		return
	}

	h.complete(task, account, "Avatar updated for "+account.PhoneNumber, request.AvatarPath)
	c.JSON(http.StatusOK, gin.H{"success": true, "taskId": task.ID})
}

// SearchUsers выполняет глобальный поиск пользователей.
func (h *Handler) SearchUsers(c *gin.Context) {
	var request struct {
		AccountID int    `json:"accountId" binding:"required"`
		Query     string `json:"query" binding:"required"`
		Limit     int    `json:"limit"`
		ProxyID   *int   `json:"proxyId"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}

	cfg := models.SearchUsersConfig{
		AccountID: request.AccountID,
		Query:     request.Query,
		Limit:     request.Limit,
		ProxyID:   request.ProxyID,
	}
	account, proxy, task, ok := h.prepare(c, request.AccountID, request.ProxyID,
		"Search users: "+request.Query, models.TaskTypeSearchUsers, cfg)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	client, err := h.newClient(ctx, account, proxy)
	if err != nil {
		h.fail(c, task, "Failed to search users: "+request.Query, err)
		return
	}
	users, err := client.SearchUsers(ctx, telegram.SearchUsersOptions{
		Query: request.Query,
		Limit: request.Limit,
	})
	if err != nil {
		h.fail(c, task, "Failed to search users: "+request.Query, err)
		return
	}

	h.complete(task, account,
		fmt.Sprintf("Found %d users for query %q", len(users), request.Query), "")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"count":   len(users),
		"taskId":  task.ID,
	})
}

// PostToGroups публикует сообщение в список групп.
func (h *Handler) PostToGroups(c *gin.Context) {
	var request struct {
		AccountID int               `json:"accountId" binding:"required"`
		Groups    []string          `json:"groups" binding:"required"`
		Message   string            `json:"message" binding:"required"`
		Delay     models.DelayRange `json:"delay"`
		ProxyID   *int              `json:"proxyId"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.RespondValidationError(c, err)
		return
	}

	cfg := models.PostToGroupsConfig{
		AccountID: request.AccountID,
		Groups:    request.Groups,
		Message:   request.Message,
		Delay:     request.Delay,
		ProxyID:   request.ProxyID,
	}
	account, proxy, task, ok := h.prepare(c, request.AccountID, request.ProxyID,
		fmt.Sprintf("Post to %d groups", len(request.Groups)), models.TaskTypePostToGroups, cfg)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	client, err := h.newClient(ctx, account, proxy)
	if err != nil {
		h.fail(c, task, "Failed to post to groups", err)
		return
	}
	result, err := client.PostToGroups(ctx, telegram.PostToGroupsOptions{
		Groups:  request.Groups,
		Message: request.Message,
		Delay:   request.Delay,
	})
	if err != nil {
		h.fail(c, task, "Failed to post to groups", err)
		return
	}

	h.complete(task, account,
		fmt.Sprintf("Posted to %d groups", result.Success),
		fmt.Sprintf("Errors: %d", result.Errors))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"posted":  result.Success,
		"errors":  result.Errors,
		"taskId":  task.ID,
	})
}
