package operations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgbulk_go/models"
	"tgbulk_go/pkg/storage"
	"tgbulk_go/pkg/telegram"
)

// stubClient позволяет подменить исход любой операции в тестах.
type stubClient struct {
	initOK   bool
	uploadOK bool
	err      error
}

func (s *stubClient) Initialize(ctx context.Context) bool { return s.initOK }

func (s *stubClient) CheckLoginStatus(ctx context.Context) telegram.LoginStatus {
	return telegram.LoginStatus{LoggedIn: s.initOK}
}

func (s *stubClient) ScrapeMembers(ctx context.Context, opts telegram.ScrapeMembersOptions) ([]telegram.Member, error) {
	if s.err != nil {
		return nil, s.err
	}
	count := 4
	if opts.Limit > 0 && opts.Limit < count {
		count = opts.Limit
	}
	members := make([]telegram.Member, 0, count)
	for i := 0; i < count; i++ {
		members = append(members, telegram.Member{ID: string(rune('a' + i)), Username: "member"})
	}
	return members, nil
}

func (s *stubClient) AddMembers(ctx context.Context, opts telegram.AddMembersOptions) (telegram.AddResult, error) {
	if s.err != nil {
		return telegram.AddResult{}, s.err
	}
	return telegram.AddResult{Added: len(opts.UserIDs), Errors: 0}, nil
}

func (s *stubClient) SendMessages(ctx context.Context, opts telegram.SendMessagesOptions) (telegram.SendResult, error) {
	if s.err != nil {
		return telegram.SendResult{}, s.err
	}
	return telegram.SendResult{Sent: len(opts.Users)}, nil
}

func (s *stubClient) UploadAvatar(ctx context.Context, opts telegram.UploadAvatarOptions) (bool, error) {
	return s.uploadOK, s.err
}

func (s *stubClient) SearchUsers(ctx context.Context, opts telegram.SearchUsersOptions) ([]telegram.FoundUser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []telegram.FoundUser{{ID: "1", Username: opts.Query}}, nil
}

func (s *stubClient) PostToGroups(ctx context.Context, opts telegram.PostToGroupsOptions) (telegram.PostResult, error) {
	if s.err != nil {
		return telegram.PostResult{}, s.err
	}
	return telegram.PostResult{Success: len(opts.Groups)}, nil
}

func setupRouter(client telegram.Client) (*gin.Engine, *storage.Memory) {
	gin.SetMode(gin.TestMode)
	store := storage.NewMemory()
	store.SeedDemo() // аккаунт id=1 активен

	factory := func(account *models.TelegramAccount, proxy *models.Proxy) telegram.Client {
		return client
	}

	router := gin.New()
	api := router.Group("/api")
	SetupRoutes(api, store, factory, 1)
	return router, store
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestScrapeMembersSuccess(t *testing.T) {
	router, store := setupRouter(&stubClient{initOK: true})

	w := postJSON(router, "/api/telegram/scrape-members",
		`{"accountId":1,"groupUsername":"@cryptosignals","limit":50}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		TaskID  int  `json:"taskId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.LessOrEqual(t, resp.Count, 50)
	require.NotZero(t, resp.TaskID)

	task, err := store.GetTask(resp.TaskID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, task.Status)
	assert.Equal(t, 100, task.Progress)
	assert.NotNil(t, task.StartTime)
	assert.NotNil(t, task.EndTime)
	assert.Equal(t, models.TaskTypeScrapeMembers, task.Type)

	contacts, err := store.GetContacts(1, models.ContactFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, contacts)
	for _, contact := range contacts {
		assert.Equal(t, "@cryptosignals", contact.GroupSource)
	}

	account, err := store.GetTelegramAccount(1)
	require.NoError(t, err)
	assert.NotNil(t, account.LastUsed, "успешная операция обновляет lastUsed")

	logs, err := store.GetActivityLogs(1, 0)
	require.NoError(t, err)
	require.Len(t, logs, 3, "две демо-записи плюс одна об операции")
	assert.Contains(t, logs[0].Activity, "@cryptosignals")
	require.NotNil(t, logs[0].TaskID)
	assert.Equal(t, resp.TaskID, *logs[0].TaskID)
}

func TestScrapeMembersUnknownAccount(t *testing.T) {
	router, store := setupRouter(&stubClient{initOK: true})

	w := postJSON(router, "/api/telegram/scrape-members",
		`{"accountId":99,"groupUsername":"@group"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	tasks, err := store.GetTasks(1)
	require.NoError(t, err)
	assert.Empty(t, tasks, "при 404 задача не создаётся")
}

func TestScrapeMembersInactiveAccount(t *testing.T) {
	router, store := setupRouter(&stubClient{initOK: true})

	inactive := false
	_, err := store.UpdateTelegramAccount(1, models.TelegramAccountUpdate{IsActive: &inactive})
	require.NoError(t, err)

	w := postJSON(router, "/api/telegram/scrape-members",
		`{"accountId":1,"groupUsername":"@group"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	tasks, err := store.GetTasks(1)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestScrapeMembersValidation(t *testing.T) {
	router, store := setupRouter(&stubClient{initOK: true})

	w := postJSON(router, "/api/telegram/scrape-members", `{"accountId":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "errors")

	tasks, err := store.GetTasks(1)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestScrapeMembersAdapterFailure(t *testing.T) {
	router, store := setupRouter(&stubClient{initOK: true, err: errors.New("обрыв соединения")})

	w := postJSON(router, "/api/telegram/scrape-members",
		`{"accountId":1,"groupUsername":"@group"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")

	// Задача создана и осталась в running: сбой виден только в журнале.
	tasks, err := store.GetTasks(1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.TaskStatusRunning, tasks[0].Status)
	assert.Nil(t, tasks[0].EndTime)

	logs, err := store.GetActivityLogs(1, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Activity, "Failed")
}

func TestInitializeFailure(t *testing.T) {
	router, store := setupRouter(&stubClient{initOK: false})

	w := postJSON(router, "/api/telegram/send-messages",
		`{"accountId":1,"users":["a"],"message":"hi"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	tasks, err := store.GetTasks(1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.TaskStatusRunning, tasks[0].Status)
}

func TestAddMembersSuccess(t *testing.T) {
	router, store := setupRouter(&stubClient{initOK: true})

	w := postJSON(router, "/api/telegram/add-members",
		`{"accountId":1,"groupId":"@target","userIds":["u1","u2","u3"],"delay":{"min":0,"max":0}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Added  int `json:"added"`
		Errors int `json:"errors"`
		TaskID int `json:"taskId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Added)
	assert.Equal(t, 0, resp.Errors)

	task, err := store.GetTask(resp.TaskID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskTypeAddMembers, task.Type)

	cfg, err := models.DecodeTaskConfig(task.Type, task.Config)
	require.NoError(t, err)
	assert.Equal(t, "@target", cfg.(*models.AddMembersConfig).GroupID)
}

func TestUploadAvatarReportsFailure(t *testing.T) {
	router, store := setupRouter(&stubClient{initOK: true, uploadOK: false})

	w := postJSON(router, "/api/telegram/upload-avatar",
		`{"accountId":1,"avatarPath":"/tmp/missing.jpg"}`)
	require.Equal(t, http.StatusOK, w.Code, "неуспех загрузки не ошибка HTTP")

	var resp struct {
		Success bool `json:"success"`
		TaskID  int  `json:"taskId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)

	// Единственная операция, переводящая задачу в failed.
	task, err := store.GetTask(resp.TaskID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusFailed, task.Status)
	assert.Equal(t, 0, task.Progress)
}

func TestUploadAvatarSuccess(t *testing.T) {
	router, store := setupRouter(&stubClient{initOK: true, uploadOK: true})

	w := postJSON(router, "/api/telegram/upload-avatar",
		`{"accountId":1,"avatarPath":"/tmp/avatar.jpg"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	tasks, err := store.GetTasks(1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.TaskStatusCompleted, tasks[0].Status)
}

func TestPostToGroupsWithProxy(t *testing.T) {
	router, store := setupRouter(&stubClient{initOK: true})

	w := postJSON(router, "/api/telegram/post-to-groups",
		`{"accountId":1,"groups":["@g1","@g2"],"message":"промо","proxyId":1}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Posted int `json:"posted"`
		TaskID int `json:"taskId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Posted)

	task, err := store.GetTask(resp.TaskID)
	require.NoError(t, err)
	cfg, err := models.DecodeTaskConfig(task.Type, task.Config)
	require.NoError(t, err)
	require.NotNil(t, cfg.(*models.PostToGroupsConfig).ProxyID)
	assert.Equal(t, 1, *cfg.(*models.PostToGroupsConfig).ProxyID)
}

func TestPostToGroupsUnknownProxy(t *testing.T) {
	router, store := setupRouter(&stubClient{initOK: true})

	w := postJSON(router, "/api/telegram/post-to-groups",
		`{"accountId":1,"groups":["@g1"],"message":"промо","proxyId":77}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	tasks, err := store.GetTasks(1)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestSearchUsersSuccess(t *testing.T) {
	router, _ := setupRouter(&stubClient{initOK: true})

	w := postJSON(router, "/api/telegram/search-users",
		`{"accountId":1,"query":"crypto"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
}
