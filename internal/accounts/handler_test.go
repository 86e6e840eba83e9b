package accounts

import (
	"bytes"
	"encoding/json"
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

func setupRouter() (*gin.Engine, *storage.Memory) {
	gin.SetMode(gin.TestMode)
	store := storage.NewMemory()
	store.SeedDemo()

	router := gin.New()
	api := router.Group("/api")
	SetupRoutes(api, store, telegram.NewFactory(telegram.ModeMock, store), 1)
	return router, store
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAccount(t *testing.T) {
	router, _ := setupRouter()

	w := doJSON(router, http.MethodPost, "/api/telegram-accounts",
		`{"phoneNumber":"+79990000002","apiId":"22222","apiHash":"0123456789abcdef"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var account models.TelegramAccount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))
	assert.True(t, account.IsActive)
	assert.Equal(t, models.AccountStatusAvailable, account.Status)
}

func TestCreateAccountShortApiHash(t *testing.T) {
	router, store := setupRouter()

	w := doJSON(router, http.MethodPost, "/api/telegram-accounts",
		`{"phoneNumber":"+79990000002","apiId":"22222","apiHash":"short"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "errors")

	accounts, err := store.GetTelegramAccounts(1)
	require.NoError(t, err)
	assert.Len(t, accounts, 1, "только демо-аккаунт")
}

func TestUpdateAccountPartial(t *testing.T) {
	router, store := setupRouter()

	w := doJSON(router, http.MethodPut, "/api/telegram-accounts/1", `{"isActive":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	account, err := store.GetTelegramAccount(1)
	require.NoError(t, err)
	assert.False(t, account.IsActive)
	assert.Equal(t, "+1234567890", account.PhoneNumber, "остальные поля не тронуты")

	// Идемпотентность повторного выключения.
	w = doJSON(router, http.MethodPut, "/api/telegram-accounts/1", `{"isActive":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	account, err = store.GetTelegramAccount(1)
	require.NoError(t, err)
	assert.False(t, account.IsActive)
}

func TestUpdateAccountNotFound(t *testing.T) {
	router, _ := setupRouter()

	w := doJSON(router, http.MethodPut, "/api/telegram-accounts/99", `{"isActive":false}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAccount(t *testing.T) {
	router, store := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/telegram-accounts/1", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	accounts, err := store.GetTelegramAccounts(1)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestCheckLoginMock(t *testing.T) {
	router, _ := setupRouter()

	w := doJSON(router, http.MethodPost, "/api/telegram-accounts/1/check-login", ``)
	require.Equal(t, http.StatusOK, w.Code)

	var status telegram.LoginStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.LoggedIn)
}

func TestCheckLoginUnknownAccount(t *testing.T) {
	router, _ := setupRouter()

	w := doJSON(router, http.MethodPost, "/api/telegram-accounts/99/check-login", ``)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
