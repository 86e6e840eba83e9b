package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgbulk_go/pkg/storage"
)

func setupRouter() (*gin.Engine, *storage.Memory) {
	gin.SetMode(gin.TestMode)
	store := storage.NewMemory()
	store.SeedDemo()

	router := gin.New()
	api := router.Group("/api")
	SetupRoutes(api, store)
	return router, store
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	router, _ := setupRouter()

	w := postJSON(router, "/api/login", `{"username":"admin","password":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
	assert.NotContains(t, w.Body.String(), "password123", "пароль не должен попадать в ответ")
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := setupRouter()

	w := postJSON(router, "/api/login", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	router, _ := setupRouter()

	w := postJSON(router, "/api/login", `{"username":"ghost","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginMissingFields(t *testing.T) {
	router, _ := setupRouter()

	w := postJSON(router, "/api/login", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
