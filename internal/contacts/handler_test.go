package contacts

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
)

func setupRouter() (*gin.Engine, *storage.Memory) {
	gin.SetMode(gin.TestMode)
	store := storage.NewMemory()

	router := gin.New()
	api := router.Group("/api")
	SetupRoutes(api, store, 1)
	return router, store
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestContactBlacklistRoundTrip(t *testing.T) {
	router, _ := setupRouter()

	w := doJSON(router, http.MethodPost, "/api/contacts",
		`{"telegramId":"100","username":"alpha","groupSource":"@src","isBlacklisted":true}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Contact
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.IsBlacklisted)

	w = doJSON(router, http.MethodPost, "/api/contacts", `{"telegramId":"200","username":"beta"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/contacts?blacklisted=true", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var contacts []models.Contact
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &contacts))
	require.Len(t, contacts, 1)
	assert.Equal(t, "alpha", contacts[0].Username)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/contacts?blacklisted=false", nil)
	router.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &contacts))
	require.Len(t, contacts, 1)
	assert.Equal(t, "beta", contacts[0].Username)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/contacts?whitelisted=true", nil)
	router.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &contacts))
	assert.Empty(t, contacts, "чёрный список не даёт попадания в белый")
}

func TestContactFilterBadValue(t *testing.T) {
	router, _ := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/contacts?blacklisted=maybe", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactListEmpty(t *testing.T) {
	router, _ := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String(), "пустой список, а не null")
}
