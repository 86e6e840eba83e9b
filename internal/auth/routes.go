package auth

import (
	"github.com/gin-gonic/gin"

	"tgbulk_go/pkg/storage"
)

func SetupRoutes(r *gin.RouterGroup, store storage.Store) {
	handler := NewHandler(store)
	r.POST("/login", handler.Login)
}
