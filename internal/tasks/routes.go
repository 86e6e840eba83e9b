package tasks

import (
	"github.com/gin-gonic/gin"

	"tgbulk_go/pkg/storage"
)

func SetupRoutes(r *gin.RouterGroup, store storage.Store, userID int) {
	handler := NewHandler(store, userID)
	r.GET("/tasks", handler.List)
	r.POST("/tasks", handler.Create)
	r.PUT("/tasks/:id", handler.Update)
	r.DELETE("/tasks/:id", handler.Delete)
}
