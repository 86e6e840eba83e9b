package activity

import (
	"github.com/gin-gonic/gin"

	"tgbulk_go/pkg/storage"
)

func SetupRoutes(r *gin.RouterGroup, store storage.Store, userID int) {
	handler := NewHandler(store, userID)
	r.GET("/activity-logs", handler.List)
}
