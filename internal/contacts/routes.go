package contacts

import (
	"github.com/gin-gonic/gin"

	"tgbulk_go/pkg/storage"
)

func SetupRoutes(r *gin.RouterGroup, store storage.Store, userID int) {
	handler := NewHandler(store, userID)
	r.GET("/contacts", handler.List)
	r.POST("/contacts", handler.Create)
	r.PUT("/contacts/:id", handler.Update)
	r.DELETE("/contacts/:id", handler.Delete)
}
