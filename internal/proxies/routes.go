package proxies

import (
	"github.com/gin-gonic/gin"

	"tgbulk_go/pkg/storage"
)

func SetupRoutes(r *gin.RouterGroup, store storage.Store, userID int) {
	handler := NewHandler(store, userID)
	r.GET("/proxies", handler.List)
	r.POST("/proxies", handler.Create)
	r.POST("/proxies/import", handler.Import)
	r.PUT("/proxies/:id", handler.Update)
	r.DELETE("/proxies/:id", handler.Delete)
	r.POST("/proxies/:id/check", handler.Check)
}
