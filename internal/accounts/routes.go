package accounts

import (
	"github.com/gin-gonic/gin"

	"tgbulk_go/pkg/storage"
	"tgbulk_go/pkg/telegram"
)

func SetupRoutes(r *gin.RouterGroup, store storage.Store, factory telegram.Factory, userID int) {
	handler := NewHandler(store, factory, userID)
	r.GET("/telegram-accounts", handler.List)
	r.POST("/telegram-accounts", handler.Create)
	r.PUT("/telegram-accounts/:id", handler.Update)
	r.DELETE("/telegram-accounts/:id", handler.Delete)
	r.POST("/telegram-accounts/:id/check-login", handler.CheckLogin)
}
