package operations

import (
	"github.com/gin-gonic/gin"

	"tgbulk_go/pkg/storage"
	"tgbulk_go/pkg/telegram"
)

func SetupRoutes(r *gin.RouterGroup, store storage.Store, factory telegram.Factory, userID int) {
	handler := NewHandler(store, factory, userID)
	tg := r.Group("/telegram")
	tg.POST("/scrape-members", handler.ScrapeMembers)
	tg.POST("/add-members", handler.AddMembers)
	tg.POST("/send-messages", handler.SendMessages)
	tg.POST("/upload-avatar", handler.UploadAvatar)
	tg.POST("/search-users", handler.SearchUsers)
	tg.POST("/post-to-groups", handler.PostToGroups)
}
