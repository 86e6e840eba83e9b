package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tgbulk_go/internal/accounts"
	"tgbulk_go/internal/activity"
	"tgbulk_go/internal/auth"
	"tgbulk_go/internal/config"
	"tgbulk_go/internal/contacts"
	"tgbulk_go/internal/logger"
	"tgbulk_go/internal/middleware"
	"tgbulk_go/internal/operations"
	"tgbulk_go/internal/proxies"
	"tgbulk_go/internal/tasks"
	"tgbulk_go/pkg/storage"
	"tgbulk_go/pkg/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "конфигурация:", err)
		os.Exit(1)
	}
	logger.Init(cfg.Debug)

	store, cleanup, err := buildStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("[СТАРТ] хранилище недоступно")
	}
	defer cleanup()

	factory := telegram.NewFactory(cfg.TelegramMode, store)
	log.Info().Str("mode", cfg.TelegramMode).Msg("[СТАРТ] режим Telegram-клиента")

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	auth.SetupRoutes(api, store)
	accounts.SetupRoutes(api, store, factory, cfg.DefaultUserID)
	proxies.SetupRoutes(api, store, cfg.DefaultUserID)
	tasks.SetupRoutes(api, store, cfg.DefaultUserID)
	contacts.SetupRoutes(api, store, cfg.DefaultUserID)
	activity.SetupRoutes(api, store, cfg.DefaultUserID)
	operations.SetupRoutes(api, store, factory, cfg.DefaultUserID)

	// WriteTimeout не задаётся: массовые операции держат ответ открытым
	// на всё время работы, включая паузы между элементами.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:     router,
		ReadTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("[СТАРТ] сервер запущен")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("[СТАРТ] сервер остановился с ошибкой")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("[ОСТАНОВКА] завершение работы")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("[ОСТАНОВКА] принудительное завершение")
	}
}

// buildStore выбирает хранилище: Postgres при заданном DATABASE_URL,
// иначе карты в памяти с демонстрационными данными.
func buildStore(cfg *config.Config) (storage.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info().Msg("[СТАРТ] DATABASE_URL не задан, используется хранилище в памяти")
		mem := storage.NewMemory()
		mem.SeedDemo()
		return mem, func() {}, nil
	}

	if err := storage.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return nil, nil, fmt.Errorf("миграции: %w", err)
	}
	conn, err := storage.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("подключение к базе: %w", err)
	}
	log.Info().Msg("[СТАРТ] подключение к Postgres установлено")
	return storage.NewDB(conn), func() { _ = conn.Close() }, nil
}
