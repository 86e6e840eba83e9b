package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config — конфигурация процесса из переменных окружения.
type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	// Пустой DATABASE_URL переключает хранилище на карты в памяти.
	DatabaseURL    string `env:"DATABASE_URL" envDefault:""`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`

	// Режим Telegram-клиента: mock или real. Выбирается один раз на старте.
	TelegramMode string `env:"TELEGRAM_MODE" envDefault:"mock"`

	// Арендатор по умолчанию: авторизация пока заглушка, и все операции
	// выполняются от имени этого пользователя.
	DefaultUserID int `env:"DEFAULT_USER_ID" envDefault:"1"`
}

func Load() (*Config, error) {
	// Отсутствие .env не ошибка: в продакшене переменные задаются напрямую.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
