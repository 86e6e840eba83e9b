package storage

import (
	"database/sql"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// DB — хранилище поверх Postgres. Сырые SQL-запросы, без ORM.
type DB struct {
	Conn *sql.DB
}

func NewDB(conn *sql.DB) *DB {
	return &DB{Conn: conn}
}

// Connect открывает соединение с Postgres. На старте контейнера база может
// подниматься дольше приложения, поэтому ping повторяется с паузами.
func Connect(databaseURL string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("открытие соединения: %w", err)
	}

	err = retry.Do(
		conn.Ping,
		retry.Attempts(10),
		retry.Delay(2*time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Uint("attempt", n+1).Err(err).Msg("база недоступна, повтор")
		}),
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping базы: %w", err)
	}
	return conn, nil
}

// RunMigrations накатывает миграции из каталога migrationsPath.
func RunMigrations(databaseURL, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("инициализация миграций: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("применение миграций: %w", err)
	}
	log.Info().Str("path", migrationsPath).Msg("миграции применены")
	return nil
}

// wrapNotFound приводит sql.ErrNoRows к общей ошибке хранилища.
func wrapNotFound(err error) error {
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// isNil проверяет указатель, спрятанный в any.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
