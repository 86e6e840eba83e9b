// Package telegram прячет MTProto-клиент за единым интерфейсом операций.
// Реальная реализация ходит в сеть через gotd, мок отдаёт синтетику —
// выбор делается один раз на старте процесса.
package telegram

import (
	"context"

	"tgbulk_go/models"
	"tgbulk_go/pkg/storage"
)

// Member — участник группы в нормализованном виде.
type Member struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	IsOnline  bool   `json:"isOnline"`
}

// FoundUser — результат глобального поиска пользователей.
type FoundUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// LoginStatus — итог проверки авторизации аккаунта.
type LoginStatus struct {
	LoggedIn bool   `json:"loggedIn"`
	Error    string `json:"error,omitempty"`
}

type AddResult struct {
	Added  int `json:"added"`
	Errors int `json:"errors"`
}

type SendResult struct {
	Sent   int `json:"sent"`
	Errors int `json:"errors"`
}

type PostResult struct {
	Success int `json:"success"`
	Errors  int `json:"errors"`
}

type ScrapeMembersOptions struct {
	GroupUsername string
	Limit         int
}

type AddMembersOptions struct {
	GroupID string
	UserIDs []string
	Delay   models.DelayRange
}

type SendMessagesOptions struct {
	Users   []string
	Message string
	Delay   models.DelayRange
}

type UploadAvatarOptions struct {
	AvatarPath string
}

type SearchUsersOptions struct {
	Query string
	Limit int
}

type PostToGroupsOptions struct {
	Groups  []string
	Message string
	Delay   models.DelayRange
}

// Client — операции одного аккаунта. Пакетные методы не возвращают ошибку
// на сбой отдельного элемента: такие сбои считаются и цикл идёт дальше.
// Ошибка означает, что операция не смогла выполниться целиком
// (мёртвая сессия, неразрешимая группа, обрыв соединения).
type Client interface {
	Initialize(ctx context.Context) bool
	CheckLoginStatus(ctx context.Context) LoginStatus
	ScrapeMembers(ctx context.Context, opts ScrapeMembersOptions) ([]Member, error)
	AddMembers(ctx context.Context, opts AddMembersOptions) (AddResult, error)
	SendMessages(ctx context.Context, opts SendMessagesOptions) (SendResult, error)
	UploadAvatar(ctx context.Context, opts UploadAvatarOptions) (bool, error)
	SearchUsers(ctx context.Context, opts SearchUsersOptions) ([]FoundUser, error)
	PostToGroups(ctx context.Context, opts PostToGroupsOptions) (PostResult, error)
}

// Factory создаёт клиент под конкретный аккаунт и необязательный прокси.
type Factory func(account *models.TelegramAccount, proxy *models.Proxy) Client

// Режимы адаптера.
const (
	ModeMock = "mock"
	ModeReal = "real"
)

// NewFactory выбирает реализацию по режиму из конфигурации.
// store нужен реальному клиенту, чтобы сохранять обновлённую сессию аккаунта.
func NewFactory(mode string, store storage.Store) Factory {
	if mode == ModeReal {
		return func(account *models.TelegramAccount, proxy *models.Proxy) Client {
			return NewRealClient(account, proxy, store)
		}
	}
	return func(account *models.TelegramAccount, proxy *models.Proxy) Client {
		return NewMockClient(account, proxy)
	}
}
