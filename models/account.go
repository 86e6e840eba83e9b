package models

import "time"

// Статусы Telegram-аккаунта.
const (
	AccountStatusAvailable = "available"
	AccountStatusLimited   = "limited"
	AccountStatusBanned    = "banned"
)

// TelegramAccount — аккаунт, от имени которого выполняются массовые операции.
// ApiID хранится строкой, как пришёл из формы; адаптер разбирает его сам.
type TelegramAccount struct {
	ID            int        `json:"id"`
	PhoneNumber   string     `json:"phoneNumber"`
	ApiID         string     `json:"apiId"`
	ApiHash       string     `json:"apiHash"`
	SessionString string     `json:"sessionString"`
	BotToken      string     `json:"botToken"`
	IsActive      bool       `json:"isActive"`
	Status        string     `json:"status"`
	LastUsed      *time.Time `json:"lastUsed"`
	CreatedAt     time.Time  `json:"createdAt"`
	UserID        int        `json:"userId"`
}

// TelegramAccountUpdate — частичное обновление аккаунта.
// nil-поле означает «не трогать»: слияние словарей заменено явными указателями.
type TelegramAccountUpdate struct {
	PhoneNumber   *string    `json:"phoneNumber"`
	ApiID         *string    `json:"apiId"`
	ApiHash       *string    `json:"apiHash"`
	SessionString *string    `json:"sessionString"`
	BotToken      *string    `json:"botToken"`
	IsActive      *bool      `json:"isActive"`
	Status        *string    `json:"status"`
	LastUsed      *time.Time `json:"lastUsed"`
}
