package models

import "time"

// Contact — профиль Telegram-пользователя, собранный скрейпингом,
// поиском или ручным импортом.
type Contact struct {
	ID            int       `json:"id"`
	TelegramID    string    `json:"telegramId"`
	Username      string    `json:"username"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Phone         string    `json:"phone"`
	GroupSource   string    `json:"groupSource"`
	IsBlacklisted bool      `json:"isBlacklisted"`
	IsWhitelisted bool      `json:"isWhitelisted"`
	CreatedAt     time.Time `json:"createdAt"`
	UserID        int       `json:"userId"`
}

// ContactUpdate — частичное обновление контакта.
type ContactUpdate struct {
	TelegramID    *string `json:"telegramId"`
	Username      *string `json:"username"`
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	Phone         *string `json:"phone"`
	GroupSource   *string `json:"groupSource"`
	IsBlacklisted *bool   `json:"isBlacklisted"`
	IsWhitelisted *bool   `json:"isWhitelisted"`
}

// ContactFilter — фильтры списка контактов. nil — без фильтра.
type ContactFilter struct {
	Blacklisted *bool
	Whitelisted *bool
}
