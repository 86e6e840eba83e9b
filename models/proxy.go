package models

import "time"

// Типы прокси. MTProto-клиент умеет ходить только через SOCKS5,
// остальные типы хранятся для полноты, но соединение идёт напрямую.
const (
	ProxyTypeSocks5 = "socks5"
	ProxyTypeSocks4 = "socks4"
	ProxyTypeHTTP   = "http"
	ProxyTypeHTTPS  = "https"
)

// Статусы прокси после проверки.
const (
	ProxyStatusUnchecked = "unchecked"
	ProxyStatusWorking   = "working"
	ProxyStatusSlow      = "slow"
	ProxyStatusDead      = "dead"
)

type Proxy struct {
	ID          int        `json:"id"`
	Host        string     `json:"host"`
	Port        int        `json:"port"`
	Username    string     `json:"username"`
	Password    string     `json:"password"`
	Type        string     `json:"type"`
	IsActive    bool       `json:"isActive"`
	Status      string     `json:"status"`
	LastChecked *time.Time `json:"lastChecked"`
	UserID      int        `json:"userId"`
}

// ProxyUpdate — частичное обновление прокси.
type ProxyUpdate struct {
	Host        *string    `json:"host"`
	Port        *int       `json:"port"`
	Username    *string    `json:"username"`
	Password    *string    `json:"password"`
	Type        *string    `json:"type"`
	IsActive    *bool      `json:"isActive"`
	Status      *string    `json:"status"`
	LastChecked *time.Time `json:"lastChecked"`
}
