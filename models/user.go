package models

// User — учётная запись панели. Пароль хранится как есть:
// полноценной аутентификации нет, вход сводится к сравнению строк.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
