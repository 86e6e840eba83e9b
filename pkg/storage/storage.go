package storage

import (
	"errors"

	"tgbulk_go/models"
)

// ErrNotFound возвращается, когда запись с указанным id отсутствует.
// Обе реализации (Postgres и память) приводят свои ошибки к нему.
var ErrNotFound = errors.New("запись не найдена")

// Store — контракт хранилища для всех шести сущностей.
// Транзакций и блокировок нет: чтение-затем-запись, последняя запись побеждает.
type Store interface {
	// Пользователи.
	GetUser(id int) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(user models.User) (*models.User, error)

	// Telegram-аккаунты.
	GetTelegramAccounts(userID int) ([]models.TelegramAccount, error)
	GetTelegramAccount(id int) (*models.TelegramAccount, error)
	CreateTelegramAccount(account models.TelegramAccount) (*models.TelegramAccount, error)
	UpdateTelegramAccount(id int, upd models.TelegramAccountUpdate) (*models.TelegramAccount, error)
	DeleteTelegramAccount(id int) error

	// Прокси.
	GetProxies(userID int) ([]models.Proxy, error)
	GetProxy(id int) (*models.Proxy, error)
	CreateProxy(proxy models.Proxy) (*models.Proxy, error)
	UpdateProxy(id int, upd models.ProxyUpdate) (*models.Proxy, error)
	DeleteProxy(id int) error

	// Задачи.
	GetTasks(userID int) ([]models.Task, error)
	GetTask(id int) (*models.Task, error)
	CreateTask(task models.Task) (*models.Task, error)
	UpdateTask(id int, upd models.TaskUpdate) (*models.Task, error)
	DeleteTask(id int) error

	// Контакты.
	GetContacts(userID int, filter models.ContactFilter) ([]models.Contact, error)
	GetContact(id int) (*models.Contact, error)
	CreateContact(contact models.Contact) (*models.Contact, error)
	UpdateContact(id int, upd models.ContactUpdate) (*models.Contact, error)
	DeleteContact(id int) error

	// Журнал активности. limit <= 0 — без ограничения, свежие записи первыми.
	GetActivityLogs(userID int, limit int) ([]models.ActivityLog, error)
	CreateActivityLog(log models.ActivityLog) (*models.ActivityLog, error)
}
