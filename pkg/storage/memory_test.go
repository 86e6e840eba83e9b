package storage

import (
	"errors"
	"testing"

	"tgbulk_go/models"
)

func TestMemoryAccountLifecycle(t *testing.T) {
	m := NewMemory()

	account, err := m.CreateTelegramAccount(models.TelegramAccount{
		PhoneNumber: "+79990000001",
		ApiID:       "11111",
		ApiHash:     "hashhashhashhash",
		UserID:      1,
	})
	if err != nil {
		t.Fatalf("создание аккаунта: %v", err)
	}
	if !account.IsActive {
		t.Error("новый аккаунт должен быть активным")
	}
	if account.Status != models.AccountStatusAvailable {
		t.Errorf("статус нового аккаунта: %q", account.Status)
	}

	inactive := false
	updated, err := m.UpdateTelegramAccount(account.ID, models.TelegramAccountUpdate{IsActive: &inactive})
	if err != nil {
		t.Fatalf("обновление аккаунта: %v", err)
	}
	if updated.IsActive {
		t.Error("isActive не сбросился")
	}
	if updated.PhoneNumber != account.PhoneNumber {
		t.Error("частичное обновление затронуло другие поля")
	}

	// Повторное выключение ничего не меняет.
	again, err := m.UpdateTelegramAccount(account.ID, models.TelegramAccountUpdate{IsActive: &inactive})
	if err != nil {
		t.Fatalf("повторное обновление: %v", err)
	}
	if again.IsActive {
		t.Error("повторное выключение должно быть идемпотентным")
	}

	if err := m.DeleteTelegramAccount(account.ID); err != nil {
		t.Fatalf("удаление аккаунта: %v", err)
	}
	if _, err := m.GetTelegramAccount(account.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("после удаления ожидается ErrNotFound, получено %v", err)
	}
}

func TestMemoryUpdateMissingRecord(t *testing.T) {
	m := NewMemory()
	status := models.TaskStatusRunning
	if _, err := m.UpdateTask(42, models.TaskUpdate{Status: &status}); !errors.Is(err, ErrNotFound) {
		t.Errorf("обновление несуществующей задачи: ожидается ErrNotFound, получено %v", err)
	}
	if err := m.DeleteProxy(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("удаление несуществующего прокси: ожидается ErrNotFound, получено %v", err)
	}
}

func TestMemoryTaskDefaults(t *testing.T) {
	m := NewMemory()
	task, err := m.CreateTask(models.Task{
		Name:     "пробная",
		Type:     models.TaskTypeScrapeMembers,
		Status:   models.TaskStatusCompleted, // должно быть проигнорировано
		Progress: 55,
		UserID:   1,
	})
	if err != nil {
		t.Fatalf("создание задачи: %v", err)
	}
	if task.Status != models.TaskStatusPending {
		t.Errorf("новая задача всегда pending, получено %q", task.Status)
	}
	if task.Progress != 0 {
		t.Errorf("прогресс новой задачи всегда 0, получено %d", task.Progress)
	}
}

func TestMemoryContactBlacklistFilter(t *testing.T) {
	m := NewMemory()

	first, err := m.CreateContact(models.Contact{TelegramID: "100", Username: "alpha", UserID: 1})
	if err != nil {
		t.Fatalf("создание контакта: %v", err)
	}
	if first.IsBlacklisted || first.IsWhitelisted {
		t.Error("новый контакт не должен состоять в списках")
	}
	if _, err := m.CreateContact(models.Contact{TelegramID: "200", Username: "beta", UserID: 1}); err != nil {
		t.Fatalf("создание контакта: %v", err)
	}

	flag := true
	if _, err := m.UpdateContact(first.ID, models.ContactUpdate{IsBlacklisted: &flag}); err != nil {
		t.Fatalf("занесение в чёрный список: %v", err)
	}

	blacklisted, err := m.GetContacts(1, models.ContactFilter{Blacklisted: &flag})
	if err != nil {
		t.Fatalf("фильтр по чёрному списку: %v", err)
	}
	if len(blacklisted) != 1 || blacklisted[0].ID != first.ID {
		t.Errorf("в чёрном списке ожидается только контакт %d, получено %v", first.ID, blacklisted)
	}

	clean := false
	rest, err := m.GetContacts(1, models.ContactFilter{Blacklisted: &clean})
	if err != nil {
		t.Fatalf("фильтр по отсутствию в чёрном списке: %v", err)
	}
	if len(rest) != 1 || rest[0].Username != "beta" {
		t.Errorf("вне чёрного списка ожидается beta, получено %v", rest)
	}

	all, err := m.GetContacts(1, models.ContactFilter{})
	if err != nil {
		t.Fatalf("чтение без фильтра: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("без фильтра ожидается 2 контакта, получено %d", len(all))
	}
}

func TestMemoryActivityLogOrderAndLimit(t *testing.T) {
	m := NewMemory()
	for _, activity := range []string{"первая", "вторая", "третья"} {
		if _, err := m.CreateActivityLog(models.ActivityLog{Activity: activity, UserID: 1}); err != nil {
			t.Fatalf("запись в журнал: %v", err)
		}
	}

	logs, err := m.GetActivityLogs(1, 0)
	if err != nil {
		t.Fatalf("чтение журнала: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("ожидается 3 записи, получено %d", len(logs))
	}
	if logs[0].Activity != "третья" || logs[2].Activity != "первая" {
		t.Errorf("журнал должен идти от свежих к старым: %v", logs)
	}

	limited, err := m.GetActivityLogs(1, 2)
	if err != nil {
		t.Fatalf("чтение журнала с лимитом: %v", err)
	}
	if len(limited) != 2 || limited[0].Activity != "третья" {
		t.Errorf("лимит 2: ожидаются две свежие записи, получено %v", limited)
	}
}

func TestMemorySeedDemo(t *testing.T) {
	m := NewMemory()
	m.SeedDemo()

	admin, err := m.GetUserByUsername("admin")
	if err != nil {
		t.Fatalf("демо-пользователь отсутствует: %v", err)
	}
	accounts, err := m.GetTelegramAccounts(admin.ID)
	if err != nil || len(accounts) != 1 {
		t.Fatalf("демо-аккаунт: %v, %d", err, len(accounts))
	}
	proxies, err := m.GetProxies(admin.ID)
	if err != nil || len(proxies) != 1 {
		t.Fatalf("демо-прокси: %v, %d", err, len(proxies))
	}
	logs, err := m.GetActivityLogs(admin.ID, 0)
	if err != nil || len(logs) != 2 {
		t.Fatalf("демо-журнал: %v, %d", err, len(logs))
	}
}
