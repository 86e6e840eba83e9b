package storage

import (
	"sort"
	"sync"
	"time"

	"tgbulk_go/models"
)

// Memory — хранилище в памяти для разработки и тестов.
// Карты с автоинкрементом под RWMutex; семантика совпадает с Postgres-реализацией.
type Memory struct {
	mu sync.RWMutex

	users    map[int]models.User
	accounts map[int]models.TelegramAccount
	proxies  map[int]models.Proxy
	tasks    map[int]models.Task
	contacts map[int]models.Contact
	logs     map[int]models.ActivityLog
	nextID   map[string]int
}

func NewMemory() *Memory {
	return &Memory{
		users:    map[int]models.User{},
		accounts: map[int]models.TelegramAccount{},
		proxies:  map[int]models.Proxy{},
		tasks:    map[int]models.Task{},
		contacts: map[int]models.Contact{},
		logs:     map[int]models.ActivityLog{},
		nextID: map[string]int{
			"user": 1, "account": 1, "proxy": 1, "task": 1, "contact": 1, "log": 1,
		},
	}
}

func (m *Memory) id(kind string) int {
	id := m.nextID[kind]
	m.nextID[kind] = id + 1
	return id
}

// SeedDemo наполняет пустое хранилище демонстрационными данными,
// чтобы панель была живой без настройки базы.
func (m *Memory) SeedDemo() {
	admin, _ := m.CreateUser(models.User{Username: "admin", Password: "password123"})
	m.CreateTelegramAccount(models.TelegramAccount{
		PhoneNumber: "+1234567890",
		ApiID:       "12345",
		ApiHash:     "abcdef1234567890",
		UserID:      admin.ID,
	})
	m.CreateProxy(models.Proxy{
		Host:     "proxy.example.com",
		Port:     8080,
		Username: "proxyuser",
		Password: "proxypass",
		Type:     models.ProxyTypeSocks5,
		UserID:   admin.ID,
	})
	m.CreateActivityLog(models.ActivityLog{
		Activity: "Added 15 members",
		Details:  "To Crypto Signals Group",
		UserID:   admin.ID,
	})
	m.CreateActivityLog(models.ActivityLog{
		Activity: "Scraped 230 members",
		Details:  "From Tech Enthusiasts Group",
		UserID:   admin.ID,
	})
}

// --- Пользователи ---

func (m *Memory) GetUser(id int) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) GetUserByUsername(username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateUser(user models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = m.id("user")
	m.users[user.ID] = user
	return &user, nil
}

// --- Telegram-аккаунты ---

func (m *Memory) GetTelegramAccounts(userID int) ([]models.TelegramAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []models.TelegramAccount
	for _, a := range m.accounts {
		if a.UserID == userID {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (m *Memory) GetTelegramAccount(id int) (*models.TelegramAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *Memory) CreateTelegramAccount(account models.TelegramAccount) (*models.TelegramAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account.ID = m.id("account")
	account.IsActive = true
	account.Status = models.AccountStatusAvailable
	account.CreatedAt = time.Now()
	m.accounts[account.ID] = account
	return &account, nil
}

func (m *Memory) UpdateTelegramAccount(id int, upd models.TelegramAccountUpdate) (*models.TelegramAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.PhoneNumber != nil {
		a.PhoneNumber = *upd.PhoneNumber
	}
	if upd.ApiID != nil {
		a.ApiID = *upd.ApiID
	}
	if upd.ApiHash != nil {
		a.ApiHash = *upd.ApiHash
	}
	if upd.SessionString != nil {
		a.SessionString = *upd.SessionString
	}
	if upd.BotToken != nil {
		a.BotToken = *upd.BotToken
	}
	if upd.IsActive != nil {
		a.IsActive = *upd.IsActive
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	if upd.LastUsed != nil {
		a.LastUsed = upd.LastUsed
	}
	m.accounts[id] = a
	return &a, nil
}

func (m *Memory) DeleteTelegramAccount(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return ErrNotFound
	}
	delete(m.accounts, id)
	return nil
}

// --- Прокси ---

func (m *Memory) GetProxies(userID int) ([]models.Proxy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var proxies []models.Proxy
	for _, p := range m.proxies {
		if p.UserID == userID {
			proxies = append(proxies, p)
		}
	}
	sort.Slice(proxies, func(i, j int) bool { return proxies[i].ID < proxies[j].ID })
	return proxies, nil
}

func (m *Memory) GetProxy(id int) (*models.Proxy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.proxies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *Memory) CreateProxy(proxy models.Proxy) (*models.Proxy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	proxy.ID = m.id("proxy")
	proxy.IsActive = true
	proxy.Status = models.ProxyStatusUnchecked
	m.proxies[proxy.ID] = proxy
	return &proxy, nil
}

func (m *Memory) UpdateProxy(id int, upd models.ProxyUpdate) (*models.Proxy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.proxies[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Host != nil {
		p.Host = *upd.Host
	}
	if upd.Port != nil {
		p.Port = *upd.Port
	}
	if upd.Username != nil {
		p.Username = *upd.Username
	}
	if upd.Password != nil {
		p.Password = *upd.Password
	}
	if upd.Type != nil {
		p.Type = *upd.Type
	}
	if upd.IsActive != nil {
		p.IsActive = *upd.IsActive
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.LastChecked != nil {
		p.LastChecked = upd.LastChecked
	}
	m.proxies[id] = p
	return &p, nil
}

func (m *Memory) DeleteProxy(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.proxies[id]; !ok {
		return ErrNotFound
	}
	delete(m.proxies, id)
	return nil
}

// --- Задачи ---

func (m *Memory) GetTasks(userID int) ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var tasks []models.Task
	for _, t := range m.tasks {
		if t.UserID == userID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (m *Memory) GetTask(id int) (*models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *Memory) CreateTask(task models.Task) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task.ID = m.id("task")
	if len(task.Config) == 0 {
		task.Config = []byte("{}")
	}
	task.Status = models.TaskStatusPending
	task.Progress = 0
	task.CreatedAt = time.Now()
	m.tasks[task.ID] = task
	return &task, nil
}

func (m *Memory) UpdateTask(id int, upd models.TaskUpdate) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.Progress != nil {
		t.Progress = *upd.Progress
	}
	if len(upd.Config) > 0 {
		t.Config = upd.Config
	}
	if upd.StartTime != nil {
		t.StartTime = upd.StartTime
	}
	if upd.EndTime != nil {
		t.EndTime = upd.EndTime
	}
	m.tasks[id] = t
	return &t, nil
}

func (m *Memory) DeleteTask(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

// --- Контакты ---

func (m *Memory) GetContacts(userID int, filter models.ContactFilter) ([]models.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var contacts []models.Contact
	for _, c := range m.contacts {
		if c.UserID != userID {
			continue
		}
		if filter.Blacklisted != nil && c.IsBlacklisted != *filter.Blacklisted {
			continue
		}
		if filter.Whitelisted != nil && c.IsWhitelisted != *filter.Whitelisted {
			continue
		}
		contacts = append(contacts, c)
	}
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].ID < contacts[j].ID })
	return contacts, nil
}

func (m *Memory) GetContact(id int) (*models.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.contacts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *Memory) CreateContact(contact models.Contact) (*models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	contact.ID = m.id("contact")
	contact.CreatedAt = time.Now()
	m.contacts[contact.ID] = contact
	return &contact, nil
}

func (m *Memory) UpdateContact(id int, upd models.ContactUpdate) (*models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.TelegramID != nil {
		c.TelegramID = *upd.TelegramID
	}
	if upd.Username != nil {
		c.Username = *upd.Username
	}
	if upd.FirstName != nil {
		c.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		c.LastName = *upd.LastName
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.GroupSource != nil {
		c.GroupSource = *upd.GroupSource
	}
	if upd.IsBlacklisted != nil {
		c.IsBlacklisted = *upd.IsBlacklisted
	}
	if upd.IsWhitelisted != nil {
		c.IsWhitelisted = *upd.IsWhitelisted
	}
	m.contacts[id] = c
	return &c, nil
}

func (m *Memory) DeleteContact(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.contacts[id]; !ok {
		return ErrNotFound
	}
	delete(m.contacts, id)
	return nil
}

// --- Журнал активности ---

func (m *Memory) GetActivityLogs(userID int, limit int) ([]models.ActivityLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var logs []models.ActivityLog
	for _, l := range m.logs {
		if l.UserID == userID {
			logs = append(logs, l)
		}
	}
	// Свежие записи первыми; при равном времени — по убыванию id.
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].Timestamp.Equal(logs[j].Timestamp) {
			return logs[i].ID > logs[j].ID
		}
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (m *Memory) CreateActivityLog(log models.ActivityLog) (*models.ActivityLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	log.ID = m.id("log")
	log.Timestamp = time.Now()
	m.logs[log.ID] = log
	return &log, nil
}
