package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"tgbulk_go/models"
)

// MockClient отдаёт детерминированную синтетику без сети и без задержек.
// Используется вне продакшена, чтобы гонять панель без живых аккаунтов.
type MockClient struct {
	account     *models.TelegramAccount
	proxy       *models.Proxy
	initialized bool
}

func NewMockClient(account *models.TelegramAccount, proxy *models.Proxy) *MockClient {
	return &MockClient{account: account, proxy: proxy}
}

func (c *MockClient) Initialize(ctx context.Context) bool {
	log.Info().Str("phone", c.account.PhoneNumber).Msg("[MOCK] инициализация клиента")
	if c.proxy != nil {
		log.Info().Str("proxy", fmt.Sprintf("%s:%d", c.proxy.Host, c.proxy.Port)).Msg("[MOCK] прокси")
	}
	c.initialized = true
	return true
}

func (c *MockClient) CheckLoginStatus(ctx context.Context) LoginStatus {
	if !c.initialized {
		c.Initialize(ctx)
	}
	return LoginStatus{LoggedIn: true}
}

func (c *MockClient) ScrapeMembers(ctx context.Context, opts ScrapeMembersOptions) ([]Member, error) {
	if !c.initialized {
		c.Initialize(ctx)
	}
	count := 10
	if opts.Limit > 0 && opts.Limit < count {
		count = opts.Limit
	}
	members := make([]Member, 0, count)
	for i := 0; i < count; i++ {
		members = append(members, Member{
			ID:        fmt.Sprintf("user%d", i),
			Username:  fmt.Sprintf("user%d", i),
			FirstName: fmt.Sprintf("First%d", i),
			LastName:  fmt.Sprintf("Last%d", i),
			IsOnline:  i%2 == 0,
		})
	}
	return members, nil
}

func (c *MockClient) AddMembers(ctx context.Context, opts AddMembersOptions) (AddResult, error) {
	if !c.initialized {
		c.Initialize(ctx)
	}
	n := len(opts.UserIDs)
	return AddResult{Added: n * 8 / 10, Errors: n * 2 / 10}, nil
}

func (c *MockClient) SendMessages(ctx context.Context, opts SendMessagesOptions) (SendResult, error) {
	if !c.initialized {
		c.Initialize(ctx)
	}
	n := len(opts.Users)
	return SendResult{Sent: n * 9 / 10, Errors: n / 10}, nil
}

func (c *MockClient) UploadAvatar(ctx context.Context, opts UploadAvatarOptions) (bool, error) {
	if !c.initialized {
		c.Initialize(ctx)
	}
	return true, nil
}

func (c *MockClient) SearchUsers(ctx context.Context, opts SearchUsersOptions) ([]FoundUser, error) {
	if !c.initialized {
		c.Initialize(ctx)
	}
	count := 5
	if opts.Limit > 0 && opts.Limit < count {
		count = opts.Limit
	}
	title := opts.Query
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	users := make([]FoundUser, 0, count)
	for i := 0; i < count; i++ {
		users = append(users, FoundUser{
			ID:        fmt.Sprintf("search%d", i),
			Username:  fmt.Sprintf("%s%d", opts.Query, i),
			FirstName: fmt.Sprintf("%s%d", title, i),
			LastName:  fmt.Sprintf("Last%d", i),
		})
	}
	return users, nil
}

func (c *MockClient) PostToGroups(ctx context.Context, opts PostToGroupsOptions) (PostResult, error) {
	if !c.initialized {
		c.Initialize(ctx)
	}
	n := len(opts.Groups)
	return PostResult{Success: n * 85 / 100, Errors: n * 15 / 100}, nil
}
