package telegram

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	botapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/dcs"
	"github.com/gotd/td/telegram/uploader"
	"github.com/gotd/td/tg"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/proxy"

	"tgbulk_go/internal/common"
	"tgbulk_go/models"
	"tgbulk_go/pkg/storage"
)

// RealClient выполняет операции через MTProto (gotd).
// Каждая операция открывает соединение внутри client.Run и закрывает его по выходе.
type RealClient struct {
	account     *models.TelegramAccount
	proxy       *models.Proxy
	store       storage.Store
	client      *telegram.Client
	initialized bool
}

func NewRealClient(account *models.TelegramAccount, proxy *models.Proxy, store storage.Store) *RealClient {
	return &RealClient{account: account, proxy: proxy, store: store}
}

// buildClient собирает клиент gotd: сессия живёт в записи аккаунта,
// при наличии SOCKS5-прокси трафик заворачивается через него.
func (c *RealClient) buildClient() (*telegram.Client, error) {
	apiID, err := strconv.Atoi(c.account.ApiID)
	if err != nil {
		return nil, fmt.Errorf("некорректный api_id %q: %w", c.account.ApiID, err)
	}

	opts := telegram.Options{
		SessionStorage: &accountSessionStorage{store: c.store, accountID: c.account.ID},
	}

	if c.proxy != nil {
		if c.proxy.Type != models.ProxyTypeSocks5 {
			// MTProto умеет только SOCKS5; остальные типы храним, но не используем.
			log.Warn().Str("type", c.proxy.Type).Msg("прокси не SOCKS5, соединение пойдёт напрямую")
		} else {
			addr := fmt.Sprintf("%s:%d", c.proxy.Host, c.proxy.Port)
			var auth *proxy.Auth
			if c.proxy.Username != "" || c.proxy.Password != "" {
				auth = &proxy.Auth{User: c.proxy.Username, Password: c.proxy.Password}
			}
			d, err := proxy.SOCKS5("tcp", addr, auth, proxy.Direct)
			if err != nil {
				return nil, fmt.Errorf("создание прокси-диалера: %w", err)
			}
			dc, ok := d.(proxy.ContextDialer)
			if !ok {
				return nil, fmt.Errorf("прокси-диалер без поддержки контекста")
			}
			opts.Resolver = dcs.Plain(dcs.PlainOptions{Dial: dc.DialContext})
			log.Info().Str("phone", c.account.PhoneNumber).Str("proxy", addr).Msg("соединение через прокси")
		}
	}

	return telegram.NewClient(apiID, c.account.ApiHash, opts), nil
}

func (c *RealClient) Initialize(ctx context.Context) bool {
	client, err := c.buildClient()
	if err != nil {
		log.Error().Err(err).Str("phone", c.account.PhoneNumber).Msg("инициализация клиента")
		return false
	}
	c.client = client

	// Токен бота проверяется сразу: getMe быстро выявляет отозванный токен.
	if c.account.BotToken != "" {
		if _, err := botapi.NewBotAPI(c.account.BotToken); err != nil {
			log.Error().Err(err).Str("phone", c.account.PhoneNumber).Msg("проверка bot token")
			return false
		}
	}

	c.initialized = true
	return true
}

// ensure неявно инициализирует клиент перед первой операцией.
func (c *RealClient) ensure(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if !c.Initialize(ctx) {
		return errors.New("клиент не инициализирован")
	}
	return nil
}

func (c *RealClient) CheckLoginStatus(ctx context.Context) LoginStatus {
	if err := c.ensure(ctx); err != nil {
		return LoginStatus{LoggedIn: false, Error: err.Error()}
	}
	var status LoginStatus
	err := c.client.Run(ctx, func(ctx context.Context) error {
		auth, err := c.client.Auth().Status(ctx)
		if err != nil {
			return err
		}
		status.LoggedIn = auth.Authorized
		return nil
	})
	if err != nil {
		return LoginStatus{LoggedIn: false, Error: err.Error()}
	}
	return status
}

func (c *RealClient) ScrapeMembers(ctx context.Context, opts ScrapeMembersOptions) ([]Member, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}

	var members []Member
	err := c.client.Run(ctx, func(ctx context.Context) error {
		api := tg.NewClient(c.client)
		channel, err := resolveChannel(ctx, api, opts.GroupUsername)
		if err != nil {
			return err
		}
		raw, err := api.ChannelsGetParticipants(ctx, &tg.ChannelsGetParticipantsRequest{
			Channel: channel,
			Filter:  &tg.ChannelParticipantsRecent{},
			Limit:   limit,
		})
		if err != nil {
			return fmt.Errorf("получение участников %s: %w", opts.GroupUsername, err)
		}
		participants, ok := raw.(*tg.ChannelsChannelParticipants)
		if !ok {
			return fmt.Errorf("неожиданный тип ответа: %T", raw)
		}
		for _, u := range participants.Users {
			user, ok := u.(*tg.User)
			if !ok {
				continue
			}
			_, online := user.Status.(*tg.UserStatusOnline)
			members = append(members, Member{
				ID:        strconv.FormatInt(user.ID, 10),
				Username:  user.Username,
				FirstName: user.FirstName,
				LastName:  user.LastName,
				// Телефоны в списке участников не приходят.
				IsOnline: online,
			})
			if len(members) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (c *RealClient) AddMembers(ctx context.Context, opts AddMembersOptions) (AddResult, error) {
	var result AddResult
	if len(opts.UserIDs) == 0 {
		return result, nil
	}
	if err := c.ensure(ctx); err != nil {
		return result, err
	}

	err := c.client.Run(ctx, func(ctx context.Context) error {
		api := tg.NewClient(c.client)
		channel, err := resolveChannel(ctx, api, opts.GroupID)
		if err != nil {
			return err
		}
		for _, ref := range opts.UserIDs {
			user, err := resolveUser(ctx, api, ref)
			if err != nil {
				log.Warn().Err(err).Str("user", ref).Msg("пользователь не разрешён, пропуск")
				result.Errors++
				continue
			}
			if _, err := api.ChannelsInviteToChannel(ctx, &tg.ChannelsInviteToChannelRequest{
				Channel: channel,
				Users:   []tg.InputUserClass{user},
			}); err != nil {
				log.Warn().Err(err).Str("user", ref).Msg("приглашение не прошло")
				result.Errors++
				continue
			}
			result.Added++
			if err := common.WaitWithCancellation(ctx, opts.Delay); err != nil {
				return err
			}
		}
		return nil
	})
	return result, err
}

func (c *RealClient) SendMessages(ctx context.Context, opts SendMessagesOptions) (SendResult, error) {
	var result SendResult
	if len(opts.Users) == 0 {
		return result, nil
	}
	if err := c.ensure(ctx); err != nil {
		return result, err
	}

	err := c.client.Run(ctx, func(ctx context.Context) error {
		api := tg.NewClient(c.client)
		for _, ref := range opts.Users {
			user, err := resolveUser(ctx, api, ref)
			if err != nil {
				log.Warn().Err(err).Str("user", ref).Msg("пользователь не разрешён, пропуск")
				result.Errors++
				continue
			}
			if _, err := api.MessagesSendMessage(ctx, &tg.MessagesSendMessageRequest{
				Peer:     &tg.InputPeerUser{UserID: user.UserID, AccessHash: user.AccessHash},
				Message:  opts.Message,
				RandomID: rand.Int63(),
			}); err != nil {
				log.Warn().Err(err).Str("user", ref).Msg("сообщение не отправлено")
				result.Errors++
				continue
			}
			result.Sent++
			if err := common.WaitWithCancellation(ctx, opts.Delay); err != nil {
				return err
			}
		}
		return nil
	})
	return result, err
}

func (c *RealClient) UploadAvatar(ctx context.Context, opts UploadAvatarOptions) (bool, error) {
	if err := c.ensure(ctx); err != nil {
		return false, err
	}
	if _, err := os.Stat(opts.AvatarPath); err != nil {
		// Отсутствующий файл — штатный отказ, а не авария операции.
		log.Error().Err(err).Str("path", opts.AvatarPath).Msg("файл аватара не найден")
		return false, nil
	}

	err := c.client.Run(ctx, func(ctx context.Context) error {
		api := tg.NewClient(c.client)
		file, err := uploader.NewUploader(api).FromPath(ctx, opts.AvatarPath)
		if err != nil {
			return fmt.Errorf("загрузка файла: %w", err)
		}
		req := &tg.PhotosUploadProfilePhotoRequest{}
		req.SetFile(file)
		if _, err := api.PhotosUploadProfilePhoto(ctx, req); err != nil {
			return fmt.Errorf("установка фото профиля: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *RealClient) SearchUsers(ctx context.Context, opts SearchUsersOptions) ([]FoundUser, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	var users []FoundUser
	err := c.client.Run(ctx, func(ctx context.Context) error {
		api := tg.NewClient(c.client)
		found, err := api.ContactsSearch(ctx, &tg.ContactsSearchRequest{Q: opts.Query, Limit: limit})
		if err != nil {
			return fmt.Errorf("поиск пользователей %q: %w", opts.Query, err)
		}
		for _, u := range found.Users {
			user, ok := u.(*tg.User)
			if !ok {
				continue
			}
			users = append(users, FoundUser{
				ID:        strconv.FormatInt(user.ID, 10),
				Username:  user.Username,
				FirstName: user.FirstName,
				LastName:  user.LastName,
				Phone:     user.Phone,
			})
			if len(users) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (c *RealClient) PostToGroups(ctx context.Context, opts PostToGroupsOptions) (PostResult, error) {
	var result PostResult
	if len(opts.Groups) == 0 {
		return result, nil
	}
	if err := c.ensure(ctx); err != nil {
		return result, err
	}

	err := c.client.Run(ctx, func(ctx context.Context) error {
		api := tg.NewClient(c.client)
		for _, group := range opts.Groups {
			peer, err := resolvePeer(ctx, api, group)
			if err != nil {
				log.Warn().Err(err).Str("group", group).Msg("группа не разрешена, пропуск")
				result.Errors++
				continue
			}
			if _, err := api.MessagesSendMessage(ctx, &tg.MessagesSendMessageRequest{
				Peer:     peer,
				Message:  opts.Message,
				RandomID: rand.Int63(),
			}); err != nil {
				log.Warn().Err(err).Str("group", group).Msg("публикация не прошла")
				result.Errors++
				continue
			}
			result.Success++
			if err := common.WaitWithCancellation(ctx, opts.Delay); err != nil {
				return err
			}
		}
		return nil
	})
	return result, err
}

// cleanUsername убирает префиксы ссылок и @ из идентификатора.
func cleanUsername(ref string) string {
	ref = strings.TrimPrefix(ref, "https://t.me/")
	ref = strings.TrimPrefix(ref, "t.me/")
	return strings.TrimPrefix(ref, "@")
}

// resolveChannel разрешает username группы или канала в InputChannel.
func resolveChannel(ctx context.Context, api *tg.Client, ref string) (*tg.InputChannel, error) {
	username := cleanUsername(ref)
	resolved, err := api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{Username: username})
	if err != nil {
		return nil, fmt.Errorf("разрешение %q: %w", username, err)
	}
	for _, chat := range resolved.Chats {
		if ch, ok := chat.(*tg.Channel); ok {
			return &tg.InputChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash}, nil
		}
	}
	return nil, fmt.Errorf("канал %q не найден среди чатов", username)
}

// resolveUser разрешает username пользователя в InputUser.
func resolveUser(ctx context.Context, api *tg.Client, ref string) (*tg.InputUser, error) {
	username := cleanUsername(ref)
	resolved, err := api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{Username: username})
	if err != nil {
		return nil, fmt.Errorf("разрешение %q: %w", username, err)
	}
	for _, u := range resolved.Users {
		if user, ok := u.(*tg.User); ok {
			return &tg.InputUser{UserID: user.ID, AccessHash: user.AccessHash}, nil
		}
	}
	return nil, fmt.Errorf("пользователь %q не найден", username)
}

// resolvePeer разрешает username в пира для отправки сообщения:
// супергруппы и каналы против обычных групп различаются типом.
func resolvePeer(ctx context.Context, api *tg.Client, ref string) (tg.InputPeerClass, error) {
	username := cleanUsername(ref)
	resolved, err := api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{Username: username})
	if err != nil {
		return nil, fmt.Errorf("разрешение %q: %w", username, err)
	}
	for _, chat := range resolved.Chats {
		switch p := chat.(type) {
		case *tg.Channel:
			return &tg.InputPeerChannel{ChannelID: p.ID, AccessHash: p.AccessHash}, nil
		case *tg.Chat:
			return &tg.InputPeerChat{ChatID: p.ID}, nil
		}
	}
	return nil, fmt.Errorf("группа %q не найдена", username)
}
