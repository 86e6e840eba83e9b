package telegram

import (
	"context"

	"github.com/gotd/td/session"
	"github.com/rs/zerolog/log"

	"tgbulk_go/models"
	"tgbulk_go/pkg/storage"
)

// accountSessionStorage держит сессию MTProto в поле session_string аккаунта.
// На аккаунт приходится не больше одной сессии.
type accountSessionStorage struct {
	store     storage.Store
	accountID int
}

func (s *accountSessionStorage) LoadSession(ctx context.Context) ([]byte, error) {
	if s == nil || s.store == nil {
		return nil, session.ErrNotFound
	}
	account, err := s.store.GetTelegramAccount(s.accountID)
	if err != nil {
		log.Error().Err(err).Int("account_id", s.accountID).Msg("чтение сессии")
		return nil, err
	}
	if account.SessionString == "" {
		return nil, session.ErrNotFound
	}
	return []byte(account.SessionString), nil
}

func (s *accountSessionStorage) StoreSession(ctx context.Context, data []byte) error {
	if s == nil || s.store == nil {
		return session.ErrNotFound
	}
	str := string(data)
	if _, err := s.store.UpdateTelegramAccount(s.accountID, models.TelegramAccountUpdate{SessionString: &str}); err != nil {
		log.Error().Err(err).Int("account_id", s.accountID).Msg("сохранение сессии")
		return err
	}
	return nil
}
