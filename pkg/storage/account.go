package storage

import (
	"database/sql"
	"strings"

	"tgbulk_go/models"
)

const accountColumns = `id, phone_number, api_id, api_hash, session_string, bot_token,
       is_active, status, last_used, created_at, user_id`

func scanAccount(row interface{ Scan(...any) error }) (*models.TelegramAccount, error) {
	var a models.TelegramAccount
	var lastUsed sql.NullTime
	err := row.Scan(
		&a.ID,
		&a.PhoneNumber,
		&a.ApiID,
		&a.ApiHash,
		&a.SessionString,
		&a.BotToken,
		&a.IsActive,
		&a.Status,
		&lastUsed,
		&a.CreatedAt,
		&a.UserID,
	)
	if err != nil {
		return nil, err
	}
	if lastUsed.Valid {
		a.LastUsed = &lastUsed.Time
	}
	return &a, nil
}

func (db *DB) GetTelegramAccounts(userID int) ([]models.TelegramAccount, error) {
	rows, err := db.Conn.Query(
		"SELECT "+accountColumns+" FROM telegram_accounts WHERE user_id = $1 ORDER BY id", userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.TelegramAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func (db *DB) GetTelegramAccount(id int) (*models.TelegramAccount, error) {
	a, err := scanAccount(db.Conn.QueryRow(
		"SELECT "+accountColumns+" FROM telegram_accounts WHERE id = $1", id,
	))
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return a, nil
}

func (db *DB) CreateTelegramAccount(account models.TelegramAccount) (*models.TelegramAccount, error) {
	err := db.Conn.QueryRow(`
               INSERT INTO telegram_accounts
                       (phone_number, api_id, api_hash, session_string, bot_token, is_active, status, user_id)
               VALUES ($1, $2, $3, $4, $5, true, $6, $7)
               RETURNING id, is_active, status, created_at
       `,
		account.PhoneNumber,
		account.ApiID,
		account.ApiHash,
		account.SessionString,
		account.BotToken,
		models.AccountStatusAvailable,
		account.UserID,
	).Scan(&account.ID, &account.IsActive, &account.Status, &account.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateTelegramAccount собирает SET только из переданных полей.
func (db *DB) UpdateTelegramAccount(id int, upd models.TelegramAccountUpdate) (*models.TelegramAccount, error) {
	set, args := updateBuilder{}, []any{}
	set.add("phone_number", upd.PhoneNumber, &args)
	set.add("api_id", upd.ApiID, &args)
	set.add("api_hash", upd.ApiHash, &args)
	set.add("session_string", upd.SessionString, &args)
	set.add("bot_token", upd.BotToken, &args)
	set.add("is_active", upd.IsActive, &args)
	set.add("status", upd.Status, &args)
	set.add("last_used", upd.LastUsed, &args)
	if set.empty() {
		return db.GetTelegramAccount(id)
	}

	args = append(args, id)
	a, err := scanAccount(db.Conn.QueryRow(
		"UPDATE telegram_accounts SET "+set.clause()+
			" WHERE id = "+set.next()+" RETURNING "+accountColumns,
		args...,
	))
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return a, nil
}

func (db *DB) DeleteTelegramAccount(id int) error {
	res, err := db.Conn.Exec("DELETE FROM telegram_accounts WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// affectedOrNotFound превращает удаление нуля строк в ErrNotFound.
func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// updateBuilder накапливает пары колонка=$N для частичных UPDATE.
type updateBuilder struct {
	parts []string
	n     int
}

// add добавляет колонку, если значение-указатель не nil.
// value всегда *T, поэтому разыменование отдаём драйверу.
func (b *updateBuilder) add(column string, value any, args *[]any) {
	switch v := value.(type) {
	case *string:
		if v == nil {
			return
		}
		*args = append(*args, *v)
	case *int:
		if v == nil {
			return
		}
		*args = append(*args, *v)
	case *bool:
		if v == nil {
			return
		}
		*args = append(*args, *v)
	default:
		if isNil(value) {
			return
		}
		*args = append(*args, value)
	}
	b.n++
	b.parts = append(b.parts, column+" = "+placeholder(b.n))
}

func (b *updateBuilder) empty() bool    { return len(b.parts) == 0 }
func (b *updateBuilder) clause() string { return strings.Join(b.parts, ", ") }

// next возвращает следующий плейсхолдер (для WHERE id).
func (b *updateBuilder) next() string {
	b.n++
	return placeholder(b.n)
}
