package storage

import (
	"tgbulk_go/models"
)

const contactColumns = `id, telegram_id, username, first_name, last_name, phone,
       group_source, is_blacklisted, is_whitelisted, created_at, user_id`

func scanContact(row interface{ Scan(...any) error }) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(
		&c.ID,
		&c.TelegramID,
		&c.Username,
		&c.FirstName,
		&c.LastName,
		&c.Phone,
		&c.GroupSource,
		&c.IsBlacklisted,
		&c.IsWhitelisted,
		&c.CreatedAt,
		&c.UserID,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (db *DB) GetContacts(userID int, filter models.ContactFilter) ([]models.Contact, error) {
	query := "SELECT " + contactColumns + " FROM contacts WHERE user_id = $1"
	args := []any{userID}
	if filter.Blacklisted != nil {
		args = append(args, *filter.Blacklisted)
		query += " AND is_blacklisted = " + placeholder(len(args))
	}
	if filter.Whitelisted != nil {
		args = append(args, *filter.Whitelisted)
		query += " AND is_whitelisted = " + placeholder(len(args))
	}
	query += " ORDER BY id"

	rows, err := db.Conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

func (db *DB) GetContact(id int) (*models.Contact, error) {
	c, err := scanContact(db.Conn.QueryRow(
		"SELECT "+contactColumns+" FROM contacts WHERE id = $1", id,
	))
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return c, nil
}

func (db *DB) CreateContact(contact models.Contact) (*models.Contact, error) {
	err := db.Conn.QueryRow(`
               INSERT INTO contacts
                       (telegram_id, username, first_name, last_name, phone, group_source,
                        is_blacklisted, is_whitelisted, user_id)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
               RETURNING id, created_at
       `,
		contact.TelegramID,
		contact.Username,
		contact.FirstName,
		contact.LastName,
		contact.Phone,
		contact.GroupSource,
		contact.IsBlacklisted,
		contact.IsWhitelisted,
		contact.UserID,
	).Scan(&contact.ID, &contact.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (db *DB) UpdateContact(id int, upd models.ContactUpdate) (*models.Contact, error) {
	set, args := updateBuilder{}, []any{}
	set.add("telegram_id", upd.TelegramID, &args)
	set.add("username", upd.Username, &args)
	set.add("first_name", upd.FirstName, &args)
	set.add("last_name", upd.LastName, &args)
	set.add("phone", upd.Phone, &args)
	set.add("group_source", upd.GroupSource, &args)
	set.add("is_blacklisted", upd.IsBlacklisted, &args)
	set.add("is_whitelisted", upd.IsWhitelisted, &args)
	if set.empty() {
		return db.GetContact(id)
	}

	args = append(args, id)
	c, err := scanContact(db.Conn.QueryRow(
		"UPDATE contacts SET "+set.clause()+
			" WHERE id = "+set.next()+" RETURNING "+contactColumns,
		args...,
	))
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return c, nil
}

func (db *DB) DeleteContact(id int) error {
	res, err := db.Conn.Exec("DELETE FROM contacts WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
