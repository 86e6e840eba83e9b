package storage

import (
	"tgbulk_go/models"
)

func (db *DB) GetUser(id int) (*models.User, error) {
	var u models.User
	err := db.Conn.QueryRow(
		"SELECT id, username, password FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &u, nil
}

func (db *DB) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	err := db.Conn.QueryRow(
		"SELECT id, username, password FROM users WHERE username = $1", username,
	).Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &u, nil
}

func (db *DB) CreateUser(user models.User) (*models.User, error) {
	err := db.Conn.QueryRow(
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id",
		user.Username, user.Password,
	).Scan(&user.ID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
