package storage

import (
	"database/sql"

	"tgbulk_go/models"
)

const proxyColumns = `id, host, port, username, password, type, is_active, status, last_checked, user_id`

func scanProxy(row interface{ Scan(...any) error }) (*models.Proxy, error) {
	var p models.Proxy
	var lastChecked sql.NullTime
	err := row.Scan(
		&p.ID,
		&p.Host,
		&p.Port,
		&p.Username,
		&p.Password,
		&p.Type,
		&p.IsActive,
		&p.Status,
		&lastChecked,
		&p.UserID,
	)
	if err != nil {
		return nil, err
	}
	if lastChecked.Valid {
		p.LastChecked = &lastChecked.Time
	}
	return &p, nil
}

func (db *DB) GetProxies(userID int) ([]models.Proxy, error) {
	rows, err := db.Conn.Query(
		"SELECT "+proxyColumns+" FROM proxies WHERE user_id = $1 ORDER BY id", userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proxies []models.Proxy
	for rows.Next() {
		p, err := scanProxy(rows)
		if err != nil {
			return nil, err
		}
		proxies = append(proxies, *p)
	}
	return proxies, rows.Err()
}

func (db *DB) GetProxy(id int) (*models.Proxy, error) {
	p, err := scanProxy(db.Conn.QueryRow(
		"SELECT "+proxyColumns+" FROM proxies WHERE id = $1", id,
	))
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return p, nil
}

func (db *DB) CreateProxy(proxy models.Proxy) (*models.Proxy, error) {
	err := db.Conn.QueryRow(`
               INSERT INTO proxies (host, port, username, password, type, is_active, status, user_id)
               VALUES ($1, $2, $3, $4, $5, true, $6, $7)
               RETURNING id, is_active, status
       `,
		proxy.Host,
		proxy.Port,
		proxy.Username,
		proxy.Password,
		proxy.Type,
		models.ProxyStatusUnchecked,
		proxy.UserID,
	).Scan(&proxy.ID, &proxy.IsActive, &proxy.Status)
	if err != nil {
		return nil, err
	}
	return &proxy, nil
}

func (db *DB) UpdateProxy(id int, upd models.ProxyUpdate) (*models.Proxy, error) {
	set, args := updateBuilder{}, []any{}
	set.add("host", upd.Host, &args)
	set.add("port", upd.Port, &args)
	set.add("username", upd.Username, &args)
	set.add("password", upd.Password, &args)
	set.add("type", upd.Type, &args)
	set.add("is_active", upd.IsActive, &args)
	set.add("status", upd.Status, &args)
	set.add("last_checked", upd.LastChecked, &args)
	if set.empty() {
		return db.GetProxy(id)
	}

	args = append(args, id)
	p, err := scanProxy(db.Conn.QueryRow(
		"UPDATE proxies SET "+set.clause()+
			" WHERE id = "+set.next()+" RETURNING "+proxyColumns,
		args...,
	))
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return p, nil
}

func (db *DB) DeleteProxy(id int) error {
	res, err := db.Conn.Exec("DELETE FROM proxies WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
