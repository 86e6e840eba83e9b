package storage

import (
	"database/sql"

	"tgbulk_go/models"
)

const taskColumns = `id, name, type, status, progress, config, start_time, end_time, created_at, user_id`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	var t models.Task
	var start, end sql.NullTime
	var config []byte
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Type,
		&t.Status,
		&t.Progress,
		&config,
		&start,
		&end,
		&t.CreatedAt,
		&t.UserID,
	)
	if err != nil {
		return nil, err
	}
	t.Config = config
	if start.Valid {
		t.StartTime = &start.Time
	}
	if end.Valid {
		t.EndTime = &end.Time
	}
	return &t, nil
}

func (db *DB) GetTasks(userID int) ([]models.Task, error) {
	rows, err := db.Conn.Query(
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = $1 ORDER BY id", userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (db *DB) GetTask(id int) (*models.Task, error) {
	t, err := scanTask(db.Conn.QueryRow(
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1", id,
	))
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return t, nil
}

func (db *DB) CreateTask(task models.Task) (*models.Task, error) {
	if len(task.Config) == 0 {
		task.Config = []byte("{}")
	}
	err := db.Conn.QueryRow(`
               INSERT INTO tasks (name, type, status, progress, config, user_id)
               VALUES ($1, $2, $3, 0, $4, $5)
               RETURNING id, status, progress, created_at
       `,
		task.Name,
		task.Type,
		models.TaskStatusPending,
		[]byte(task.Config),
		task.UserID,
	).Scan(&task.ID, &task.Status, &task.Progress, &task.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (db *DB) UpdateTask(id int, upd models.TaskUpdate) (*models.Task, error) {
	set, args := updateBuilder{}, []any{}
	set.add("name", upd.Name, &args)
	set.add("status", upd.Status, &args)
	set.add("progress", upd.Progress, &args)
	if len(upd.Config) > 0 {
		set.add("config", []byte(upd.Config), &args)
	}
	set.add("start_time", upd.StartTime, &args)
	set.add("end_time", upd.EndTime, &args)
	if set.empty() {
		return db.GetTask(id)
	}

	args = append(args, id)
	t, err := scanTask(db.Conn.QueryRow(
		"UPDATE tasks SET "+set.clause()+
			" WHERE id = "+set.next()+" RETURNING "+taskColumns,
		args...,
	))
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return t, nil
}

func (db *DB) DeleteTask(id int) error {
	res, err := db.Conn.Exec("DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
