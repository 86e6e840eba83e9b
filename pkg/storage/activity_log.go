package storage

import (
	"database/sql"

	"tgbulk_go/models"
)

func (db *DB) GetActivityLogs(userID int, limit int) ([]models.ActivityLog, error) {
	query := `
               SELECT id, task_id, activity, details, timestamp, user_id
               FROM activity_logs
               WHERE user_id = $1
               ORDER BY timestamp DESC, id DESC
       `
	args := []any{userID}
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT " + placeholder(len(args))
	}

	rows, err := db.Conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ActivityLog
	for rows.Next() {
		var l models.ActivityLog
		var taskID sql.NullInt64
		if err := rows.Scan(&l.ID, &taskID, &l.Activity, &l.Details, &l.Timestamp, &l.UserID); err != nil {
			return nil, err
		}
		if taskID.Valid {
			id := int(taskID.Int64)
			l.TaskID = &id
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (db *DB) CreateActivityLog(log models.ActivityLog) (*models.ActivityLog, error) {
	err := db.Conn.QueryRow(`
               INSERT INTO activity_logs (task_id, activity, details, user_id)
               VALUES ($1, $2, $3, $4)
               RETURNING id, timestamp
       `,
		log.TaskID,
		log.Activity,
		log.Details,
		log.UserID,
	).Scan(&log.ID, &log.Timestamp)
	if err != nil {
		return nil, err
	}
	return &log, nil
}
