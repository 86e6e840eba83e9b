package models

import "time"

// ActivityLog — журнальная запись об операции. Журнал только пополняется.
type ActivityLog struct {
	ID        int       `json:"id"`
	TaskID    *int      `json:"taskId"`
	Activity  string    `json:"activity"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
	UserID    int       `json:"userId"`
}
