package models

import (
	"encoding/json"
	"fmt"
)

// Типы задач. Каждому типу соответствует своя структура конфигурации,
// вместо нетипизированного словаря.
const (
	TaskTypeScrapeMembers = "scrape_members"
	TaskTypeAddMembers    = "add_members"
	TaskTypeSendMessages  = "send_messages"
	TaskTypeUploadAvatar  = "upload_avatar"
	TaskTypeSearchUsers   = "search_users"
	TaskTypePostToGroups  = "post_to_groups"
)

// DelayRange — границы случайной паузы между элементами пачки, в секундах.
type DelayRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type ScrapeMembersConfig struct {
	AccountID     int    `json:"accountId"`
	GroupUsername string `json:"groupUsername"`
	Limit         int    `json:"limit"`
	ProxyID       *int   `json:"proxyId,omitempty"`
}

type AddMembersConfig struct {
	AccountID int        `json:"accountId"`
	GroupID   string     `json:"groupId"`
	UserIDs   []string   `json:"userIds"`
	Delay     DelayRange `json:"delay"`
	ProxyID   *int       `json:"proxyId,omitempty"`
}

type SendMessagesConfig struct {
	AccountID int        `json:"accountId"`
	Users     []string   `json:"users"`
	Message   string     `json:"message"`
	Delay     DelayRange `json:"delay"`
	ProxyID   *int       `json:"proxyId,omitempty"`
}

type UploadAvatarConfig struct {
	AccountID  int    `json:"accountId"`
	AvatarPath string `json:"avatarPath"`
	ProxyID    *int   `json:"proxyId,omitempty"`
}

type SearchUsersConfig struct {
	AccountID int    `json:"accountId"`
	Query     string `json:"query"`
	Limit     int    `json:"limit"`
	ProxyID   *int   `json:"proxyId,omitempty"`
}

type PostToGroupsConfig struct {
	AccountID int        `json:"accountId"`
	Groups    []string   `json:"groups"`
	Message   string     `json:"message"`
	Delay     DelayRange `json:"delay"`
	ProxyID   *int       `json:"proxyId,omitempty"`
}

// EncodeTaskConfig сериализует типизированную конфигурацию для хранения в задаче.
func EncodeTaskConfig(cfg any) (json.RawMessage, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("сериализация конфигурации задачи: %w", err)
	}
	return data, nil
}

// DecodeTaskConfig восстанавливает конфигурацию по типу задачи.
// Неизвестный тип — ошибка, а не пустой словарь.
func DecodeTaskConfig(taskType string, raw json.RawMessage) (any, error) {
	var cfg any
	switch taskType {
	case TaskTypeScrapeMembers:
		cfg = &ScrapeMembersConfig{}
	case TaskTypeAddMembers:
		cfg = &AddMembersConfig{}
	case TaskTypeSendMessages:
		cfg = &SendMessagesConfig{}
	case TaskTypeUploadAvatar:
		cfg = &UploadAvatarConfig{}
	case TaskTypeSearchUsers:
		cfg = &SearchUsersConfig{}
	case TaskTypePostToGroups:
		cfg = &PostToGroupsConfig{}
	default:
		return nil, fmt.Errorf("неизвестный тип задачи: %q", taskType)
	}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации задачи %q: %w", taskType, err)
	}
	return cfg, nil
}
