package models

import (
	"testing"
)

func TestTaskConfigRoundTrip(t *testing.T) {
	proxyID := 3
	original := AddMembersConfig{
		AccountID: 1,
		GroupID:   "@testgroup",
		UserIDs:   []string{"user1", "user2"},
		Delay:     DelayRange{Min: 5, Max: 15},
		ProxyID:   &proxyID,
	}

	raw, err := EncodeTaskConfig(original)
	if err != nil {
		t.Fatalf("сериализация: %v", err)
	}

	decoded, err := DecodeTaskConfig(TaskTypeAddMembers, raw)
	if err != nil {
		t.Fatalf("разбор: %v", err)
	}
	cfg, ok := decoded.(*AddMembersConfig)
	if !ok {
		t.Fatalf("неожиданный тип конфигурации: %T", decoded)
	}
	if cfg.GroupID != original.GroupID || len(cfg.UserIDs) != 2 || cfg.Delay.Max != 15 {
		t.Errorf("конфигурация исказилась: %+v", cfg)
	}
	if cfg.ProxyID == nil || *cfg.ProxyID != proxyID {
		t.Errorf("proxyId потерян: %+v", cfg.ProxyID)
	}
}

func TestDecodeTaskConfigUnknownType(t *testing.T) {
	if _, err := DecodeTaskConfig("mine_bitcoin", []byte(`{}`)); err == nil {
		t.Error("неизвестный тип задачи должен быть ошибкой")
	}
}

func TestDecodeTaskConfigBadJSON(t *testing.T) {
	if _, err := DecodeTaskConfig(TaskTypeScrapeMembers, []byte(`{broken`)); err == nil {
		t.Error("битый JSON должен быть ошибкой")
	}
}
