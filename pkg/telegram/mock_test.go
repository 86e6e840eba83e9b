package telegram

import (
	"context"
	"testing"

	"tgbulk_go/models"
)

func mockForTest() *MockClient {
	account := &models.TelegramAccount{PhoneNumber: "+10000000000", ApiID: "1", ApiHash: "hashhashhashhash"}
	return NewMockClient(account, nil)
}

func TestMockScrapeMembersRespectsLimit(t *testing.T) {
	client := mockForTest()
	ctx := context.Background()

	members, err := client.ScrapeMembers(ctx, ScrapeMembersOptions{GroupUsername: "@group", Limit: 3})
	if err != nil {
		t.Fatalf("скрейпинг: %v", err)
	}
	if len(members) != 3 {
		t.Errorf("лимит 3: получено %d участников", len(members))
	}

	members, err = client.ScrapeMembers(ctx, ScrapeMembersOptions{GroupUsername: "@group"})
	if err != nil {
		t.Fatalf("скрейпинг без лимита: %v", err)
	}
	if len(members) != 10 {
		t.Errorf("без лимита мок отдаёт 10 участников, получено %d", len(members))
	}
}

func TestMockAddMembersEmptyList(t *testing.T) {
	client := mockForTest()

	result, err := client.AddMembers(context.Background(), AddMembersOptions{
		GroupID: "@group",
		Delay:   models.DelayRange{Min: 100, Max: 200},
	})
	if err != nil {
		t.Fatalf("добавление: %v", err)
	}
	if result.Added != 0 || result.Errors != 0 {
		t.Errorf("пустой список пользователей: ожидается {0 0}, получено %+v", result)
	}
}

func TestMockSendMessagesCounts(t *testing.T) {
	client := mockForTest()

	result, err := client.SendMessages(context.Background(), SendMessagesOptions{
		Users:   []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
		Message: "привет",
	})
	if err != nil {
		t.Fatalf("рассылка: %v", err)
	}
	if result.Sent+result.Errors != 10 {
		t.Errorf("сумма счётчиков должна равняться числу получателей: %+v", result)
	}
	if result.Sent != 9 {
		t.Errorf("мок отправляет 9 из 10, получено %d", result.Sent)
	}
}

func TestMockSearchUsers(t *testing.T) {
	client := mockForTest()

	users, err := client.SearchUsers(context.Background(), SearchUsersOptions{Query: "crypto", Limit: 2})
	if err != nil {
		t.Fatalf("поиск: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("лимит 2: получено %d", len(users))
	}
	if users[0].Username != "crypto0" {
		t.Errorf("имя пользователя строится от запроса: %q", users[0].Username)
	}
}

func TestMockLoginStatus(t *testing.T) {
	client := mockForTest()
	status := client.CheckLoginStatus(context.Background())
	if !status.LoggedIn {
		t.Error("мок всегда авторизован")
	}
}

func TestFactorySelectsMockByDefault(t *testing.T) {
	factory := NewFactory("anything-else", nil)
	client := factory(&models.TelegramAccount{PhoneNumber: "+1"}, nil)
	if _, ok := client.(*MockClient); !ok {
		t.Errorf("неизвестный режим должен давать мок, получен %T", client)
	}
}
