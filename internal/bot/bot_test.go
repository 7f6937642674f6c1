package bot

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/IvanBondariev/telegram-bot/internal/config"
	"github.com/IvanBondariev/telegram-bot/internal/domain"
	"github.com/IvanBondariev/telegram-bot/internal/mirror"
	"github.com/IvanBondariev/telegram-bot/internal/repo"
)

const (
	testAdminID int64 = 99
	testGroupID int64 = -100
)

// fakeAPI records outbound traffic instead of talking to Telegram. Chats
// listed in failChats refuse messages, which is how tests cut off the
// approver or the group.
type fakeAPI struct {
	sent      []tgbotapi.Chattable
	requests  []tgbotapi.Chattable
	nextID    int
	failChats map[int64]bool
}

var errSendFailed = errors.New("send failed")

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok && f.failChats[m.ChatID] {
		return tgbotapi.Message{}, errSendFailed
	}
	f.sent = append(f.sent, c)
	f.nextID++
	return tgbotapi.Message{MessageID: f.nextID}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) messagesTo(chatID int64) []tgbotapi.MessageConfig {
	var out []tgbotapi.MessageConfig
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok && m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeAPI) edits() []tgbotapi.EditMessageTextConfig {
	var out []tgbotapi.EditMessageTextConfig
	for _, c := range f.sent {
		if e, ok := c.(tgbotapi.EditMessageTextConfig); ok {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeAPI) deleteRequests() []tgbotapi.DeleteMessageConfig {
	var out []tgbotapi.DeleteMessageConfig
	for _, c := range f.requests {
		if d, ok := c.(tgbotapi.DeleteMessageConfig); ok {
			out = append(out, d)
		}
	}
	return out
}

func newTestHandler(t *testing.T) (*Handler, *fakeAPI) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.Profit{}, &domain.User{}, &domain.Session{}))

	cfg := config.Config{
		BotToken:       "test-token",
		AdminID:        testAdminID,
		GroupID:        testGroupID,
		Timezone:       "UTC",
		StorageDir:     t.TempDir(),
		SessionTimeout: 600 * time.Second,
	}

	api := &fakeAPI{}
	h := NewHandler(api, cfg,
		repo.NewUsers(gdb),
		repo.NewProfits(gdb),
		repo.NewSessions(gdb),
		mirror.New(cfg.StorageDir),
	)
	return h, api
}

func privateText(userID int64, text string) Event {
	return Event{
		Kind:      EventText,
		UserID:    userID,
		Username:  "alice",
		FirstName: "Alice",
		ChatID:    userID,
		Private:   true,
		MessageID: 1000,
		Text:      text,
	}
}

func adminCallback(data string, chatID int64, messageID int) Event {
	return Event{
		Kind:       EventCallback,
		UserID:     testAdminID,
		ChatID:     chatID,
		MessageID:  messageID,
		Private:    true,
		Data:       data,
		CallbackID: "cb-1",
	}
}
