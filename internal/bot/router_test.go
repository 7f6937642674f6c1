package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func privateUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 1,
			From:      &tgbotapi.User{ID: 7, UserName: "alice", FirstName: "Alice"},
			Chat:      &tgbotapi.Chat{ID: 7, Type: "private"},
			Text:      text,
		},
	}
}

func TestClassifyDropsEmptyText(t *testing.T) {
	// whitespace-only messages never become events, so an open dialog is
	// left untouched by them
	for _, text := range []string{"", "   ", "\n"} {
		ev := Classify(privateUpdate(text))
		assert.Equal(t, EventNone, ev.Kind, "text %q", text)
	}
}

func TestClassifyPromotesReplyButtons(t *testing.T) {
	ev := Classify(privateUpdate(btnAddProfit))
	assert.Equal(t, EventCommand, ev.Kind)
	assert.Equal(t, "profit", ev.Command)

	// in a group the same label is just text
	upd := privateUpdate(btnAddProfit)
	upd.Message.Chat.Type = "group"
	upd.Message.Chat.ID = testGroupID
	ev = Classify(upd)
	assert.Equal(t, EventText, ev.Kind)
}

func TestClassifyText(t *testing.T) {
	ev := Classify(privateUpdate("1500"))
	assert.Equal(t, EventText, ev.Kind)
	assert.EqualValues(t, 7, ev.UserID)
	assert.Equal(t, "1500", ev.Text)
	assert.True(t, ev.Private)
}
