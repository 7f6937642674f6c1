package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// EventKind is a closed union of everything the transport can hand us.
// The handler switches over it exhaustively; unknown updates classify to
// EventNone and are dropped.
type EventKind int

const (
	EventNone EventKind = iota
	EventCommand
	EventText
	EventCallback
)

// Event is the transport-independent form of one inbound update. Handlers
// work off these plain fields only, never off the raw update.
type Event struct {
	Kind EventKind

	UserID    int64
	Username  string
	FirstName string

	ChatID    int64
	Private   bool
	MessageID int

	Command string // EventCommand: name without the slash
	Args    string // EventCommand: everything after the name
	Text    string // EventText: trimmed message text
	Data    string // EventCallback: callback data

	CallbackID string // EventCallback: id to answer
}

// Classify maps a raw update into the event union. Reply-keyboard button
// presses arrive as plain text and are promoted to their commands here so
// the rest of the bot only ever sees one spelling of each action.
func Classify(upd tgbotapi.Update) Event {
	if q := upd.CallbackQuery; q != nil {
		ev := Event{
			Kind:       EventCallback,
			UserID:     q.From.ID,
			Username:   q.From.UserName,
			FirstName:  q.From.FirstName,
			Data:       q.Data,
			CallbackID: q.ID,
		}
		if q.Message != nil {
			ev.ChatID = q.Message.Chat.ID
			ev.MessageID = q.Message.MessageID
			ev.Private = q.Message.Chat.IsPrivate()
		}
		return ev
	}

	msg := upd.Message
	if msg == nil || msg.From == nil {
		return Event{Kind: EventNone}
	}

	ev := Event{
		UserID:    msg.From.ID,
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
		ChatID:    msg.Chat.ID,
		Private:   msg.Chat.IsPrivate(),
		MessageID: msg.MessageID,
	}

	if msg.IsCommand() {
		ev.Kind = EventCommand
		ev.Command = msg.Command()
		ev.Args = strings.TrimSpace(msg.CommandArguments())
		return ev
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		ev.Kind = EventNone
		return ev
	}

	if ev.Private {
		if cmd, ok := buttonCommand(text); ok {
			ev.Kind = EventCommand
			ev.Command = cmd
			return ev
		}
	}

	ev.Kind = EventText
	ev.Text = text
	return ev
}

func buttonCommand(text string) (string, bool) {
	switch text {
	case btnAddProfit:
		return "profit", true
	case btnMyStats:
		return "my", true
	case btnHelp:
		return "help", true
	case btnStats:
		return "stats", true
	case btnSuggest:
		return "suggest", true
	}
	return "", false
}
