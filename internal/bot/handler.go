package bot

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/IvanBondariev/telegram-bot/internal/config"
	"github.com/IvanBondariev/telegram-bot/internal/domain"
	"github.com/IvanBondariev/telegram-bot/internal/mirror"
	"github.com/IvanBondariev/telegram-bot/internal/repo"
)

// Sender is the slice of the bot API the handler needs. *tgbotapi.BotAPI
// satisfies it; tests plug in a fake.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	api Sender
	cfg config.Config
	loc *time.Location

	users    *repo.Users
	profits  *repo.Profits
	sessions *repo.Sessions
	mirror   *mirror.Store

	statsCooldown map[int64]time.Time // per-chat /stats anti-spam
}

func NewHandler(api Sender, cfg config.Config, u *repo.Users, p *repo.Profits, s *repo.Sessions, m *mirror.Store) *Handler {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("timezone %q: %v, falling back to UTC", cfg.Timezone, err)
		loc = time.UTC
	}
	return &Handler{
		api:           api,
		cfg:           cfg,
		loc:           loc,
		users:         u,
		profits:       p,
		sessions:      s,
		mirror:        m,
		statsCooldown: make(map[int64]time.Time),
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	ev := Classify(upd)
	if ev.Kind == EventNone {
		return
	}

	if err := h.users.EnsureSeen(ctx, ev.UserID, optional(ev.Username), optional(ev.FirstName)); err != nil {
		log.Printf("ensure user seen: %v", err)
	}

	switch ev.Kind {
	case EventCommand:
		h.handleCommand(ctx, ev)
	case EventText:
		h.handleText(ctx, ev)
	case EventCallback:
		h.handleCallback(ctx, ev)
	case EventNone:
	}
}

func (h *Handler) handleCommand(ctx context.Context, ev Event) {
	switch ev.Command {
	case "start":
		if ev.Private {
			h.sendStart(ev)
		}
	case "help":
		h.sendHelp(ev)
	case "profit":
		if ev.Private {
			h.beginProfit(ctx, ev.UserID, ev.ChatID)
		}
	case "cancel":
		if ev.Private {
			h.cancelDialog(ctx, ev)
		}
	case "my":
		if ev.Private {
			h.sendMyStats(ctx, ev)
		}
	case "stats":
		if ev.Private {
			h.reply(ev.ChatID, statsGroupOnlyText)
		} else {
			h.sendGroupStats(ctx, ev)
		}
	case "suggest":
		if ev.Private {
			h.beginSuggest(ctx, ev)
		}
	case "reset_profits":
		if ev.Private {
			h.resetAllProfits(ctx, ev)
		}
	case "reset_user_profits":
		if ev.Private {
			h.resetUserProfits(ctx, ev)
		}
	}
}

// handleText routes free text by the sender's durable session; text with no
// session behind it is ignored.
func (h *Handler) handleText(ctx context.Context, ev Event) {
	if !ev.Private {
		return
	}

	sess, err := h.sessions.Get(ctx, ev.UserID)
	if err != nil {
		log.Printf("load session: %v", err)
		return
	}
	if sess == nil {
		return
	}

	switch sess.Stage {
	case domain.StageAwaitAmount:
		if sess.AwaitingSuggestion {
			h.receiveDetourSuggestion(ctx, ev, sess)
			return
		}
		h.receiveAmount(ctx, ev, sess)
	case domain.StageAwaitSuggestion:
		h.receiveSuggestion(ctx, ev)
	case domain.StageAwaitEdit:
		h.receiveEditAmount(ctx, ev, sess)
	}
}

func (h *Handler) handleCallback(ctx context.Context, ev Event) {
	// Telegram wants every callback answered, even ones we drop.
	defer func() { _, _ = h.api.Request(tgbotapi.NewCallback(ev.CallbackID, "")) }()

	switch ev.Data {
	case "start_profit":
		h.beginProfit(ctx, ev.UserID, ev.ChatID)
		return
	case "start:stats":
		h.reply(ev.ChatID, statsGroupOnlyText)
		return
	case "start:help":
		h.sendHelp(ev)
		return
	case "start:my":
		h.sendMyStats(ctx, ev)
		return
	case "start:suggest":
		h.beginSuggest(ctx, ev)
		return
	case "profit_cancel":
		h.cancelProfitButton(ctx, ev)
		return
	case "profit_set_time":
		h.markProfitTime(ctx, ev)
		return
	}

	switch {
	case strings.HasPrefix(ev.Data, "stats:"):
		h.switchGroupStatsPeriod(ctx, ev, strings.TrimPrefix(ev.Data, "stats:"))
	case strings.HasPrefix(ev.Data, "my:"):
		h.switchMyStatsPeriod(ctx, ev, strings.TrimPrefix(ev.Data, "my:"))
	default:
		if action, id, ok := splitModeration(ev.Data); ok {
			h.moderate(ctx, ev, action, id)
		}
	}
}

// splitModeration parses "approve:12", "reject:12", "edit:12".
func splitModeration(data string) (action string, id int64, ok bool) {
	action, idStr, found := strings.Cut(data, ":")
	if !found {
		return "", 0, false
	}
	switch action {
	case "approve", "reject", "edit":
	default:
		return "", 0, false
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return "", 0, false
	}
	return action, id, true
}

func (h *Handler) reply(chatID int64, text string) {
	_, _ = h.api.Send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) editText(chatID int64, messageID int, text string) error {
	_, err := h.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
	return err
}

// editOrReply edits an existing message in place and falls back to a fresh
// message when the edit is rejected by the transport.
func (h *Handler) editOrReply(chatID int64, messageID int, text string) {
	if err := h.editText(chatID, messageID, text); err != nil {
		h.reply(chatID, text)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
