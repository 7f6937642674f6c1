package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/IvanBondariev/telegram-bot/internal/domain"
)

// beginProfit starts (or restarts) the submission dialog: one prompt message
// that gets edited in place for the rest of the dialog, and a durable session
// remembering it.
func (h *Handler) beginProfit(ctx context.Context, userID, chatID int64) {
	msg := tgbotapi.NewMessage(chatID, promptProfitText)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableNotification = true
	msg.ReplyMarkup = makeAmountKeyboard(true)

	sent, err := h.api.Send(msg)
	if err != nil {
		log.Printf("profit prompt: %v", err)
		return
	}

	sess := &domain.Session{
		UserID:          userID,
		Stage:           domain.StageAwaitAmount,
		ChatID:          chatID,
		PromptMessageID: sent.MessageID,
	}
	if err := h.sessions.Save(ctx, sess); err != nil {
		log.Printf("save session: %v", err)
	}
}

// receiveAmount handles text while the dialog waits for the sum. Bad input
// edits the prompt in place and best-effort-deletes the offending message;
// good input creates the pending submission and tears the session down.
func (h *Handler) receiveAmount(ctx context.Context, ev Event, sess *domain.Session) {
	amount, err := ParseAmount(ev.Text)
	if err != nil {
		errText := errAmountParseText
		switch {
		case errors.Is(err, ErrNotPositive):
			errText = errAmountNotPositiveText
		case errors.Is(err, ErrBadAmount):
			errText = errAmountFormatText
		}
		h.editPromptHTML(sess, errText, makeAmountKeyboard(false))
		_, _ = h.api.Request(tgbotapi.NewDeleteMessage(ev.ChatID, ev.MessageID))
		if err := h.sessions.Save(ctx, sess); err != nil {
			log.Printf("save session: %v", err)
		}
		return
	}

	id, err := h.profits.Create(ctx, ev.UserID, optional(ev.Username), optional(ev.FirstName), amount, ev.Text)
	if err != nil {
		log.Printf("create profit: %v", err)
		h.reply(ev.ChatID, createFailedText)
		return
	}

	row, err := h.profits.Get(ctx, id)
	if err != nil {
		log.Printf("load profit %d: %v", id, err)
	}
	if row != nil {
		if err := h.mirror.Save(*row); err != nil {
			log.Printf("mirror profit %d: %v", id, err)
		}
	}

	h.notifyApprover(ev, sess, id, row, amount)

	h.editOrReply(sess.ChatID, sess.PromptMessageID,
		fmt.Sprintf(submissionSentFmt, fmtUAH(amount)))

	if _, err := h.sessions.Delete(ctx, ev.UserID); err != nil {
		log.Printf("delete session: %v", err)
	}
}

// notifyApprover forwards the new submission with moderation buttons to the
// approver's DM, falling back to the group chat, and warns the submitter
// when both are unreachable.
func (h *Handler) notifyApprover(ev Event, sess *domain.Session, id int64, row *domain.Profit, amount decimal.Decimal) {
	name := displayName(optional(ev.Username), optional(ev.FirstName), ev.UserID)

	when := time.Now().UTC()
	if sess.TimeTag != nil {
		when = *sess.TimeTag
	} else if row != nil {
		when = row.CreatedAt
	}
	text := fmt.Sprintf(newProfitNoticeFmt, name, fmtUAH(amount), h.formatTimeLocal(when))

	kb := makeModerationKeyboard(id)
	msg := tgbotapi.NewMessage(h.cfg.AdminID, text)
	msg.ReplyMarkup = kb
	if _, err := h.api.Send(msg); err == nil {
		return
	}

	if h.cfg.GroupID != 0 {
		groupMsg := tgbotapi.NewMessage(h.cfg.GroupID, text)
		groupMsg.ReplyMarkup = kb
		if _, err := h.api.Send(groupMsg); err == nil {
			return
		}
	}

	h.reply(ev.ChatID, approverUnreachableText)
}

// markProfitTime pins the submission's time tag to now and re-edits the
// prompt to show it.
func (h *Handler) markProfitTime(ctx context.Context, ev Event) {
	sess, err := h.sessions.Get(ctx, ev.UserID)
	if err != nil || sess == nil || sess.Stage != domain.StageAwaitAmount {
		return
	}
	now := time.Now().UTC()
	sess.TimeTag = &now
	if err := h.sessions.Save(ctx, sess); err != nil {
		log.Printf("save session: %v", err)
	}
	h.editPromptHTML(sess, promptTimeMarkedText, makeAmountKeyboard(true))
}

func (h *Handler) cancelProfitButton(ctx context.Context, ev Event) {
	if _, err := h.sessions.Delete(ctx, ev.UserID); err != nil {
		log.Printf("delete session: %v", err)
	}
	h.editOrReply(ev.ChatID, ev.MessageID, cancelledButtonText)
}

// cancelDialog handles /cancel for whichever dialog the user has open.
func (h *Handler) cancelDialog(ctx context.Context, ev Event) {
	sess, err := h.sessions.Get(ctx, ev.UserID)
	if err != nil {
		log.Printf("load session: %v", err)
		return
	}
	if sess == nil || sess.Stage == domain.StageAwaitEdit {
		return
	}
	if _, err := h.sessions.Delete(ctx, ev.UserID); err != nil {
		log.Printf("delete session: %v", err)
	}
	if sess.PromptMessageID != 0 {
		h.editOrReply(sess.ChatID, sess.PromptMessageID, cancelledCommandText)
	} else {
		h.reply(ev.ChatID, cancelledCommandText)
	}
}

// beginSuggest enters the suggestion flow. Inside an open profit dialog it
// becomes a detour: one message is forwarded and the dialog returns to the
// amount stage. Standalone it is its own one-message dialog.
func (h *Handler) beginSuggest(ctx context.Context, ev Event) {
	sess, err := h.sessions.Get(ctx, ev.UserID)
	if err != nil {
		log.Printf("load session: %v", err)
		return
	}

	if sess != nil && sess.Stage == domain.StageAwaitAmount {
		sess.AwaitingSuggestion = true
		if err := h.sessions.Save(ctx, sess); err != nil {
			log.Printf("save session: %v", err)
		}
		h.reply(ev.ChatID, suggestDetourPromptText)
		return
	}

	sent, err := h.api.Send(tgbotapi.NewMessage(ev.ChatID, suggestPromptText))
	if err != nil {
		log.Printf("suggest prompt: %v", err)
		return
	}
	if err := h.sessions.Save(ctx, &domain.Session{
		UserID:          ev.UserID,
		Stage:           domain.StageAwaitSuggestion,
		ChatID:          ev.ChatID,
		PromptMessageID: sent.MessageID,
	}); err != nil {
		log.Printf("save session: %v", err)
	}
}

// receiveDetourSuggestion consumes exactly one message inside the profit
// dialog, forwards it to the approver verbatim and drops back to the amount
// stage.
func (h *Handler) receiveDetourSuggestion(ctx context.Context, ev Event, sess *domain.Session) {
	h.forwardSuggestion(ev)
	sess.AwaitingSuggestion = false
	if err := h.sessions.Save(ctx, sess); err != nil {
		log.Printf("save session: %v", err)
	}
	h.reply(ev.ChatID, suggestDetourThanksText)
}

func (h *Handler) receiveSuggestion(ctx context.Context, ev Event) {
	h.forwardSuggestion(ev)
	if _, err := h.sessions.Delete(ctx, ev.UserID); err != nil {
		log.Printf("delete session: %v", err)
	}
	h.reply(ev.ChatID, suggestThanksText)
}

func (h *Handler) forwardSuggestion(ev Event) {
	username := "—"
	if ev.Username != "" {
		username = ev.Username
	}
	text := fmt.Sprintf(suggestionForwardFmt, ev.FirstName, username, ev.UserID, ev.Text)
	_, _ = h.api.Send(tgbotapi.NewMessage(h.cfg.AdminID, text))
}

func (h *Handler) editPromptHTML(sess *domain.Session, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(sess.ChatID, sess.PromptMessageID, text, kb)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := h.api.Send(edit); err != nil {
		msg := tgbotapi.NewMessage(sess.ChatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = kb
		_, _ = h.api.Send(msg)
	}
}

// RunSessionSweeper enforces the fixed inactivity timeout. Deleting the row
// first makes the timeout fire exactly once: input racing the sweeper either
// still finds the session or finds nothing, never both.
func (h *Handler) RunSessionSweeper(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.sweepExpiredSessions(ctx)
		}
	}
}

func (h *Handler) sweepExpiredSessions(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-h.cfg.SessionTimeout)
	expired, err := h.sessions.Expired(ctx, cutoff)
	if err != nil {
		log.Printf("expired sessions: %v", err)
		return
	}
	for _, s := range expired {
		gone, err := h.sessions.Delete(ctx, s.UserID)
		if err != nil || !gone {
			continue
		}
		if s.PromptMessageID != 0 {
			h.editOrReply(s.ChatID, s.PromptMessageID, timeoutText)
		} else if s.ChatID != 0 {
			h.reply(s.ChatID, timeoutText)
		}
	}
}
