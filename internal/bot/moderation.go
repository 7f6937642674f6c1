package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/IvanBondariev/telegram-bot/internal/domain"
)

// moderate handles approve/reject/edit button presses. Anyone but the
// configured approver gets an ephemeral alert and nothing else happens.
func (h *Handler) moderate(ctx context.Context, ev Event, action string, profitID int64) {
	if ev.UserID != h.cfg.AdminID {
		_, _ = h.api.Request(tgbotapi.NewCallbackWithAlert(ev.CallbackID, onlyAdminActionText))
		return
	}

	if action == "edit" {
		h.beginEditAmount(ctx, ev, profitID)
		return
	}

	row, err := h.profits.Get(ctx, profitID)
	if err != nil {
		log.Printf("load profit %d: %v", profitID, err)
		return
	}
	if row == nil {
		h.reply(ev.ChatID, profitNotFoundText)
		return
	}

	status := domain.StatusApproved
	if action == "reject" {
		status = domain.StatusRejected
	}

	changed, err := h.profits.Resolve(ctx, profitID, status, ev.UserID)
	if err != nil {
		log.Printf("resolve profit %d: %v", profitID, err)
		return
	}

	row, err = h.profits.Get(ctx, profitID)
	if err != nil || row == nil {
		log.Printf("reload profit %d: %v", profitID, err)
		return
	}

	// Projection into the document tree. Re-running this on a no-op press is
	// deliberate: it is the opportunistic repair point for a mirror left
	// stale by an earlier crash.
	if err := h.mirror.Save(*row); err != nil {
		log.Printf("mirror profit %d: %v", profitID, err)
	}

	name := displayName(row.Username, row.FirstName, row.UserID)
	line := fmt.Sprintf(rejectedLineFmt, fmtUAH(row.FinalAmount), name, h.formatTimeLocal(row.CreatedAt))
	if row.Status == domain.StatusApproved {
		line = fmt.Sprintf(approvedLineFmt, fmtUAH(row.FinalAmount), name, h.formatTimeLocal(row.CreatedAt))
	}
	h.editOrReply(ev.ChatID, ev.MessageID, line)

	if !changed {
		// Already resolved earlier; the data layer stayed untouched and the
		// submitter was notified the first time around.
		return
	}

	if status == domain.StatusApproved {
		dm := tgbotapi.NewMessage(row.UserID, fmt.Sprintf(approvedDMFmt, fmtUAH(row.FinalAmount)))
		if _, err := h.api.Send(dm); err == nil && h.cfg.ApprovedSticker != "" {
			_, _ = h.api.Send(tgbotapi.NewSticker(row.UserID, tgbotapi.FileID(h.cfg.ApprovedSticker)))
		}
		h.broadcastApproved(name, row)
		return
	}

	_, _ = h.api.Send(tgbotapi.NewMessage(row.UserID, fmt.Sprintf(rejectedDMFmt, fmtUAH(row.FinalAmount))))
}

// broadcastApproved celebrates in the shared chat. Entirely best-effort.
func (h *Handler) broadcastApproved(name string, row *domain.Profit) {
	if h.cfg.GroupID == 0 {
		return
	}
	text := fmt.Sprintf(celebrationFmt, name, fmtUAH(row.FinalAmount))
	if _, err := h.api.Send(tgbotapi.NewMessage(h.cfg.GroupID, text)); err != nil {
		return
	}
	if h.cfg.GroupSticker != "" {
		_, _ = h.api.Send(tgbotapi.NewSticker(h.cfg.GroupID, tgbotapi.FileID(h.cfg.GroupSticker)))
	}
	_, _ = h.api.Send(tgbotapi.NewMessage(h.cfg.GroupID, celebrationTailText))
}

// beginEditAmount takes the single outstanding edit pointer. The pointer is
// a durable session row keyed by the approver, so at most one edit is in
// flight and it survives a restart.
func (h *Handler) beginEditAmount(ctx context.Context, ev Event, profitID int64) {
	if err := h.sessions.Save(ctx, &domain.Session{
		UserID:       ev.UserID,
		Stage:        domain.StageAwaitEdit,
		ChatID:       h.cfg.AdminID,
		EditProfitID: profitID,
	}); err != nil {
		log.Printf("save edit pointer: %v", err)
		return
	}

	msg := tgbotapi.NewMessage(h.cfg.AdminID, editPromptDMText)
	if _, err := h.api.Send(msg); err != nil {
		h.reply(ev.ChatID, editPromptFallbackText)
	}
}

// receiveEditAmount applies the approver's replacement amount with the same
// grammar submissions use, re-mirrors into the partition matching the
// record's current status and clears the pointer.
func (h *Handler) receiveEditAmount(ctx context.Context, ev Event, sess *domain.Session) {
	amount, err := ParseAmount(ev.Text)
	if err != nil {
		h.reply(ev.ChatID, editBadNumberText)
		return
	}

	if err := h.profits.UpdateFinalAmount(ctx, sess.EditProfitID, amount); err != nil {
		log.Printf("update final amount %d: %v", sess.EditProfitID, err)
		h.reply(ev.ChatID, editUpdateFailedText)
		return
	}

	row, err := h.profits.Get(ctx, sess.EditProfitID)
	if err != nil {
		log.Printf("reload profit %d: %v", sess.EditProfitID, err)
	}
	if row != nil {
		if err := h.mirror.Save(*row); err != nil {
			log.Printf("mirror profit %d: %v", sess.EditProfitID, err)
		}
	}

	if _, err := h.sessions.Delete(ctx, ev.UserID); err != nil {
		log.Printf("clear edit pointer: %v", err)
	}

	text := fmt.Sprintf(editDoneFmt, sess.EditProfitID, fmtUAH(amount))
	if row != nil && row.Status != domain.StatusPending {
		text += "\n" + editAlreadyResolvedText
	}
	msg := tgbotapi.NewMessage(ev.ChatID, text)
	msg.ReplyMarkup = makeModerationKeyboard(sess.EditProfitID)
	_, _ = h.api.Send(msg)
}

// resetAllProfits forces every non-rejected submission to rejected and wipes
// the pending/approved partitions of the mirror.
func (h *Handler) resetAllProfits(ctx context.Context, ev Event) {
	if ev.UserID != h.cfg.AdminID {
		h.reply(ev.ChatID, onlyAdminCommandText)
		return
	}

	if _, err := h.profits.ResetAll(ctx); err != nil {
		log.Printf("reset profits: %v", err)
		h.reply(ev.ChatID, resetFailedText)
		return
	}
	if err := h.mirror.PurgeActive(); err != nil {
		log.Printf("purge mirror: %v", err)
	}
	h.reply(ev.ChatID, resetAllDoneText)
}

func (h *Handler) resetUserProfits(ctx context.Context, ev Event) {
	if ev.UserID != h.cfg.AdminID {
		h.reply(ev.ChatID, onlyAdminCommandText)
		return
	}

	arg := strings.TrimSpace(ev.Args)
	if arg == "" {
		h.reply(ev.ChatID, resetUsageText)
		return
	}

	var targetID int64
	if username, ok := strings.CutPrefix(arg, "@"); ok {
		ids, err := h.profits.UserIDsByUsername(ctx, username)
		if err != nil {
			log.Printf("ids by username: %v", err)
			return
		}
		if len(ids) == 0 {
			h.reply(ev.ChatID, fmt.Sprintf(resetNoUserFmt, username))
			return
		}
		targetID = ids[0]
	} else {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			h.reply(ev.ChatID, resetBadTargetText)
			return
		}
		targetID = id
	}

	rows, err := h.profits.ByUser(ctx, targetID)
	if err != nil {
		log.Printf("profits by user: %v", err)
		return
	}
	if len(rows) == 0 {
		h.reply(ev.ChatID, resetNoRowsText)
		return
	}

	if _, err := h.profits.ResetUser(ctx, targetID); err != nil {
		log.Printf("reset user profits: %v", err)
		h.reply(ev.ChatID, resetFailedText)
		return
	}
	for _, row := range rows {
		if err := h.mirror.RemoveAll(row.ID); err != nil {
			log.Printf("mirror remove %d: %v", row.ID, err)
		}
	}
	h.reply(ev.ChatID, resetUserDoneText)
}
