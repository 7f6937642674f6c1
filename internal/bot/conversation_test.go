package bot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBondariev/telegram-bot/internal/domain"
)

func TestBeginProfitCreatesDurableSession(t *testing.T) {
	h, api := newTestHandler(t)
	ctx := context.Background()

	h.beginProfit(ctx, 7, 7)

	require.Len(t, api.messagesTo(7), 1)

	sess, err := h.sessions.Get(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, domain.StageAwaitAmount, sess.Stage)
	assert.Equal(t, 1, sess.PromptMessageID)
	assert.Nil(t, sess.TimeTag)
}

func TestBadAmountEditsPromptInPlace(t *testing.T) {
	h, api := newTestHandler(t)
	ctx := context.Background()

	h.beginProfit(ctx, 7, 7)
	h.handleText(ctx, privateText(7, "это не число"))

	// the prompt was edited, not replaced
	edits := api.edits()
	require.Len(t, edits, 1)
	assert.EqualValues(t, 7, edits[0].ChatID)
	assert.Equal(t, 1, edits[0].MessageID)
	assert.Contains(t, edits[0].Text, "Не удалось распознать сумму")

	// the offending input is best-effort deleted
	dels := api.deleteRequests()
	require.Len(t, dels, 1)
	assert.Equal(t, 1000, dels[0].MessageID)

	// still waiting for the amount
	sess, err := h.sessions.Get(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, domain.StageAwaitAmount, sess.Stage)
}

func TestNonPositiveAmountRejected(t *testing.T) {
	h, api := newTestHandler(t)
	ctx := context.Background()

	h.beginProfit(ctx, 7, 7)
	h.handleText(ctx, privateText(7, "0"))

	edits := api.edits()
	require.Len(t, edits, 1)
	assert.Contains(t, edits[0].Text, "больше нуля")

	profits, err := h.profits.ByUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, profits)
}

func TestSubmitAmountCreatesPendingAndNotifiesApprover(t *testing.T) {
	h, api := newTestHandler(t)
	ctx := context.Background()

	h.beginProfit(ctx, 7, 7)
	h.handleText(ctx, privateText(7, "1 500,25"))

	profits, err := h.profits.ByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, profits, 1)
	p := profits[0]
	assert.Equal(t, domain.StatusPending, p.Status)
	assert.Equal(t, "1500.25", p.FinalAmount.String())
	assert.Equal(t, "1 500,25", p.Note)

	// mirrored under pending/
	pendingDoc := filepath.Join(h.cfg.StorageDir, "pending", "profit_1.json")
	assert.FileExists(t, pendingDoc)

	// approver got the moderation message
	adminMsgs := api.messagesTo(testAdminID)
	require.Len(t, adminMsgs, 1)
	assert.Contains(t, adminMsgs[0].Text, "Новый профит от @alice: 1 500,25 ₴")
	assert.NotNil(t, adminMsgs[0].ReplyMarkup)

	// prompt edited to the confirmation, dialog done
	edits := api.edits()
	require.Len(t, edits, 1)
	assert.Contains(t, edits[0].Text, "отправлена администратору")

	sess, err := h.sessions.Get(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestApproverDMFailureFallsBackToGroup(t *testing.T) {
	h, api := newTestHandler(t)
	api.failChats = map[int64]bool{testAdminID: true}
	ctx := context.Background()

	h.beginProfit(ctx, 7, 7)
	h.handleText(ctx, privateText(7, "700"))

	// the moderation message lands in the group instead, buttons included
	assert.Empty(t, api.messagesTo(testAdminID))
	groupMsgs := api.messagesTo(testGroupID)
	require.Len(t, groupMsgs, 1)
	assert.Contains(t, groupMsgs[0].Text, "Новый профит от @alice: 700 ₴")
	assert.NotNil(t, groupMsgs[0].ReplyMarkup)

	// no warning for the submitter, the dialog completes normally
	require.Len(t, api.messagesTo(7), 1)
	edits := api.edits()
	require.Len(t, edits, 1)
	assert.Contains(t, edits[0].Text, "отправлена администратору")

	profits, err := h.profits.ByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, profits, 1)
	assert.Equal(t, domain.StatusPending, profits[0].Status)
}

func TestApproverAndGroupUnreachableWarnsSubmitter(t *testing.T) {
	h, api := newTestHandler(t)
	api.failChats = map[int64]bool{testAdminID: true, testGroupID: true}
	ctx := context.Background()

	h.beginProfit(ctx, 7, 7)
	h.handleText(ctx, privateText(7, "700"))

	assert.Empty(t, api.messagesTo(testAdminID))
	assert.Empty(t, api.messagesTo(testGroupID))

	msgs := api.messagesTo(7)
	require.Len(t, msgs, 2) // the prompt, then the warning
	assert.Equal(t, approverUnreachableText, msgs[1].Text)

	// the record itself is safe and waits for moderation
	profits, err := h.profits.ByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, profits, 1)
	assert.Equal(t, domain.StatusPending, profits[0].Status)
}

func TestSuggestionDetourReturnsToAmountStage(t *testing.T) {
	h, api := newTestHandler(t)
	ctx := context.Background()

	h.beginProfit(ctx, 7, 7)
	h.beginSuggest(ctx, privateText(7, ""))

	sess, err := h.sessions.Get(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.True(t, sess.AwaitingSuggestion)

	h.handleText(ctx, privateText(7, "хочу тёмную тему"))

	// forwarded to the approver verbatim
	adminMsgs := api.messagesTo(testAdminID)
	require.Len(t, adminMsgs, 1)
	assert.Contains(t, adminMsgs[0].Text, "хочу тёмную тему")
	assert.Contains(t, adminMsgs[0].Text, "id=7")

	// back to the amount stage, dialog still alive
	sess, err = h.sessions.Get(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, domain.StageAwaitAmount, sess.Stage)
	assert.False(t, sess.AwaitingSuggestion)

	// and an amount still completes the dialog
	h.handleText(ctx, privateText(7, "500"))
	profits, err := h.profits.ByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, profits, 1)
}

func TestStandaloneSuggestDialog(t *testing.T) {
	h, api := newTestHandler(t)
	ctx := context.Background()

	h.beginSuggest(ctx, privateText(7, ""))

	sess, err := h.sessions.Get(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, domain.StageAwaitSuggestion, sess.Stage)

	h.handleText(ctx, privateText(7, "добавьте экспорт в csv"))

	adminMsgs := api.messagesTo(testAdminID)
	require.Len(t, adminMsgs, 1)
	assert.Contains(t, adminMsgs[0].Text, "добавьте экспорт в csv")

	sess, err = h.sessions.Get(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestMarkProfitTime(t *testing.T) {
	h, api := newTestHandler(t)
	ctx := context.Background()

	h.beginProfit(ctx, 7, 7)
	h.markProfitTime(ctx, privateText(7, ""))

	sess, err := h.sessions.Get(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.NotNil(t, sess.TimeTag)

	edits := api.edits()
	require.Len(t, edits, 1)
	assert.Contains(t, edits[0].Text, "Время отмечено")
}

func TestCancelCommandEditsPrompt(t *testing.T) {
	h, api := newTestHandler(t)
	ctx := context.Background()

	h.beginProfit(ctx, 7, 7)
	h.cancelDialog(ctx, privateText(7, ""))

	sess, err := h.sessions.Get(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, sess)

	edits := api.edits()
	require.Len(t, edits, 1)
	assert.Equal(t, 1, edits[0].MessageID)
	assert.Contains(t, edits[0].Text, "Заявка отменена")
}

func TestTimeoutFiresExactlyOnce(t *testing.T) {
	h, api := newTestHandler(t)
	ctx := context.Background()

	h.beginProfit(ctx, 7, 7)

	// shrink the window so the session is already past its full timeout
	h.cfg.SessionTimeout = 0
	time.Sleep(time.Millisecond)

	h.sweepExpiredSessions(ctx)

	sess, err := h.sessions.Get(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, sess)

	edits := api.edits()
	require.Len(t, edits, 1)
	assert.Contains(t, edits[0].Text, "Время на ввод истекло")

	// the second sweep finds nothing
	h.sweepExpiredSessions(ctx)
	assert.Len(t, api.edits(), 1)

	// an amount arriving after expiry is not applied to the dead session
	h.handleText(ctx, privateText(7, "1000"))
	profits, err := h.profits.ByUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, profits)
}

func TestFreshSessionSurvivesSweep(t *testing.T) {
	h, api := newTestHandler(t)
	ctx := context.Background()

	h.beginProfit(ctx, 7, 7)
	h.sweepExpiredSessions(ctx)

	sess, err := h.sessions.Get(ctx, 7)
	require.NoError(t, err)
	assert.NotNil(t, sess)
	assert.Empty(t, api.edits())
}
