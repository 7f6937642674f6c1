package bot

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/IvanBondariev/telegram-bot/internal/domain"
)

type Window string

const (
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowAll   Window = "all"
)

func parseWindow(s string) Window {
	switch s {
	case "week":
		return WindowWeek
	case "month":
		return WindowMonth
	}
	return WindowAll
}

// windowStart resolves a reporting window to its lower bound on the
// resolution timestamp; nil means all-time.
func windowStart(w Window, now time.Time) *time.Time {
	var from time.Time
	switch w {
	case WindowWeek:
		from = now.AddDate(0, 0, -7)
	case WindowMonth:
		from = now.AddDate(0, 0, -30)
	default:
		return nil
	}
	return &from
}

type rankedRow struct {
	Name  string
	Sum   decimal.Decimal
	Count int
	Rank  int
}

// buildRanking groups approved rows by submitter, sums final amounts and
// assigns dense tie ranks: equal sums (at 2 decimals) share a rank and the
// next distinct sum takes the next position in the sorted order. Ties are
// ordered by name so the report is deterministic.
func buildRanking(rows []domain.Profit) []rankedRow {
	type agg struct {
		name  string
		sum   decimal.Decimal
		count int
	}
	byUser := make(map[int64]*agg)
	for _, p := range rows {
		a := byUser[p.UserID]
		if a == nil {
			a = &agg{name: displayName(p.Username, p.FirstName, p.UserID)}
			byUser[p.UserID] = a
		}
		a.sum = a.sum.Add(p.FinalAmount)
		a.count++
	}

	out := make([]rankedRow, 0, len(byUser))
	for _, a := range byUser {
		out = append(out, rankedRow{Name: a.name, Sum: a.sum.Round(2), Count: a.count})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Sum.Equal(out[j].Sum) {
			return out[i].Sum.GreaterThan(out[j].Sum)
		}
		return out[i].Name < out[j].Name
	})

	rank := 0
	for i := range out {
		if i == 0 || !out[i].Sum.Equal(out[i-1].Sum) {
			rank = i + 1
		}
		out[i].Rank = rank
	}
	return out
}

// rankPrefix gives the top three distinct ranks their medals; everything
// below is numbered.
func rankPrefix(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return fmt.Sprintf("%d.", rank)
}

func statsTitle(w Window) string {
	switch w {
	case WindowWeek:
		return "Статистика за неделю"
	case WindowMonth:
		return "Статистика за месяц"
	}
	return "Статистика за всё время"
}

func buildStatsText(w Window, rows []domain.Profit) string {
	if len(rows) == 0 {
		return statsTitle(w) + "\n\nЗа выбранный период нет подтверждённых профитов."
	}

	ranking := buildRanking(rows)
	total := decimal.Zero
	for _, r := range ranking {
		total = total.Add(r.Sum)
	}

	var b strings.Builder
	b.WriteString(statsTitle(w))
	b.WriteString("\n\n")
	for _, r := range ranking {
		b.WriteString(fmt.Sprintf("%s %s — %s\n", rankPrefix(r.Rank), r.Name, fmtUAH(r.Sum)))
	}
	b.WriteString("\n")
	b.WriteString("Итого: " + fmtUAH(total))
	return b.String()
}

func myTitle(w Window) string {
	switch w {
	case WindowWeek:
		return "Моя статистика за неделю"
	case WindowMonth:
		return "Моя статистика за месяц"
	}
	return "Моя статистика за всё время"
}

// buildMyText renders the personal report: tenure, approved total for the
// window and the top five resolved amounts with date-only timestamps.
func buildMyText(w Window, rows []domain.Profit, firstSeen *time.Time, now time.Time) string {
	from := windowStart(w, now)

	var approved []domain.Profit
	for _, p := range rows {
		if p.Status != domain.StatusApproved || p.ApprovedAt == nil {
			continue
		}
		if from != nil && p.ApprovedAt.Before(*from) {
			continue
		}
		approved = append(approved, p)
	}

	var lines []string
	lines = append(lines, myTitle(w), "")
	if firstSeen != nil {
		days := int(now.Sub(*firstSeen).Hours() / 24)
		lines = append(lines,
			fmt.Sprintf("Дата присоединения: %s • всего в боте: %d дн.", firstSeen.Format("2006-01-02"), days),
			"")
	}

	if len(approved) == 0 {
		lines = append(lines, "За выбранный период нет подтверждённых профитов.")
		return strings.Join(lines, "\n")
	}

	total := decimal.Zero
	for _, p := range approved {
		total = total.Add(p.FinalAmount)
	}

	top := make([]domain.Profit, len(approved))
	copy(top, approved)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].FinalAmount.GreaterThan(top[j].FinalAmount)
	})
	if len(top) > 5 {
		top = top[:5]
	}

	lines = append(lines, "Итого подтверждено: "+fmtUAH(total), "Топ-5 профитов:")
	for i, p := range top {
		lines = append(lines, fmt.Sprintf("%d. %s — %s", i+1, fmtUAH(p.FinalAmount), p.ApprovedAt.Format("2006-01-02")))
	}
	return strings.Join(lines, "\n")
}

func (h *Handler) statsText(ctx context.Context, w Window) (string, error) {
	rows, err := h.profits.ApprovedBetween(ctx, windowStart(w, time.Now().UTC()))
	if err != nil {
		return "", err
	}
	return buildStatsText(w, rows), nil
}

func (h *Handler) sendGroupStats(ctx context.Context, ev Event) {
	// Per-chat anti-spam from the old bot: repeated /stats within 3 seconds
	// are swallowed.
	now := time.Now()
	if last, ok := h.statsCooldown[ev.ChatID]; ok && now.Sub(last) < 3*time.Second {
		return
	}
	h.statsCooldown[ev.ChatID] = now

	text, err := h.statsText(ctx, WindowWeek)
	if err != nil {
		log.Printf("stats: %v", err)
		return
	}
	msg := tgbotapi.NewMessage(ev.ChatID, text)
	msg.ReplyMarkup = makePeriodKeyboard("stats")
	_, _ = h.api.Send(msg)
}

func (h *Handler) switchGroupStatsPeriod(ctx context.Context, ev Event, period string) {
	text, err := h.statsText(ctx, parseWindow(period))
	if err != nil {
		log.Printf("stats: %v", err)
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(ev.ChatID, ev.MessageID, text, makePeriodKeyboard("stats"))
	_, _ = h.api.Send(edit)
}

func (h *Handler) myStatsText(ctx context.Context, userID int64, w Window) (string, bool, error) {
	rows, err := h.profits.ByUser(ctx, userID)
	if err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	firstSeen, err := h.users.FirstSeen(ctx, userID)
	if err != nil {
		log.Printf("first seen: %v", err)
	}
	return buildMyText(w, rows, firstSeen, time.Now().UTC()), true, nil
}

func (h *Handler) sendMyStats(ctx context.Context, ev Event) {
	text, ok, err := h.myStatsText(ctx, ev.UserID, WindowAll)
	if err != nil {
		log.Printf("my stats: %v", err)
		return
	}
	if !ok {
		h.reply(ev.ChatID, noProfitsYetText)
		return
	}
	msg := tgbotapi.NewMessage(ev.ChatID, text)
	msg.ReplyMarkup = makePeriodKeyboard("my")
	_, _ = h.api.Send(msg)
}

func (h *Handler) switchMyStatsPeriod(ctx context.Context, ev Event, period string) {
	text, ok, err := h.myStatsText(ctx, ev.UserID, parseWindow(period))
	if err != nil {
		log.Printf("my stats: %v", err)
		return
	}
	if !ok {
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(ev.ChatID, ev.MessageID, text, makePeriodKeyboard("my"))
	_, _ = h.api.Send(edit)
}
