package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) sendStart(ev Event) {
	intro := "Привет! Добро пожаловать в команду.\n" +
		"Мы растём вместе, делимся результатами и поддерживаем дисциплину.\n" +
		"Я помогу фиксировать профиты, следить за прогрессом и держать статистику прозрачной.\n\n" +
		"Ниже — краткая подсказка по командам:"
	common := "\n\nКоманды для всех:\n" +
		"• /profit — отправить заявку на профит (только в личке)\n" +
		"• /my — личная статистика (только в личке)\n" +
		"• /stats — показать сводную статистику (только в группе)\n" +
		"• /help — подсказка по командам"

	text := intro + common
	if ev.UserID == h.cfg.AdminID {
		text += "\n\nКоманды администратора:\n" +
			"• /reset_profits — аннулировать все профиты\n" +
			"• /reset_user_profits <user_id или @username> — аннулировать профиты пользователя"
	} else {
		text += "\n\nПримечание: админские команды скрыты и доступны только администраторам."
	}

	quick := tgbotapi.NewMessage(ev.ChatID, "Быстрые кнопки доступны всегда:")
	quick.ReplyMarkup = makeQuickReplyKeyboard()
	_, _ = h.api.Send(quick)

	msg := tgbotapi.NewMessage(ev.ChatID, text)
	msg.ReplyMarkup = makeStartKeyboard()
	_, _ = h.api.Send(msg)
}

func (h *Handler) sendHelp(ev Event) {
	lines := []string{"Подсказка по командам:"}
	if ev.Private {
		lines = append(lines,
			"",
			"Личные сообщения:",
			"• /start — краткая справка и начальный экран",
			"• /profit — отправить заявку на профит",
			"• /cancel — отменить текущую заявку",
			"• /my — личная статистика",
			"• /suggest — отправить предложение по улучшению",
		)
		if ev.UserID == h.cfg.AdminID {
			lines = append(lines,
				"",
				"Команды администратора:",
				"• /reset_profits — аннулировать все профиты",
				"• /reset_user_profits <user_id или @username> — аннулировать профиты пользователя",
			)
		}
		lines = append(lines, "", statsGroupOnlyText)
	} else {
		lines = append(lines,
			"",
			"Группа:",
			"• /stats — показать сводную статистику; используйте кнопки «За неделю», «За месяц», «За всё время»",
		)
	}
	h.reply(ev.ChatID, strings.Join(lines, "\n"))
}
