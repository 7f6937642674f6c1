package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Reply-keyboard button labels; they arrive as plain text and are mapped
// back to commands by the router.
const (
	btnAddProfit = "Добавить профит"
	btnMyStats   = "Моя статистика"
	btnHelp      = "Помощь"
	btnStats     = "Статистика"
	btnSuggest   = "Предложения по улучшению"
)

func makePeriodKeyboard(prefix string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("За неделю", prefix+":week"),
			tgbotapi.NewInlineKeyboardButtonData("За месяц", prefix+":month"),
			tgbotapi.NewInlineKeyboardButtonData("За всё время", prefix+":all"),
		},
	)
}

func makeStartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("Отправить профит", "start_profit"),
			tgbotapi.NewInlineKeyboardButtonData("Моя статистика", "start:my"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("Статистика", "start:stats"),
			tgbotapi.NewInlineKeyboardButtonData("Помощь", "start:help"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("Предложения по улучшению", "start:suggest"),
		},
	)
}

func makeModerationKeyboard(profitID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("Подтвердить", fmt.Sprintf("approve:%d", profitID)),
			tgbotapi.NewInlineKeyboardButtonData("Отклонить", fmt.Sprintf("reject:%d", profitID)),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("Изменить сумму", fmt.Sprintf("edit:%d", profitID)),
		},
	)
}

func makeAmountKeyboard(withTimeButton bool) tgbotapi.InlineKeyboardMarkup {
	cancel := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("❌ Отменить", "profit_cancel"),
	}
	if !withTimeButton {
		return tgbotapi.NewInlineKeyboardMarkup(cancel)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("⏰ Поставить текущее время", "profit_set_time"),
		},
		cancel,
	)
}

func makeQuickReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		[]tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButton(btnAddProfit),
			tgbotapi.NewKeyboardButton(btnMyStats),
		},
		[]tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButton(btnHelp),
		},
		[]tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButton(btnSuggest),
		},
	)
	kb.ResizeKeyboard = true
	return kb
}
