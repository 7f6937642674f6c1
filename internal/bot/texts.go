package bot

// User-facing texts. Wording is inherited from the group's previous bot so
// nobody has to relearn the flow.
const (
	promptProfitText = "💰 <b>Добавление профита</b>\n\n" +
		"📝 Укажите сумму профита в гривнах:\n" +
		"• Только числовое значение\n" +
		"• Можно использовать десятичные дроби\n\n" +
		"📋 <b>Примеры:</b>\n" +
		"• <code>1000</code>\n" +
		"• <code>1500.50</code>\n" +
		"• <code>1 500</code>\n\n" +
		"⚡️ Для быстрого ввода можете отметить текущее время"

	promptTimeMarkedText = "💰 <b>Добавление профита</b>\n\n" +
		"✅ <b>Время отмечено!</b>\n\n" +
		"📝 Укажите сумму профита в гривнах:\n" +
		"• Только числовое значение\n" +
		"• Можно использовать десятичные дроби\n\n" +
		"📋 <b>Примеры:</b>\n" +
		"• <code>1000</code>\n" +
		"• <code>1500.50</code>\n" +
		"• <code>1 500</code>\n\n" +
		"⚡️ Для быстрого ввода можете отметить текущее время"

	errAmountParseText = "❌ <b>Ошибка ввода</b>\n\n" +
		"🔍 Не удалось распознать сумму в вашем сообщении.\n\n" +
		amountExamplesText

	errAmountFormatText = "❌ <b>Ошибка формата</b>\n\n" +
		"🔢 Некорректное числовое значение.\n\n" +
		amountExamplesText

	errAmountNotPositiveText = "❌ <b>Некорректная сумма</b>\n\n" +
		"⚠️ Сумма профита должна быть больше нуля.\n\n" +
		amountExamplesText

	amountExamplesText = "📋 <b>Правильные примеры:</b>\n" +
		"• <code>1500</code>\n" +
		"• <code>2000.50</code>\n" +
		"• <code>1 500</code>\n\n" +
		"💡 Попробуйте ещё раз или отмените операцию"

	cancelledButtonText  = "Заявка отменена. Если передумаете — отправьте новую командой /profit."
	cancelledCommandText = "Заявка отменена. Чтобы начать заново, используйте /profit."
	timeoutText          = "Время на ввод истекло. Заявка отменена. Чтобы начать заново, используйте /profit."

	statsGroupOnlyText = "Статистика доступна только в группе: используйте /stats там"

	suggestPromptText       = "Опишите ваше предложение по улучшению одним сообщением. Для отмены — /cancel."
	suggestDetourPromptText = "Опишите ваше предложение по улучшению одним сообщением. После этого вернёмся к вводу суммы профита."
	suggestThanksText       = "Спасибо! Ваше предложение отправлено администратору."
	suggestDetourThanksText = "Спасибо! Ваше предложение отправлено администратору. Вернёмся к заявке на профит."

	onlyAdminActionText  = "Только администратор может выполнять это действие."
	onlyAdminCommandText = "Эта команда доступна только администратору."

	approverUnreachableText = "Внимание: не удалось уведомить администратора. Проверьте настройки GROUP_ID/ADMIN_ID."

	createFailedText     = "❌ Не удалось сохранить заявку, попробуйте ещё раз."
	submissionSentFmt    = "Заявка на профит %s отправлена администратору на проверку."
	newProfitNoticeFmt   = "Новый профит от %s: %s • время: %s"
	suggestionForwardFmt = "Предложение по улучшению:\nОт: %s (@%s, id=%d)\n\n%s"
	noProfitsYetText     = "У вас пока нет заявок на профит."

	profitNotFoundText  = "Профит не найден."
	approvedLineFmt     = "✅ Подтверждён профит %s от %s • время: %s"
	rejectedLineFmt     = "❌ Отклонён профит %s от %s • время: %s"
	approvedDMFmt       = "Ваш профит подтверждён: %s 🎉 Отличная работа!"
	rejectedDMFmt       = "Ваш профит отклонён: %s."
	celebrationFmt      = "💸 Плюс профит от %s: %s — красавец!"
	celebrationTailText = "🦣 Мамонт в ловушке! Это был отличный залив, но нужно ещё. Продолжаем охоту! 🪤"

	editPromptDMText        = "Введите новую сумму для профита в личном чате."
	editPromptFallbackText  = "Откройте личный чат с ботом и введите новую сумму."
	editBadNumberText       = "Некорректное число. Введите заново."
	editUpdateFailedText    = "❌ Не удалось обновить сумму (БД)."
	editDoneFmt             = "Заявка #%d обновлена. Итоговая сумма: %s"
	editAlreadyResolvedText = "Заявка уже была рассмотрена; пользователь об изменении не уведомлялся."

	resetFailedText    = "❌ Не удалось аннулировать заявки (БД)."
	resetAllDoneText   = "Все заявки переведены в отклонённые."
	resetUserDoneText  = "Профиты пользователя аннулированы."
	resetUsageText     = "Использование: /reset_user_profits <user_id или @username>"
	resetBadTargetText = "Укажите корректный идентификатор пользователя (число) или @username."
	resetNoRowsText    = "У пользователя нет заявок на профит."
	resetNoUserFmt     = "Не найдено профитов для пользователя @%s."
)
