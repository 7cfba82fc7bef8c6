package bot

import tele "gopkg.in/telebot.v4"

// replyButtons builds a reply keyboard from rows of text.
func replyButtons(rows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	var keyboard []tele.Row
	for _, row := range rows {
		var buttons []tele.Btn
		for _, label := range row {
			buttons = append(buttons, markup.Text(label))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}

// removeKeyboard returns a markup that hides the reply keyboard.
func removeKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

func mainMenu() *tele.ReplyMarkup {
	return replyButtons(
		[]string{"/manage_currency", "/get_currencies"},
		[]string{"/convert"},
	)
}

func manageMenu() *tele.ReplyMarkup {
	return replyButtons(
		[]string{btnAddCurrency, btnDeleteCurrency},
		[]string{btnUpdateCurrency, btnBack},
	)
}

func operationTypeMenu() *tele.ReplyMarkup {
	return replyButtons([]string{btnExpense, btnIncome})
}

func viewCurrencyMenu() *tele.ReplyMarkup {
	return replyButtons([]string{btnRUB, btnUSD, btnEUR})
}
