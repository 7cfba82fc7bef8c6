package bot

import (
	"errors"

	tele "gopkg.in/telebot.v4"

	"github.com/tajik-krasava/RPP/internal/fsm"
)

// onText routes free-form text. A dialog in progress always consumes the
// message first; otherwise the text is matched against menu-button labels,
// and anything left over gets the help reply.
func (b *Bot) onText(c tele.Context) error {
	ctx := requestContext(c)

	if b.engine.InProgress(ctx, c.Sender().ID) {
		return b.advance(c)
	}
	if handler, ok := b.registry.Button(c.Text()); ok {
		return handler(c)
	}
	return c.Send(msgHelp, mainMenu())
}

func (b *Bot) advance(c tele.Context) error {
	out, err := b.engine.Advance(requestContext(c), c.Sender().ID, c.Text())
	if err != nil {
		// Session disappeared between the InProgress check and the
		// advance; treat the text as stray input.
		if errors.Is(err, fsm.ErrNoSession) {
			return c.Send(msgHelp, mainMenu())
		}
		return b.sendInternalError(c, err)
	}

	switch out.Kind {
	case fsm.OutcomeInvalid:
		return c.Send(out.Reply)
	case fsm.OutcomeNext:
		if markup := promptMarkup(out.State); markup != nil {
			return c.Send(out.Reply, markup)
		}
		return c.Send(out.Reply)
	case fsm.OutcomeDone:
		if markup := doneMarkup(out.Workflow); markup != nil {
			return c.Send(out.Reply, markup)
		}
		return c.Send(out.Reply)
	}
	return nil
}

// promptMarkup picks the keyboard for an intermediate prompt. Entering the
// sum step follows the operation-type keyboard, which must go away.
func promptMarkup(state fsm.State) *tele.ReplyMarkup {
	if state == stateOperationSum {
		return removeKeyboard()
	}
	return nil
}

// doneMarkup picks the keyboard sent with a workflow's final reply.
func doneMarkup(workflow string) *tele.ReplyMarkup {
	switch workflow {
	case wfAddCurrency, wfDeleteCurrency, wfUpdateCurrency:
		return manageMenu()
	case wfConvert, wfRegistration:
		return mainMenu()
	case wfAddOperation, wfViewOperations:
		return removeKeyboard()
	}
	return nil
}
