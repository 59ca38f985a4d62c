package parkbot

import (
	"github.com/prilive-com/parkbot/i18n"
	"github.com/prilive-com/parkbot/internal/metrics"
	"github.com/prilive-com/parkbot/router"
	"github.com/prilive-com/parkbot/tg"
)

// Commands answered with the parked notice in every chat type.
var Commands = []string{"start", "help", "settings"}

// Answer settings shared by every parked reply.
const (
	AnswerCacheTime      = 5
	InlineStartParameter = "from_inline_query"
)

func registerHandlers(r *router.Router, m *metrics.Metrics) {
	for _, name := range Commands {
		label := "/" + name
		r.Command(name, func(c *router.Context) error {
			m.Update(label)
			return replyParked(c)
		})
	}

	// Plain messages in groups and channels stay unanswered so a parked
	// bot never spams a shared chat.
	r.OnMessage(func(c *router.Context) error {
		if !c.Chat().IsPrivate() {
			return nil
		}
		m.Update(metrics.LabelGenericMessage)
		return replyParked(c)
	})

	r.OnCallbackQuery(func(c *router.Context) error {
		m.Update(metrics.LabelCallbackQuery)
		return c.AnswerCallbackQuery(tg.AnswerCallbackQuery{
			Text:      c.T(i18n.KeyCallbackQueryAlertText),
			ShowAlert: true,
			CacheTime: AnswerCacheTime,
		})
	})

	r.OnInlineQuery(func(c *router.Context) error {
		m.Update(metrics.LabelInlineQuery)
		text := c.T(i18n.KeyInlineQueryAlertText)
		return c.AnswerInlineQuery(tg.AnswerInlineQuery{
			CacheTime:  AnswerCacheTime,
			IsPersonal: false,
			Button: &tg.InlineQueryResultsButton{
				Text:           text,
				StartParameter: InlineStartParameter,
			},
			SwitchPMText:      text,
			SwitchPMParameter: InlineStartParameter,
		})
	})
}

func replyParked(c *router.Context) error {
	return c.Reply(c.T(i18n.KeyDefault),
		router.WithParseMode(tg.ParseModeHTML),
		router.WithReplyMarkup(tg.RemoveKeyboard()))
}
