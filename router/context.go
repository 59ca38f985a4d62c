package router

import (
	"context"
	"log/slog"

	"github.com/prilive-com/parkbot/i18n"
	"github.com/prilive-com/parkbot/tg"
)

// Context carries one update through the middleware pipeline to its handler.
// It is not safe for concurrent use; each update gets its own Context.
type Context struct {
	ctx    context.Context
	update *tg.Update
	route  string
	lang   string
	logger *slog.Logger

	translator i18n.Translator
	handler    HandlerFunc
	response   tg.Method
}

// Context returns the request context of the webhook call.
func (c *Context) Context() context.Context { return c.ctx }

// Update returns the update being handled.
func (c *Context) Update() *tg.Update { return c.update }

// Route names the selected handler: "/start" for commands, RouteMessage,
// RouteCallbackQuery, RouteInlineQuery, or "" when the update is ignored.
func (c *Context) Route() string { return c.route }

// Sender returns the user that caused the update, if any.
func (c *Context) Sender() *tg.User { return c.update.Sender() }

// Chat returns the chat of the update, if any.
func (c *Context) Chat() *tg.Chat { return c.update.Chat() }

// Lang returns the language code used for translations.
func (c *Context) Lang() string { return c.lang }

// Logger returns a logger annotated with the update ID.
func (c *Context) Logger() *slog.Logger { return c.logger }

// SetTranslator installs the translator and language used by T.
func (c *Context) SetTranslator(tr i18n.Translator, lang string) {
	c.translator = tr
	c.lang = lang
}

// T translates key into the context language. Without a translator the key
// itself is returned.
func (c *Context) T(key string) string {
	if c.translator == nil {
		return key
	}
	return c.translator.T(c.lang, key)
}

// ReplyOption configures a reply message.
type ReplyOption func(*tg.SendMessage)

// WithParseMode sets the parse mode.
func WithParseMode(mode tg.ParseMode) ReplyOption {
	return func(m *tg.SendMessage) {
		m.ParseMode = mode
	}
}

// WithReplyMarkup sets the reply markup (inline keyboard, keyboard removal, ...).
func WithReplyMarkup(markup any) ReplyOption {
	return func(m *tg.SendMessage) {
		m.ReplyMarkup = markup
	}
}

// WithReplyTo quotes the message being answered.
func WithReplyTo(messageID int) ReplyOption {
	return func(m *tg.SendMessage) {
		m.ReplyToMessageID = messageID
	}
}

// Reply answers in the update's chat with a sendMessage call. Forum topic
// messages are answered in the same topic.
func (c *Context) Reply(text string, opts ...ReplyOption) error {
	chat := c.Chat()
	if chat == nil {
		return tg.ErrNoChat
	}
	msg := tg.SendMessage{ChatID: chat.ID, Text: text}
	if m := c.update.Message; m != nil && chat.IsForum {
		msg.MessageThreadID = m.MessageThreadID
	}
	for _, opt := range opts {
		opt(&msg)
	}
	if !msg.ParseMode.IsValid() {
		return tg.NewValidationError("parse_mode", "unsupported parse mode "+msg.ParseMode.String())
	}
	return c.Respond(msg)
}

// AnswerCallbackQuery answers the update's callback query. The query ID is
// filled in.
func (c *Context) AnswerCallbackQuery(answer tg.AnswerCallbackQuery) error {
	cq := c.update.CallbackQuery
	if cq == nil {
		return tg.ErrNoQuery
	}
	answer.CallbackQueryID = cq.ID
	return c.Respond(answer)
}

// AnswerInlineQuery answers the update's inline query. The query ID is
// filled in.
func (c *Context) AnswerInlineQuery(answer tg.AnswerInlineQuery) error {
	iq := c.update.InlineQuery
	if iq == nil {
		return tg.ErrNoQuery
	}
	answer.InlineQueryID = iq.ID
	return c.Respond(answer)
}

// Respond attaches m as the webhook response. Only one call fits in a
// webhook response, so a second Respond fails with ErrReplyAlreadySet.
func (c *Context) Respond(m tg.Method) error {
	if c.response != nil {
		return ErrReplyAlreadySet
	}
	c.response = m
	return nil
}

// Response returns the attached call, or nil.
func (c *Context) Response() tg.Method { return c.response }
