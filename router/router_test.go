package router_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/parkbot/internal/testutil"
	"github.com/prilive-com/parkbot/router"
	"github.com/prilive-com/parkbot/tg"
)

func routed(t *testing.T) (*router.Router, *[]string) {
	t.Helper()
	var hits []string
	record := func(name string) router.HandlerFunc {
		return func(c *router.Context) error {
			hits = append(hits, name+"|"+c.Route())
			return nil
		}
	}
	r := router.New()
	r.Command("start", record("start"))
	r.Command("help", record("help"))
	r.OnMessage(record("message"))
	r.OnCallbackQuery(record("callback"))
	r.OnInlineQuery(record("inline"))
	return r, &hits
}

func channelPost(text string) *tg.Message {
	msg := testutil.TestMessage(testutil.TestGroupChat(tg.ChatTypeChannel), "", text)
	msg.From = nil
	return msg
}

func TestDispatch_Selection(t *testing.T) {
	group := testutil.TestGroupChat(tg.ChatTypeGroup)

	tests := []struct {
		name   string
		update tg.Update
		want   []string
	}{
		{"registered command", testutil.CommandUpdate(1, "/start", "en"), []string{"start|/start"}},
		{"command with args", testutil.CommandUpdate(1, "/help me please", "en"), []string{"help|/help"}},
		{"command addressed to bot", testutil.CommandUpdate(1, "/start@parked_bot", "en"), []string{"start|/start"}},
		{"unknown command falls to message", testutil.CommandUpdate(1, "/settings", "en"), []string{"message|message"}},
		{"plain text", testutil.MessageUpdate(1, testutil.TestChat(), "en", "hello"), []string{"message|message"}},
		{"group text", testutil.MessageUpdate(1, group, "en", "hello"), []string{"message|message"}},
		{"group command", testutil.MessageUpdate(1, group, "en", "/start"), []string{"start|/start"}},
		{"callback with data", testutil.CallbackUpdate(1, "btn", "en"), []string{"callback|callback_query"}},
		{"callback without data", testutil.CallbackUpdate(1, "", "en"), nil},
		{"inline query", testutil.InlineQueryUpdate(1, "q", "en"), []string{"inline|inline_query"}},
		{"channel post command", tg.Update{UpdateID: 1, ChannelPost: channelPost("/start")}, []string{"start|/start"}},
		{"channel post unknown command ignored", tg.Update{UpdateID: 1, ChannelPost: channelPost("/settings")}, nil},
		{"channel post text ignored", tg.Update{UpdateID: 1, ChannelPost: channelPost("hello")}, nil},
		{"edited message ignored", tg.Update{UpdateID: 1, EditedMessage: testutil.TestMessage(testutil.TestChat(), "en", "x")}, nil},
		{"empty update ignored", tg.Update{UpdateID: 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, hits := routed(t)
			reply, err := r.Dispatch(context.Background(), &tt.update)
			require.NoError(t, err)
			assert.Nil(t, reply)
			assert.Equal(t, tt.want, *hits)
		})
	}
}

func TestDispatch_NilUpdate(t *testing.T) {
	r, hits := routed(t)
	reply, err := r.Dispatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, reply)
	assert.Empty(t, *hits)
}

func TestDispatch_NoHandlers(t *testing.T) {
	r := router.New()
	u := testutil.CommandUpdate(1, "/start", "en")
	reply, err := r.Dispatch(context.Background(), &u)
	require.NoError(t, err)
	assert.Nil(t, reply)
}

func TestDispatch_MiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) router.Middleware {
		return func(c *router.Context, next router.HandlerFunc) error {
			order = append(order, name+">")
			err := next(c)
			order = append(order, "<"+name)
			return err
		}
	}

	r := router.New()
	r.Use(mw("a"), mw("b"))
	r.Use(mw("c"))
	r.Command("start", func(c *router.Context) error {
		order = append(order, "handler")
		return nil
	})

	u := testutil.CommandUpdate(1, "/start", "en")
	_, err := r.Dispatch(context.Background(), &u)
	require.NoError(t, err)
	assert.Equal(t, []string{"a>", "b>", "c>", "handler", "<c", "<b", "<a"}, order)
}

func TestDispatch_MiddlewareRunsForIgnoredUpdates(t *testing.T) {
	var seen []string
	r := router.New()
	r.Use(func(c *router.Context, next router.HandlerFunc) error {
		seen = append(seen, c.Update().Kind())
		return next(c)
	})

	u := tg.Update{UpdateID: 1, EditedMessage: testutil.TestMessage(testutil.TestChat(), "en", "x")}
	reply, err := r.Dispatch(context.Background(), &u)
	require.NoError(t, err)
	assert.Nil(t, reply)
	assert.Equal(t, []string{tg.KindEditedMessage}, seen)
}

func TestDispatch_MiddlewareShortCircuit(t *testing.T) {
	called := false
	r := router.New()
	r.Use(func(c *router.Context, next router.HandlerFunc) error {
		return nil
	})
	r.Command("start", func(c *router.Context) error {
		called = true
		return c.Reply("unreachable")
	})

	u := testutil.CommandUpdate(1, "/start", "en")
	reply, err := r.Dispatch(context.Background(), &u)
	require.NoError(t, err)
	assert.Nil(t, reply)
	assert.False(t, called)
}

func TestDispatch_HandlerError(t *testing.T) {
	boom := errors.New("boom")
	r := router.New()
	r.Command("start", func(c *router.Context) error {
		_ = c.Reply("partial")
		return boom
	})

	u := testutil.CommandUpdate(1, "/start", "en")
	reply, err := r.Dispatch(context.Background(), &u)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, reply)
}

func TestDispatch_Reply(t *testing.T) {
	r := router.New()
	r.Command("start", func(c *router.Context) error {
		return c.Reply("<b>parked</b>",
			router.WithParseMode(tg.ParseModeHTML),
			router.WithReplyMarkup(tg.RemoveKeyboard()))
	})

	u := testutil.CommandUpdate(7, "/start", "en")
	reply, err := r.Dispatch(context.Background(), &u)
	require.NoError(t, err)

	msg, ok := reply.(tg.SendMessage)
	require.True(t, ok, "reply is %T", reply)
	assert.Equal(t, testutil.TestChatID, msg.ChatID)
	assert.Equal(t, "<b>parked</b>", msg.Text)
	assert.Equal(t, tg.ParseModeHTML, msg.ParseMode)
	assert.Equal(t, tg.RemoveKeyboard(), msg.ReplyMarkup)
}

func TestDispatch_ReplyInForumTopic(t *testing.T) {
	chat := testutil.TestGroupChat(tg.ChatTypeSupergroup)
	chat.IsForum = true
	u := testutil.MessageUpdate(1, chat, "en", "hi")
	u.Message.MessageThreadID = 42

	r := router.New()
	r.OnMessage(func(c *router.Context) error {
		return c.Reply("hi", router.WithReplyTo(u.Message.MessageID))
	})

	reply, err := r.Dispatch(context.Background(), &u)
	require.NoError(t, err)
	msg := reply.(tg.SendMessage)
	assert.Equal(t, 42, msg.MessageThreadID)
	assert.Equal(t, 1, msg.ReplyToMessageID)
}

func TestContext_ReplyRejectsUnknownParseMode(t *testing.T) {
	r := router.New()
	r.Command("start", func(c *router.Context) error {
		return c.Reply("hi", router.WithParseMode("html"))
	})

	u := testutil.CommandUpdate(1, "/start", "en")
	reply, err := r.Dispatch(context.Background(), &u)
	assert.Nil(t, reply)
	assert.ErrorIs(t, err, tg.ErrInvalidConfig)
}

func TestContext_SingleReply(t *testing.T) {
	var second error
	r := router.New()
	r.Command("start", func(c *router.Context) error {
		require.NoError(t, c.Reply("first"))
		second = c.Reply("second")
		return nil
	})

	u := testutil.CommandUpdate(1, "/start", "en")
	reply, err := r.Dispatch(context.Background(), &u)
	require.NoError(t, err)
	assert.ErrorIs(t, second, router.ErrReplyAlreadySet)
	assert.Equal(t, "first", reply.(tg.SendMessage).Text)
}

func TestContext_Answers(t *testing.T) {
	r := router.New()
	r.OnCallbackQuery(func(c *router.Context) error {
		return c.AnswerCallbackQuery(tg.AnswerCallbackQuery{Text: "alert", ShowAlert: true, CacheTime: 5})
	})
	r.OnInlineQuery(func(c *router.Context) error {
		return c.AnswerInlineQuery(tg.AnswerInlineQuery{CacheTime: 5})
	})

	cb := testutil.CallbackUpdate(1, "data", "en")
	reply, err := r.Dispatch(context.Background(), &cb)
	require.NoError(t, err)
	assert.Equal(t, tg.AnswerCallbackQuery{CallbackQueryID: "cbq_1", Text: "alert", ShowAlert: true, CacheTime: 5}, reply)

	iq := testutil.InlineQueryUpdate(2, "", "en")
	reply, err = r.Dispatch(context.Background(), &iq)
	require.NoError(t, err)
	assert.Equal(t, tg.AnswerInlineQuery{InlineQueryID: "iq_1", CacheTime: 5}, reply)
}

func TestContext_WrongKind(t *testing.T) {
	r := router.New()
	var errs []error
	r.OnMessage(func(c *router.Context) error {
		errs = append(errs,
			c.AnswerCallbackQuery(tg.AnswerCallbackQuery{}),
			c.AnswerInlineQuery(tg.AnswerInlineQuery{}))
		return nil
	})
	r.OnInlineQuery(func(c *router.Context) error {
		errs = append(errs, c.Reply("no chat"))
		return nil
	})

	msg := testutil.MessageUpdate(1, testutil.TestChat(), "en", "hi")
	_, err := r.Dispatch(context.Background(), &msg)
	require.NoError(t, err)
	iq := testutil.InlineQueryUpdate(2, "", "en")
	_, err = r.Dispatch(context.Background(), &iq)
	require.NoError(t, err)

	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], tg.ErrNoQuery)
	assert.ErrorIs(t, errs[1], tg.ErrNoQuery)
	assert.ErrorIs(t, errs[2], tg.ErrNoChat)
}

func TestContext_TWithoutTranslator(t *testing.T) {
	var got string
	r := router.New()
	r.Command("start", func(c *router.Context) error {
		got = c.T("default")
		return nil
	})

	u := testutil.CommandUpdate(1, "/start", "en")
	_, err := r.Dispatch(context.Background(), &u)
	require.NoError(t, err)
	assert.Equal(t, "default", got)
}
