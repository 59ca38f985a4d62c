// Package router dispatches Telegram updates to handlers.
//
// Every update runs through the middleware registered with Use, in
// registration order, and then through at most one handler:
//
//  1. a message whose leading command was registered with Command
//  2. any other message, if OnMessage is set
//  3. a callback query with non-empty data, if OnCallbackQuery is set
//  4. an inline query, if OnInlineQuery is set
//
// Everything else is ignored. Handlers answer through Context.Reply,
// Context.AnswerCallbackQuery or Context.AnswerInlineQuery; the resulting call
// is returned by Dispatch for embedding in the webhook response.
//
//	r := router.New(router.WithLogger(logger))
//	r.Use(router.Recover(), router.Logging(), router.Localize(loc))
//	r.Command("start", func(c *router.Context) error {
//		return c.Reply(c.T("default"), router.WithParseMode(tg.ParseModeHTML))
//	})
package router
