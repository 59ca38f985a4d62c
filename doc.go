// Package parkbot answers Telegram updates on behalf of bots that are parked:
// bots whose owners have pointed their webhook here instead of at a real
// backend.
//
// Every answer is returned inside the webhook HTTP response, so parkbot never
// needs a bot token and one instance serves any number of bots.
//
// # Behaviour
//
//   - /start, /help and /settings get the localized parked notice in any chat
//   - other messages get the same notice, but only in private chats
//   - button presses get a localized alert
//   - inline queries get no results and a button leading to the private chat
//   - a user is answered at most once per sender window (2.5s by default)
//
// # Quick Start
//
//	bot, err := parkbot.New(parkbot.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bot.Close()
//
//	srv := receiver.NewServer(cfg, receiver.NewWebhookHandler(logger, bot, cfg))
//	srv.Run(ctx)
//
// Translations live in the i18n package; the HTTP side lives in receiver.
package parkbot
