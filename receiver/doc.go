// Package receiver is the HTTP front door of the parked bot.
//
// Telegram POSTs each update to the webhook. The update is decoded, handed to
// a Dispatcher, and the dispatcher's reply is written straight into the
// response body so Telegram executes it on the bot's behalf. No bot token is
// needed, which is what lets one instance answer for many bots.
//
// # Request pipeline
//
//  1. Content-Type is always application/json
//  2. GET on any path returns a hint and counts root_get_requests
//  3. methods other than GET and POST get 405
//  4. the X-Telegram-Bot-Api-Secret-Token header is checked when configured
//  5. a global token bucket rejects floods with 429
//  6. an open circuit breaker rejects with 503
//  7. the body is size limited and decoded (400 on bad JSON)
//  8. the reply, or {}, is written with 200
//
// # Server
//
//	cfg, err := receiver.LoadConfig()
//	handler := receiver.NewWebhookHandler(logger, bot, *cfg,
//	    receiver.WithWebhookMetrics(bot.Metrics()))
//	srv := receiver.NewServer(*cfg, handler,
//	    receiver.WithServerLogger(logger),
//	    receiver.WithServerMetrics(bot.Metrics()))
//	err = srv.Run(ctx)
//
// Run blocks until ctx is cancelled, then drains and shuts down gracefully.
package receiver
