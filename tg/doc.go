// Package tg holds the Telegram Bot API types a webhook responder reads and
// writes.
//
// Inbound: Update and its payloads (Message, CallbackQuery, InlineQuery, ...).
// Outbound: Method values (SendMessage, AnswerCallbackQuery,
// AnswerInlineQuery) that marshal with an embedded "method" field, so they can
// be written straight into a webhook HTTP response.
//
//	var u tg.Update
//	_ = json.Unmarshal(body, &u)
//	if name, _, ok := u.Message.Command(); ok && name == "start" {
//	    reply := tg.SendMessage{ChatID: u.Message.Chat.ID, Text: "hi"}
//	    _ = json.NewEncoder(w).Encode(reply)
//	}
package tg
