package testutil

import (
	"testing/fstest"
	"time"
	"unicode/utf16"

	"github.com/prilive-com/parkbot/tg"
)

// Test constants for consistent test data.
const (
	// TestUserID is a test user ID.
	TestUserID = int64(987654321)

	// TestChatID is the private chat with TestUserID.
	TestChatID = TestUserID

	// TestGroupID is a test group chat ID.
	TestGroupID = int64(-1001234567890)

	// TestUsername is a test username.
	TestUsername = "testuser"
)

// Epoch is a fixed start time for fake clocks.
var Epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// TestUser returns a test user fixture speaking lang.
func TestUser(lang string) *tg.User {
	return &tg.User{
		ID:           TestUserID,
		IsBot:        false,
		FirstName:    "Test",
		LastName:     "User",
		Username:     TestUsername,
		LanguageCode: lang,
	}
}

// TestChat returns a test private chat fixture.
func TestChat() *tg.Chat {
	return &tg.Chat{
		ID:        TestChatID,
		Type:      string(tg.ChatTypePrivate),
		FirstName: "Test",
		LastName:  "User",
		Username:  TestUsername,
	}
}

// TestGroupChat returns a test chat fixture of the given non-private type.
func TestGroupChat(chatType tg.ChatType) *tg.Chat {
	return &tg.Chat{
		ID:    TestGroupID,
		Type:  string(chatType),
		Title: "Test " + chatType.String(),
	}
}

// TestMessage returns a text message from a user speaking lang in chat.
// Text starting with "/" gets a bot_command entity like Telegram adds.
func TestMessage(chat *tg.Chat, lang, text string) *tg.Message {
	msg := &tg.Message{
		MessageID: 1,
		Date:      Epoch.Unix(),
		Chat:      chat,
		From:      TestUser(lang),
		Text:      text,
	}
	if len(text) > 1 && text[0] == '/' {
		end := len(text)
		for i, r := range text {
			if r == ' ' {
				end = i
				break
			}
		}
		msg.Entities = []tg.MessageEntity{{
			Type:   tg.EntityBotCommand,
			Offset: 0,
			Length: len(utf16.Encode([]rune(text[:end]))),
		}}
	}
	return msg
}

// CommandUpdate returns a private-chat update carrying a command ("/start").
func CommandUpdate(updateID int, command, lang string) tg.Update {
	return tg.Update{
		UpdateID: updateID,
		Message:  TestMessage(TestChat(), lang, command),
	}
}

// MessageUpdate returns an update with a plain text message in chat.
func MessageUpdate(updateID int, chat *tg.Chat, lang, text string) tg.Update {
	return tg.Update{
		UpdateID: updateID,
		Message:  TestMessage(chat, lang, text),
	}
}

// CallbackUpdate returns an update with a callback query carrying data.
func CallbackUpdate(updateID int, data, lang string) tg.Update {
	return tg.Update{
		UpdateID: updateID,
		CallbackQuery: &tg.CallbackQuery{
			ID:           "cbq_1",
			From:         TestUser(lang),
			Message:      TestMessage(TestChat(), lang, "Original message"),
			ChatInstance: "instance_123",
			Data:         data,
		},
	}
}

// InlineQueryUpdate returns an update with an inline query.
func InlineQueryUpdate(updateID int, query, lang string) tg.Update {
	return tg.Update{
		UpdateID: updateID,
		InlineQuery: &tg.InlineQuery{
			ID:    "iq_1",
			From:  TestUser(lang),
			Query: query,
		},
	}
}

// LocaleFS builds an in-memory locale directory from language -> YAML.
func LocaleFS(locales map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for lang, body := range locales {
		fsys[lang+".yaml"] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}
