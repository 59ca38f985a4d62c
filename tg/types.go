package tg

import "strings"

// Message represents a Telegram message.
//
// Only the fields the responder reads or logs are decoded; everything else in
// the payload is ignored.
type Message struct {
	MessageID       int                   `json:"message_id"`
	MessageThreadID int                   `json:"message_thread_id,omitempty"`
	From            *User                 `json:"from,omitempty"`
	SenderChat      *Chat                 `json:"sender_chat,omitempty"`
	Date            int64                 `json:"date"`
	Chat            *Chat                 `json:"chat"`
	ReplyToMessage  *Message              `json:"reply_to_message,omitempty"`
	ViaBot          *User                 `json:"via_bot,omitempty"`
	EditDate        int64                 `json:"edit_date,omitempty"`
	MediaGroupID    string                `json:"media_group_id,omitempty"`
	Text            string                `json:"text,omitempty"`
	Entities        []MessageEntity       `json:"entities,omitempty"`
	Caption         string                `json:"caption,omitempty"`
	CaptionEntities []MessageEntity       `json:"caption_entities,omitempty"`
	Location        *Location             `json:"location,omitempty"`
	NewChatMembers  []User                `json:"new_chat_members,omitempty"`
	LeftChatMember  *User                 `json:"left_chat_member,omitempty"`
	ReplyMarkup     *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// Command extracts a bot command from the message.
//
// A command is text (or a media caption) starting with a bot_command entity at
// offset 0. The "@username" suffix is stripped whatever username it names, so
// "/start@somebot go" yields ("start", "go", true). Messages without entities
// still count as commands when the text starts with "/".
func (m *Message) Command() (name, args string, ok bool) {
	if m == nil {
		return "", "", false
	}

	text, entities := m.Text, m.Entities
	if text == "" {
		text, entities = m.Caption, m.CaptionEntities
	}
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}

	end := len(text)
	if len(entities) > 0 {
		first := entities[0]
		if first.Type != EntityBotCommand || first.Offset != 0 {
			return "", "", false
		}
		end = utf16Offset(text, first.Length)
	} else if i := strings.IndexAny(text, " \n\t"); i >= 0 {
		end = i
	}

	if end <= 1 {
		return "", "", false
	}
	cmd := text[1:end]
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	if cmd == "" {
		return "", "", false
	}
	return cmd, strings.TrimSpace(text[end:]), true
}

// ChatType returns the typed chat type, or "" when the chat is unknown.
func (m *Message) ChatType() ChatType {
	if m == nil || m.Chat == nil {
		return ""
	}
	return ChatType(m.Chat.Type)
}

// utf16Offset converts a length in UTF-16 code units (how Telegram measures
// entities) into a byte offset into s.
func utf16Offset(s string, units int) int {
	n := 0
	for i, r := range s {
		if n >= units {
			return i
		}
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return len(s)
}

// User represents a Telegram user or bot.
type User struct {
	ID                      int64  `json:"id"`
	IsBot                   bool   `json:"is_bot"`
	FirstName               string `json:"first_name"`
	LastName                string `json:"last_name,omitempty"`
	Username                string `json:"username,omitempty"`
	LanguageCode            string `json:"language_code,omitempty"`
	IsPremium               bool   `json:"is_premium,omitempty"`
	CanJoinGroups           bool   `json:"can_join_groups,omitempty"`
	CanReadAllGroupMessages bool   `json:"can_read_all_group_messages,omitempty"`
	SupportsInlineQueries   bool   `json:"supports_inline_queries,omitempty"`
}

// ChatType is the "type" field of a Chat.
type ChatType string

// Chat types.
const (
	ChatTypePrivate    ChatType = "private"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSupergroup ChatType = "supergroup"
	ChatTypeChannel    ChatType = "channel"
)

func (c ChatType) String() string {
	return string(c)
}

// Chat represents a Telegram chat.
type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsForum   bool   `json:"is_forum,omitempty"`
}

// IsPrivate reports whether c is a one-to-one chat with a user. A nil chat
// is not private.
func (c *Chat) IsPrivate() bool {
	return c != nil && ChatType(c.Type) == ChatTypePrivate
}

// Entity types the responder cares about.
const (
	EntityBotCommand = "bot_command"
	EntityMention    = "mention"
	EntityURL        = "url"
)

// MessageEntity represents a special entity in a text message.
type MessageEntity struct {
	Type          string `json:"type"`
	Offset        int    `json:"offset"`
	Length        int    `json:"length"`
	URL           string `json:"url,omitempty"`
	User          *User  `json:"user,omitempty"`
	Language      string `json:"language,omitempty"`
	CustomEmojiID string `json:"custom_emoji_id,omitempty"`
}

// Location represents a point on the map.
type Location struct {
	Longitude          float64 `json:"longitude"`
	Latitude           float64 `json:"latitude"`
	HorizontalAccuracy float64 `json:"horizontal_accuracy,omitempty"`
}
