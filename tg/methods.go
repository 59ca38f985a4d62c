package tg

import "encoding/json"

// ChatID represents a Telegram chat identifier.
// Valid types: int64 (numeric ID) or string (channel username like "@channelusername")
type ChatID = any

// Bot API method names that can be returned in a webhook response.
const (
	MethodSendMessage         = "sendMessage"
	MethodAnswerCallbackQuery = "answerCallbackQuery"
	MethodAnswerInlineQuery   = "answerInlineQuery"
)

// Method is a Bot API call that can be embedded in the HTTP response to a
// webhook request. Telegram executes it on the bot's behalf, so no token is
// needed to answer.
//
// Implementations marshal to the method's parameters plus a "method" field.
type Method interface {
	MethodName() string
}

// SendMessage is the sendMessage call.
type SendMessage struct {
	ChatID              ChatID    `json:"chat_id"`
	MessageThreadID     int       `json:"message_thread_id,omitempty"`
	Text                string    `json:"text"`
	ParseMode           ParseMode `json:"parse_mode,omitempty"`
	DisableNotification bool      `json:"disable_notification,omitempty"`
	ProtectContent      bool      `json:"protect_content,omitempty"`
	ReplyToMessageID    int       `json:"reply_to_message_id,omitempty"`
	ReplyMarkup         any       `json:"reply_markup,omitempty"`
}

// MethodName implements Method.
func (SendMessage) MethodName() string { return MethodSendMessage }

// MarshalJSON implements json.Marshaler.
func (m SendMessage) MarshalJSON() ([]byte, error) {
	type alias SendMessage
	return json.Marshal(struct {
		Method string `json:"method"`
		alias
	}{MethodSendMessage, alias(m)})
}

// AnswerCallbackQuery is the answerCallbackQuery call.
type AnswerCallbackQuery struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
	URL             string `json:"url,omitempty"`
	CacheTime       int    `json:"cache_time,omitempty"`
}

// MethodName implements Method.
func (AnswerCallbackQuery) MethodName() string { return MethodAnswerCallbackQuery }

// MarshalJSON implements json.Marshaler.
func (m AnswerCallbackQuery) MarshalJSON() ([]byte, error) {
	type alias AnswerCallbackQuery
	return json.Marshal(struct {
		Method string `json:"method"`
		alias
	}{MethodAnswerCallbackQuery, alias(m)})
}

// AnswerInlineQuery is the answerInlineQuery call.
//
// SwitchPMText and SwitchPMParameter are the pre-6.7 spelling of Button and
// are still honoured by Telegram; both are sent for older clients.
type AnswerInlineQuery struct {
	InlineQueryID     string                    `json:"inline_query_id"`
	Results           []InlineQueryResult       `json:"results"`
	CacheTime         int                       `json:"cache_time,omitempty"`
	IsPersonal        bool                      `json:"is_personal"`
	NextOffset        string                    `json:"next_offset,omitempty"`
	Button            *InlineQueryResultsButton `json:"button,omitempty"`
	SwitchPMText      string                    `json:"switch_pm_text,omitempty"`
	SwitchPMParameter string                    `json:"switch_pm_parameter,omitempty"`
}

// MethodName implements Method.
func (AnswerInlineQuery) MethodName() string { return MethodAnswerInlineQuery }

// MarshalJSON implements json.Marshaler. Results is always encoded as an
// array; Telegram rejects null.
func (m AnswerInlineQuery) MarshalJSON() ([]byte, error) {
	type alias AnswerInlineQuery
	if m.Results == nil {
		m.Results = []InlineQueryResult{}
	}
	return json.Marshal(struct {
		Method string `json:"method"`
		alias
	}{MethodAnswerInlineQuery, alias(m)})
}

var (
	_ Method = SendMessage{}
	_ Method = AnswerCallbackQuery{}
	_ Method = AnswerInlineQuery{}
)
