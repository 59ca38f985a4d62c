package tg

// InlineQueryResult represents one result of an inline query.
//
// Parked bots always answer with an empty result list; the interface exists
// so the answer payload keeps Telegram's shape.
type InlineQueryResult interface {
	inlineQueryResultTag()
	GetType() string
}

// InlineQueryResultArticle represents a link to an article or web page.
type InlineQueryResultArticle struct {
	Type                string                  `json:"type"` // Always "article"
	ID                  string                  `json:"id"`
	Title               string                  `json:"title"`
	InputMessageContent InputTextMessageContent `json:"input_message_content"`
	ReplyMarkup         *InlineKeyboardMarkup   `json:"reply_markup,omitempty"`
	Description         string                  `json:"description,omitempty"`
}

func (InlineQueryResultArticle) inlineQueryResultTag() {}
func (InlineQueryResultArticle) GetType() string       { return "article" }

// InputTextMessageContent represents text content for an inline query result.
type InputTextMessageContent struct {
	MessageText string          `json:"message_text"`
	ParseMode   ParseMode       `json:"parse_mode,omitempty"`
	Entities    []MessageEntity `json:"entities,omitempty"`
}

// InlineQueryResultsButton represents a button above inline query results.
type InlineQueryResultsButton struct {
	Text           string      `json:"text"`
	WebApp         *WebAppInfo `json:"web_app,omitempty"`
	StartParameter string      `json:"start_parameter,omitempty"`
}
