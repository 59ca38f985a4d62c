package tg

// ParseMode selects how Telegram renders entities in message text.
type ParseMode string

// Parse modes accepted by sendMessage. The empty mode sends plain text.
const (
	ParseModeHTML       ParseMode = "HTML"
	ParseModeMarkdown   ParseMode = "Markdown"
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
)

func (p ParseMode) String() string {
	return string(p)
}

// IsValid reports whether Telegram accepts p. Names are case-sensitive.
func (p ParseMode) IsValid() bool {
	switch p {
	case ParseModeHTML, ParseModeMarkdown, ParseModeMarkdownV2, "":
		return true
	default:
		return false
	}
}
