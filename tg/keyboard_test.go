package tg_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/parkbot/tg"
)

func TestRemoveKeyboard_JSON(t *testing.T) {
	data, err := json.Marshal(tg.RemoveKeyboard())
	require.NoError(t, err)
	assert.JSONEq(t, `{"remove_keyboard":true}`, string(data))
}

func TestRemoveKeyboard_Selective(t *testing.T) {
	markup := tg.RemoveKeyboard()
	markup.Selective = true

	data, err := json.Marshal(markup)
	require.NoError(t, err)
	assert.JSONEq(t, `{"remove_keyboard":true,"selective":true}`, string(data))
}

func TestMessage_DecodesInlineKeyboard(t *testing.T) {
	raw := `{
		"message_id": 7,
		"chat": {"id": 1, "type": "private"},
		"text": "pick one",
		"reply_markup": {"inline_keyboard": [[
			{"text": "Yes", "callback_data": "yes"},
			{"text": "Docs", "url": "https://example.com"}
		]]}
	}`

	var msg tg.Message
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))

	require.NotNil(t, msg.ReplyMarkup)
	require.Len(t, msg.ReplyMarkup.InlineKeyboard, 1)
	row := msg.ReplyMarkup.InlineKeyboard[0]
	require.Len(t, row, 2)
	assert.Equal(t, "yes", row[0].CallbackData)
	assert.Equal(t, "https://example.com", row[1].URL)
	assert.Empty(t, row[1].CallbackData)
}
