package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/parkbot/tg"
)

// Capture is a recorded webhook response.
type Capture struct {
	Code        int
	Headers     http.Header
	Body        []byte
	ContentType string
}

// PostUpdate sends update to h as Telegram would and captures the response.
func PostUpdate(t *testing.T, h http.Handler, path string, update tg.Update) *Capture {
	t.Helper()
	body, err := json.Marshal(update)
	require.NoError(t, err)
	return Do(t, h, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body)))
}

// Get issues a GET request to h and captures the response.
func Get(t *testing.T, h http.Handler, path string) *Capture {
	t.Helper()
	return Do(t, h, httptest.NewRequest(http.MethodGet, path, nil))
}

// Do serves req with h and captures the response.
func Do(t *testing.T, h http.Handler, req *http.Request) *Capture {
	t.Helper()
	if req.Method == http.MethodPost && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return &Capture{
		Code:        rec.Code,
		Headers:     rec.Header().Clone(),
		Body:        rec.Body.Bytes(),
		ContentType: rec.Header().Get("Content-Type"),
	}
}

// AssertStatus verifies the HTTP status code.
func (c *Capture) AssertStatus(t *testing.T, expected int) {
	t.Helper()
	assert.Equal(t, expected, c.Code, "unexpected status, body: %s", c.Body)
}

// AssertContentType verifies the Content-Type header contains expected value.
func (c *Capture) AssertContentType(t *testing.T, expected string) {
	t.Helper()
	assert.Contains(t, c.ContentType, expected, "unexpected content-type")
}

// AssertMethod verifies the embedded Bot API method of a webhook reply.
func (c *Capture) AssertMethod(t *testing.T, expected string) {
	t.Helper()
	c.AssertJSONField(t, "method", expected)
}

// AssertNoReply verifies the response carries no Bot API call.
func (c *Capture) AssertNoReply(t *testing.T) {
	t.Helper()
	assert.JSONEq(t, `{}`, string(c.Body))
}

// AssertJSONField verifies a top-level field in the JSON body.
func (c *Capture) AssertJSONField(t *testing.T, field string, expected any) {
	t.Helper()
	assert.Equal(t, expected, c.BodyMap(t)[field], "unexpected value for field: "+field)
}

// AssertJSONFieldAbsent verifies a field does NOT exist in the JSON body.
func (c *Capture) AssertJSONFieldAbsent(t *testing.T, field string) {
	t.Helper()
	assert.NotContains(t, c.BodyMap(t), field, "field should be absent: "+field)
}

// BodyMap returns the body as a map.
func (c *Capture) BodyMap(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(c.Body, &m), "failed to decode JSON body: %s", c.Body)
	return m
}

// BodyString returns the body as a string.
func (c *Capture) BodyString() string {
	return string(c.Body)
}
