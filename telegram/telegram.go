// Package telegram is a minimal Bot API client, just enough to verify the
// bot credentials and deliver the portfolio commentary to a chat.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MaxMessageLength is the Bot API limit on sendMessage text.
const MaxMessageLength = 4096

const defaultBaseURL = "https://api.telegram.org"

// Bot sends messages to a single chat.
type Bot struct {
	// BaseURL overrides the API endpoint, for tests.
	BaseURL string
	// Client defaults to a client with a bounded timeout.
	Client *http.Client

	token  string
	chatID string
}

// New returns a bot for the given token and chat.
func New(token, chatID string) *Bot {
	return &Bot{token: token, chatID: chatID}
}

// apiResponse is the common Bot API envelope.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

func (b *Bot) client() *http.Client {
	if b.Client != nil {
		return b.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (b *Bot) endpoint(method string) string {
	base := b.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return fmt.Sprintf("%s/bot%s/%s", base, b.token, method)
}

// call posts form data to a Bot API method and decodes the envelope.
func (b *Bot) call(ctx context.Context, method string, form url.Values) (json.RawMessage, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint(method), body)
	if err != nil {
		return nil, err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := b.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram %s failed: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("telegram %s: cannot decode response: %w", method, err)
	}
	if !envelope.OK {
		return nil, fmt.Errorf("telegram %s refused: %s", method, envelope.Description)
	}
	return envelope.Result, nil
}

// Me verifies the token and returns the bot username.
func (b *Bot) Me(ctx context.Context) (string, error) {
	result, err := b.call(ctx, "getMe", nil)
	if err != nil {
		return "", err
	}
	var me struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(result, &me); err != nil {
		return "", fmt.Errorf("telegram getMe: cannot decode bot info: %w", err)
	}
	return me.Username, nil
}

// Send delivers a plain-text message to the configured chat and returns the
// message id. Text longer than MaxMessageLength is truncated, not rejected;
// an empty text is refused.
func (b *Bot) Send(ctx context.Context, text string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errors.New("refusing to send an empty message")
	}
	if runes := []rune(text); len(runes) > MaxMessageLength {
		text = string(runes[:MaxMessageLength])
	}

	form := url.Values{}
	form.Set("chat_id", b.chatID)
	form.Set("text", text)

	result, err := b.call(ctx, "sendMessage", form)
	if err != nil {
		return 0, err
	}
	var msg struct {
		MessageID int64 `json:"message_id"`
	}
	if err := json.Unmarshal(result, &msg); err != nil {
		return 0, fmt.Errorf("telegram sendMessage: cannot decode result: %w", err)
	}
	return msg.MessageID, nil
}
