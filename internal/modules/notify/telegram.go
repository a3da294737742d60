package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// Telegram sends order notifications to a staff chat through the Telegram
// Bot API.
type Telegram struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

// NewTelegram creates a notifier for the given admin bot token and chat.
func NewTelegram(botToken, chatID string) *Telegram {
	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NewTelegramWithBase is NewTelegram with a custom API endpoint, used by
// tests.
func NewTelegramWithBase(botToken, chatID, apiBase string) *Telegram {
	t := NewTelegram(botToken, chatID)
	t.apiBase = apiBase
	return t
}

// Send posts the message to the staff chat with Markdown formatting. The
// order id only tags logs and errors; the message itself already carries
// the order details.
func (t *Telegram) Send(ctx context.Context, message, orderID string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    t.chatID,
		"text":       message,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification for order %s: %w", orderID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("telegram api returned %d for order %s: %s", resp.StatusCode, orderID, body)
	}
	return nil
}
