package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramSend(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"ok":true,"result":{"message_id":42}}`))
	}))
	defer server.Close()

	n := NewTelegramWithBase("bot-token", "12345", server.URL)
	err := n.Send(context.Background(), "*НОВЫЙ ЗАКАЗ*", "order-1")

	require.NoError(t, err)
	assert.Equal(t, "/botbot-token/sendMessage", gotPath)
	assert.Equal(t, "12345", gotBody["chat_id"])
	assert.Equal(t, "*НОВЫЙ ЗАКАЗ*", gotBody["text"])
	assert.Equal(t, "Markdown", gotBody["parse_mode"])
}

func TestTelegramSendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"chat not found"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	n := NewTelegramWithBase("bot-token", "12345", server.URL)
	err := n.Send(context.Background(), "msg", "order-2")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "order-2")
	assert.Contains(t, err.Error(), "chat not found")
}

func TestTelegramSendConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse connections

	n := NewTelegramWithBase("bot-token", "12345", server.URL)
	err := n.Send(context.Background(), "msg", "order-3")

	assert.Error(t, err)
}

func TestNopNeverFails(t *testing.T) {
	assert.NoError(t, Nop{}.Send(context.Background(), "anything", "id"))
}
