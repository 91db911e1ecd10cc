package messenger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_Push(t *testing.T) {
	var got PushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/bot/message/push", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", time.Second, nopLogger{})
	require.NoError(t, c.Push(context.Background(), "U123", "hello"))

	assert.Equal(t, "U123", got.To)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "text", got.Messages[0].Type)
	assert.Equal(t, "hello", got.Messages[0].Text)
}

func TestClient_Multicast_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/bot/message/multicast", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid user"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", time.Second, nopLogger{})
	err := c.Multicast(context.Background(), []string{"U1", "U2"}, "hi")

	require.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "invalid user")
}

func TestClient_NoRecipients(t *testing.T) {
	c := NewClient("http://localhost", "token", time.Second, nopLogger{})

	assert.ErrorIs(t, c.Push(context.Background(), "", "x"), ErrNoRecipients)
	assert.ErrorIs(t, c.Multicast(context.Background(), nil, "x"), ErrNoRecipients)
}
