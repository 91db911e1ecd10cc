package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("telegram client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе Bot API
	ErrInvalidResponse = errors.New("telegram client: invalid response")
)

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Client клиент Telegram Bot API, используется как резервный канал уведомлений администраторам
type Client struct {
	baseURL    string
	botToken   string
	chatID     string
	httpClient *http.Client
}

// NewClient создает клиента для отправки сообщений в чат администраторов
func NewClient(baseURL, botToken, chatID string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		botToken:   botToken,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SendAdminMessage отправляет текст в чат администраторов
func (c *Client) SendAdminMessage(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: c.chatID, Text: text})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("%w: status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
	if !result.OK {
		return fmt.Errorf("%w: %s", ErrInvalidResponse, result.Description)
	}

	return nil
}
