package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент Messaging API чат-приложения
type Client struct {
	baseURL      string
	channelToken string
	httpClient   *http.Client
	log          Logger
}

// NewClient создает новый экземпляр клиента Messaging API
func NewClient(baseURL, channelToken string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:      baseURL,
		channelToken: channelToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Push отправляет текстовое сообщение одному пользователю
func (c *Client) Push(ctx context.Context, userID, text string) error {
	if userID == "" {
		return ErrNoRecipients
	}
	return c.post(ctx, "/v2/bot/message/push", PushRequest{
		To:       userID,
		Messages: []TextMessage{{Type: "text", Text: text}},
	})
}

// Multicast отправляет текстовое сообщение нескольким пользователям
func (c *Client) Multicast(ctx context.Context, userIDs []string, text string) error {
	if len(userIDs) == 0 {
		return ErrNoRecipients
	}
	return c.post(ctx, "/v2/bot/message/multicast", MulticastRequest{
		To:       userIDs,
		Messages: []TextMessage{{Type: "text", Text: text}},
	})
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	respBody, _ := io.ReadAll(resp.Body)
	var apiErr ErrorResponse
	if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
		c.log.Warn("Messaging API %s rejected message: status=%d, message=%s", path, resp.StatusCode, apiErr.Message)
		return fmt.Errorf("%w: status code %d: %s", ErrInvalidResponse, resp.StatusCode, apiErr.Message)
	}
	return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
}
