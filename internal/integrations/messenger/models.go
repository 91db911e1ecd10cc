package messenger

// TextMessage текстовое сообщение Messaging API
type TextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PushRequest сообщение одному пользователю
type PushRequest struct {
	To       string        `json:"to"`
	Messages []TextMessage `json:"messages"`
}

// MulticastRequest сообщение нескольким пользователям
type MulticastRequest struct {
	To       []string      `json:"to"`
	Messages []TextMessage `json:"messages"`
}

// ErrorResponse модель ошибки от Messaging API
type ErrorResponse struct {
	Message string `json:"message"`
}
