package models

// ChatTurn represents a single prior message supplied by the client.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message     string     `json:"message"`
	ChatHistory []ChatTurn `json:"chat_history"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Response string `json:"response"`
}
