package models

// ChatRequest is a single inbound assistant message. An empty message is
// allowed; the interpreter answers it with the generic help text.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the interpreter's single response string.
type ChatResponse struct {
	Response string `json:"response"`
}
