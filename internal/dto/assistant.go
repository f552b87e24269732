package dto

// ChatRequest a message typed into the help assistant.
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

// ChatResponse the assistant's canned reply.
type ChatResponse struct {
	Intent      string   `json:"intent"`
	Reply       string   `json:"reply"`
	Suggestions []string `json:"suggestions,omitempty"`
}
