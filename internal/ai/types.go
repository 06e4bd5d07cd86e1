package ai

// ChatMessage is one message in a chat completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request body for an OpenAI-compatible chat endpoint.
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	Stream         bool            `json:"stream"`
	MaxTokens      int             `json:"max_tokens"`
	TopP           float64         `json:"top_p"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ResponseFormat requests structured output from the model.
type ResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

// JSONSchema names the schema the model must conform to.
type JSONSchema struct {
	Name   string      `json:"name"`
	Strict bool        `json:"strict"`
	Schema interface{} `json:"schema"`
}

// ChatResponse is the subset of the chat completion response we read.
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// PlayerAnalysis is the scoring verdict for one player.
type PlayerAnalysis struct {
	Champion         string  `json:"champion"`
	PlayerName       string  `json:"player_name"`
	Position         string  `json:"position"`
	Score            float64 `json:"score"`
	VsOpponent       string  `json:"vs_opponent"`
	RoleAnalysis     string  `json:"role_analysis"`
	Highlight        string  `json:"highlight"`
	Weakness         string  `json:"weakness"`
	Comment          string  `json:"comment"`
	TimelineAnalysis string  `json:"timeline_analysis"`
}

// AnalysisResult is the full verdict for the target player's team.
type AnalysisResult struct {
	Players []PlayerAnalysis `json:"players"`
}
