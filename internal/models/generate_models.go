package models

// GenerateRequest is the POST /generate body.
type GenerateRequest struct {
	Topic string `json:"topic"`
	Tone  string `json:"tone,omitempty"`
}

// GenerateResponse carries the LLM-produced sample post.
type GenerateResponse struct {
	Topic string `json:"topic"`
	Tweet string `json:"tweet"`
}

// OpenAIScoreResponse is the JSON object the LLM scorer asks the model to
// return for a batch of posts.
type OpenAIScoreResponse struct {
	Scores []OpenAIScore `json:"scores"`
}

type OpenAIScore struct {
	ID    int     `json:"id"`
	Score float64 `json:"score"`
}
