package models

import "artdirector/internal/llm/reply"

// TurnResult captures the outcome of one submitted turn.
type TurnResult struct {
	SessionKey string       `json:"sessionKey"`
	Model      string       `json:"model"`
	KeySource  string       `json:"keySource"`
	Prompt     string       `json:"prompt"`
	Raw        string       `json:"raw"`
	Reply      reply.Parsed `json:"reply"`
}
