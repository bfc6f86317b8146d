// Package ai contains thin HTTP clients for the two model endpoints used by
// the expense extractors: an OpenAI-compatible chat completions API for the
// text path and the Gemini generateContent API for the voice path.
//
// Clients make exactly one outbound call per invocation; there is no retry
// logic here. Callers degrade to the deterministic regex fallback instead.
package ai

import "context"

// ChatMessage is a single message in a chat completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatClient is implemented by chat-completion style endpoints.
type ChatClient interface {
	Chat(ctx context.Context, messages []ChatMessage) (string, error)
}

// GenerativeClient is implemented by single-prompt generative endpoints.
type GenerativeClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const defaultMaxTokens = 1024
