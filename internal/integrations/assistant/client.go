// Package assistant wraps a remote chat-completion service behind a narrow
// interface. When the remote service is unavailable the client degrades to
// canned answers, flagged so callers can tell authoritative responses from
// fallbacks.
package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/greencred/lending-service/internal/models"
)

// systemPrompt frames the assistant as the platform's ESG advisor.
const systemPrompt = `You are an ESG (Environmental, Social, and Governance) and sustainable finance expert assistant for GreenCred, a lending platform that provides ESG-based credit scoring for SMEs. Help users understand ESG principles, sustainable finance concepts, how to improve ESG scores, and platform features. Always provide accurate, helpful, and actionable advice. Keep responses concise but informative.`

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is a completed assistant response. Fallback is true when the remote
// service could not be reached and the text is a canned answer.
type Reply struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
	Usage    *Usage `json:"usage,omitempty"`
}

// Usage reports remote token consumption when available.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Completer produces assistant replies. The service layer depends on this
// interface, not the concrete client.
type Completer interface {
	Complete(ctx context.Context, message string, history []Message, scores *models.ESGInput) (Reply, error)
}

type completionRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage *Usage `json:"usage"`
}

// Client talks to an OpenAI-compatible chat-completion endpoint.
type Client struct {
	http    *resty.Client
	model   string
	enabled bool
	log     *logrus.Logger
}

// maxHistory bounds how much conversation context is forwarded upstream.
const maxHistory = 10

// NewClient configures the assistant client. With an empty API key the
// client stays in fallback-only mode.
func NewClient(baseURL, apiKey, model string, log *logrus.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(30 * time.Second).
		SetRetryCount(1)
	return &Client{
		http:    httpClient,
		model:   model,
		enabled: apiKey != "",
		log:     log,
	}
}

func buildMessages(message string, history []Message, scores *models.ESGInput) []Message {
	msgs := []Message{{Role: "system", Content: systemPrompt}}
	if scores != nil {
		msgs = append(msgs, Message{
			Role: "system",
			Content: fmt.Sprintf(
				"The user's current ESG scores are environmental %.0f, social %.0f, governance %.0f, risk %.0f (each out of 100).",
				scores.Environmental, scores.Social, scores.Governance, scores.Risk),
		})
	}
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	msgs = append(msgs, history...)
	return append(msgs, Message{Role: "user", Content: message})
}

// Complete sends the conversation upstream; any failure degrades to a
// canned, flagged fallback reply rather than an error, so chat never blocks
// the primary scoring flow.
func (c *Client) Complete(ctx context.Context, message string, history []Message, scores *models.ESGInput) (Reply, error) {
	if !c.enabled {
		return fallbackReply(message), nil
	}

	var parsed completionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(completionRequest{
			Model:     c.model,
			Messages:  buildMessages(message, history, scores),
			MaxTokens: 1000,
		}).
		SetResult(&parsed).
		Post("/v1/chat/completions")
	if err != nil {
		c.log.Warnf("Assistant request failed, using fallback: %v", err)
		return fallbackReply(message), nil
	}
	if resp.IsError() || len(parsed.Choices) == 0 {
		c.log.Warnf("Assistant returned status %d, using fallback", resp.StatusCode())
		return fallbackReply(message), nil
	}

	return Reply{
		Text:  parsed.Choices[0].Message.Content,
		Usage: parsed.Usage,
	}, nil
}
