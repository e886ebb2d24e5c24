// Package agent wraps the Gemini client into a portfolio analyst that turns
// the raw account report into a short written commentary.
package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

const systemPrompt = `You are a portfolio analyst. You receive the plain-text
summary of a retail brokerage account. Write a concise markdown commentary:
overall account health, notable winners and losers, concentration and cash
allocation. Do not invent figures that are not in the report. Keep it under
300 words.`

// Analyst holds a chat session with the model. Create it once, Start it with
// a client, then Summarize as many reports as needed.
type Analyst struct {
	Model  string
	Config *genai.GenerateContentConfig
	chat   *genai.Chat
}

// NewAnalyst returns an analyst on the default model.
func NewAnalyst() *Analyst {
	return &Analyst{
		Model: DefaultModel,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemPrompt}},
			},
		},
	}
}

// Start creates the chat session on the given client.
func (a *Analyst) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, a.Model, a.Config, nil)
	if err != nil {
		return fmt.Errorf("cannot create analyst chat: %w", err)
	}
	a.chat = chat
	return nil
}

// Summarize sends the report text to the model and returns its commentary.
func (a *Analyst) Summarize(ctx context.Context, report string) (string, error) {
	if a.chat == nil {
		return "", fmt.Errorf("analyst not started")
	}
	prompt := "Summarize this portfolio report:\n\n" + report

	resp, err := a.chat.Send(ctx, &genai.Part{Text: prompt})
	if err != nil {
		return "", fmt.Errorf("analyst request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from analyst")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
