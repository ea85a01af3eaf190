package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/llm"
	"github.com/a-a-ronc/LePerfectPermit-sub001/letter/classify"
)

const defaultTimeout = 60 * time.Second

// Client implements llm.Generator using OpenAI Chat Completions.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient constructs a new OpenAI-backed narrative generator.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = openai.GPT4oMini
	}
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Generate asks the model for a cover letter narrative. The prompt pins the
// structural anchors (letterhead, headings, file indentation) so the output
// classifies cleanly; anything the model gets wrong degrades to body text
// downstream rather than failing.
func (c *Client) Generate(ctx context.Context, input llm.NarrativeInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(input),
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai completion: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

const systemPrompt = "You draft cover letters for high-piled storage permit submissions. " +
	"Output plain text only: no markdown headings, no code fences. " +
	"Keep every file name exactly as given."

func buildPrompt(input llm.NarrativeInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a permit submission cover letter for the project %q dated %s.\n\n",
		input.ProjectName, input.Date.Format("January 2, 2006"))
	b.WriteString("Structural requirements, in order:\n")
	fmt.Fprintf(&b, "- First line must be exactly %q.\n", classify.LetterheadLine)
	b.WriteString("- Then the date, a Subject: line, and a Dear salutation.\n")
	fmt.Fprintf(&b, "- One numbered section per document category (\"1. Site Plan\"), each followed by the line %q and its file names indented with four spaces.\n", classify.FilesHeaderLine)
	b.WriteString("- A short paragraph of professional prose before the sections.\n")
	fmt.Fprintf(&b, "- End with contact lines (Email:, Phone:), \"Sincerely,\", the line %q, and finally %q.\n\n", classify.ClosingSignature, classify.FooterPrefix)

	b.WriteString("Document categories and files:\n")
	for i, section := range input.Sections {
		fmt.Fprintf(&b, "%d. %s\n", i+1, section.Heading)
		for _, file := range section.Files {
			fmt.Fprintf(&b, "    %s\n", file)
		}
	}
	if input.ContactEmail != "" {
		fmt.Fprintf(&b, "\nContact email: %s", input.ContactEmail)
	}
	if input.ContactPhone != "" {
		fmt.Fprintf(&b, "\nContact phone: %s", input.ContactPhone)
	}
	if input.ContactName != "" {
		fmt.Fprintf(&b, "\nSigned by: %s", input.ContactName)
	}
	return b.String()
}
