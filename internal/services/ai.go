package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Narrator turns personal task statistics into a short paragraph.
type Narrator interface {
	Narrate(ctx context.Context, stats InsightStats, insights []string) (string, error)
}

type AIService struct {
	client *openai.Client
	model  string
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

// NewAIServiceWithConfig is used when the API base URL must be overridden.
func NewAIServiceWithConfig(cfg openai.ClientConfig) *AIService {
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.GPT4oMini,
	}
}

// Narrate asks the model for a one-paragraph summary of the user's workload.
func (s *AIService) Narrate(ctx context.Context, stats InsightStats, insights []string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a productivity coach inside a team workspace.
Write one short, encouraging paragraph (at most three sentences) for a team member.

Assigned tasks: %d
Completed tasks: %d
Overdue tasks: %d
High-priority tasks still open: %d

Observations:
- %s

Reply with the paragraph only, no headings or lists.`,
		stats.TotalTasks, stats.CompletedTasks, stats.OverdueTasks, stats.HighPriorityPending,
		strings.Join(insights, "\n- "))

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
