// Package insight calls the AI collaborator for a structured second opinion
// on the collected evidence. The result only influences the confidence
// level; the numeric score never depends on it.
package insight

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/veritasproject/veritas/pkg/audit"
)

const systemPrompt = "You are Veritas, an AI auditor specializing in Web3 project analysis. " +
	"You identify fraud, verify claims, and assess project trustworthiness."

const promptTemplate = `As Veritas, an expert Web3 auditor, analyze this project evidence and provide insights.

Evidence: %s

Provide a JSON response with:
1. confidence: float (0.0-1.0) - how confident you are in the analysis
2. key_insights: list of important observations
3. risk_level: string ("low", "medium", "high")
4. recommendation: string - overall recommendation

Focus on identifying potential fraud, misrepresentation, or hidden risks.`

// Generator implements audit.InsightGenerator on an OpenAI-compatible API.
type Generator struct {
	client *openai.Client
	model  string
}

func New(apiKey, model string) *Generator {
	return &Generator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Generate asks the model for a structured insight over the evidence pair.
// Any failure is wrapped in audit.ErrInsightUnavailable so callers can
// degrade without inspecting transport details.
func (g *Generator) Generate(ctx context.Context, on *audit.OnChainEvidence, off *audit.OffChainEvidence) (*audit.Insight, error) {
	evidence, err := json.Marshal(map[string]any{
		"on_chain":  on,
		"off_chain": off,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling evidence: %v", audit.ErrInsightUnavailable, err)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptTemplate, evidence)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", audit.ErrInsightUnavailable, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: empty completion", audit.ErrInsightUnavailable)
	}

	var ins audit.Insight
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &ins); err != nil {
		return nil, fmt.Errorf("%w: decoding completion: %v", audit.ErrInsightUnavailable, err)
	}

	return &ins, nil
}
