package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/delanoso/safetyhub/pkg/config"
	"github.com/delanoso/safetyhub/pkg/enums"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("llm is not configured")

const systemPrompt = `You are an occupational health and safety practitioner drafting a workplace risk assessment.
Reply with a JSON object with exactly two keys:
"controls": a plain-text list of recommended control measures, one per line, ordered by the hierarchy of controls;
"riskLevel": one of "low", "medium", "high" or "extreme" describing the residual risk before controls.`

// RiskDraftInput describes the activity to assess.
type RiskDraftInput struct {
	Activity   string
	Hazards    string
	Department string
}

// RiskDraft is the model's suggestion.
type RiskDraft struct {
	Controls  string          `json:"controls"`
	RiskLevel enums.RiskLevel `json:"riskLevel"`
}

type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client drafts risk assessment controls through a chat completion API.
type Client struct {
	api   completer
	model string
}

// NewClient returns nil when the API key is missing.
func NewClient(cfg config.OpenAIConfig) *Client {
	if !cfg.Configured() {
		return nil
	}
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &Client{api: openai.NewClientWithConfig(apiCfg), model: cfg.Model}
}

// DraftRiskAssessment asks the model for controls and a risk level.
func (c *Client) DraftRiskAssessment(ctx context.Context, in RiskDraftInput) (RiskDraft, error) {
	if c == nil || c.api == nil {
		return RiskDraft{}, ErrNotConfigured
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(in)},
		},
	})
	if err != nil {
		return RiskDraft{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return RiskDraft{}, fmt.Errorf("chat completion returned no choices")
	}
	return parseDraft(resp.Choices[0].Message.Content)
}

func userPrompt(in RiskDraftInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Activity: %s\n", strings.TrimSpace(in.Activity))
	if h := strings.TrimSpace(in.Hazards); h != "" {
		fmt.Fprintf(&b, "Known hazards: %s\n", h)
	}
	if d := strings.TrimSpace(in.Department); d != "" {
		fmt.Fprintf(&b, "Department: %s\n", d)
	}
	return b.String()
}

// parseDraft accepts a bare JSON object or one wrapped in a markdown fence.
func parseDraft(raw string) (RiskDraft, error) {
	text := strings.TrimSpace(raw)
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		text = text[start : end+1]
	}

	var payload struct {
		Controls  json.RawMessage `json:"controls"`
		RiskLevel string          `json:"riskLevel"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return RiskDraft{}, fmt.Errorf("decode model reply: %w", err)
	}

	controls, err := flattenControls(payload.Controls)
	if err != nil {
		return RiskDraft{}, err
	}
	if controls == "" {
		return RiskDraft{}, fmt.Errorf("model reply has no controls")
	}
	return RiskDraft{Controls: controls, RiskLevel: enums.NormalizeRiskLevel(payload.RiskLevel)}, nil
}

// flattenControls tolerates models that answer with a list instead of text.
func flattenControls(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text), nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return "", fmt.Errorf("decode controls: %w", err)
	}
	return strings.TrimSpace(strings.Join(list, "\n")), nil
}
