// Package openai implements the AI service port against an
// OpenAI-compatible API: chat completions for recipe generation, vision
// content parts for photo identification, and the images endpoint for
// recipe artwork. Calls are single-shot; the only internal policy is
// the request timeout.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/forkful/forkful/internal/infrastructure/config"
	"github.com/forkful/forkful/internal/ports/outbound"
)

// Client implements outbound.AIService using an OpenAI-compatible API.
type Client struct {
	baseURL     string
	apiKey      string
	textModel   string
	visionModel string
	imageModel  string
	maxTokens   int
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a new AI client from configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) outbound.AIService {
	timeout := cfg.AI.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.AI.BaseURL, "/"),
		apiKey:      cfg.AI.APIKey,
		textModel:   cfg.AI.TextModel,
		visionModel: cfg.AI.VisionModel,
		imageModel:  cfg.AI.ImageModel,
		maxTokens:   cfg.AI.MaxTokens,
		client:      &http.Client{Timeout: timeout},
		logger:      logger.Named("openai"),
	}
}

// Chat completion wire structures.

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// GenerateFromIngredients asks the text model for recipe candidates.
func (c *Client) GenerateFromIngredients(ctx context.Context, ingredients []string, opts outbound.GenerateOptions) ([]outbound.GeneratedRecipe, error) {
	count := opts.Count
	if count < 1 {
		count = 1
	}

	content, err := c.chat(ctx, c.textModel, []chatMessage{
		{Role: "system", Content: generationSystemPrompt},
		{Role: "user", Content: buildGenerationPrompt(ingredients, opts, count)},
	}, opts.Temperature)
	if err != nil {
		return nil, err
	}

	jsonStr, err := extractJSONArray(content)
	if err != nil {
		return nil, fmt.Errorf("model returned unparsable content: %w", err)
	}

	var recipes []outbound.GeneratedRecipe
	if err := json.Unmarshal([]byte(jsonStr), &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse recipe array: %w", err)
	}
	if len(recipes) == 0 {
		return nil, fmt.Errorf("model returned no recipes")
	}

	return recipes, nil
}

// IdentifyFromPhoto sends the image to the vision model as a base64
// data URL and parses the identification object.
func (c *Client) IdentifyFromPhoto(ctx context.Context, image []byte, mimeType string) (*outbound.DishIdentification, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	content, err := c.chat(ctx, c.visionModel, []chatMessage{
		{Role: "user", Content: []contentPart{
			{Type: "text", Text: identifySystemPrompt},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
		}},
	}, 0.2)
	if err != nil {
		return nil, err
	}

	jsonStr, err := extractJSONObject(content)
	if err != nil {
		return nil, fmt.Errorf("model returned unparsable content: %w", err)
	}

	var dish outbound.DishIdentification
	if err := json.Unmarshal([]byte(jsonStr), &dish); err != nil {
		return nil, fmt.Errorf("failed to parse identification: %w", err)
	}
	if dish.Confidence < 0 {
		dish.Confidence = 0
	}
	if dish.Confidence > 1 {
		dish.Confidence = 1
	}

	return &dish, nil
}

// GenerateImage requests one image for the recipe. Any failure degrades
// to an empty reference: the recipe is saved without artwork and the
// caller never sees an error from this path.
func (c *Client) GenerateImage(ctx context.Context, name, description string) string {
	reqBody := imageRequest{
		Model:  c.imageModel,
		Prompt: buildImagePrompt(name, description),
		N:      1,
		Size:   "1024x1024",
	}

	body, err := c.post(ctx, "/images/generations", reqBody)
	if err != nil {
		c.logger.Warn("image generation failed, saving recipe without image",
			zap.String("recipe", name),
			zap.Error(err),
		)
		return ""
	}

	var resp imageResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Data) == 0 {
		c.logger.Warn("image generation returned unparsable response",
			zap.String("recipe", name),
		)
		return ""
	}

	return resp.Data[0].URL
}

// chat performs a chat-completion call and returns the first choice's content.
func (c *Client) chat(ctx context.Context, model string, messages []chatMessage, temperature float64) (string, error) {
	if temperature <= 0 {
		temperature = 0.7
	}

	reqBody := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   c.maxTokens,
	}

	body, err := c.post(ctx, "/chat/completions", reqBody)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	c.logger.Debug("chat completion succeeded",
		zap.String("model", model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return resp.Choices[0].Message.Content, nil
}

// post issues a JSON POST against the API and returns the raw body.
func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// extractJSONArray finds the outermost JSON array in model output,
// which sometimes arrives wrapped in prose or markdown fences.
func extractJSONArray(content string) (string, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON array found")
	}
	return content[start : end+1], nil
}

// extractJSONObject finds the outermost JSON object in model output.
func extractJSONObject(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found")
	}
	return content[start : end+1], nil
}
