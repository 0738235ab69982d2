package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the Google Generative Language API base URL
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultTimeout is longer for LLM generation requests
	DefaultTimeout = 60 * time.Second
	// DefaultModel is the default generation model
	DefaultModel = "gemini-3-flash-preview"
)

// Client handles generateContent calls against the Gemini API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	model      string
}

// Config holds configuration for the Gemini client
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Model   string
}

// NewClient creates a new Gemini API client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	return &Client{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		model: config.Model,
	}
}

// Part is a single piece of content in a message
type Part struct {
	Text string `json:"text"`
}

// Content is one message in a generateContent request or response
type Content struct {
	Role  string `json:"role,omitempty"` // "user" or "model"
	Parts []Part `json:"parts"`
}

// Schema describes the expected shape of a structured JSON response
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// GenerationConfig controls response formatting
type GenerationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
}

// GenerateRequest is the generateContent request payload
type GenerateRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate is one generated reply
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// UsageMetadata reports token usage for a request
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// GenerateResponse is the generateContent response payload
type GenerateResponse struct {
	Candidates    []Candidate   `json:"candidates"`
	UsageMetadata UsageMetadata `json:"usageMetadata"`
}

// ExtractText returns the text of the first candidate, or ""
func (r *GenerateResponse) ExtractText() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}

// Option is a function that modifies the generate request
type Option func(*GenerateRequest)

// WithSystemInstruction sets a system instruction for the request
func WithSystemInstruction(instruction string) Option {
	return func(req *GenerateRequest) {
		req.SystemInstruction = &Content{Parts: []Part{{Text: instruction}}}
	}
}

// WithJSONSchema requests structured JSON output matching the schema
func WithJSONSchema(schema *Schema) Option {
	return func(req *GenerateRequest) {
		if req.GenerationConfig == nil {
			req.GenerationConfig = &GenerationConfig{}
		}
		req.GenerationConfig.ResponseMIMEType = "application/json"
		req.GenerationConfig.ResponseSchema = schema
	}
}

// WithTemperature sets the sampling temperature for the request
func WithTemperature(temp float64) Option {
	return func(req *GenerateRequest) {
		if req.GenerationConfig == nil {
			req.GenerationConfig = &GenerationConfig{}
		}
		req.GenerationConfig.Temperature = temp
	}
}

// GenerateContent sends a generateContent request for the configured model
func (c *Client) GenerateContent(ctx context.Context, contents []Content, options ...Option) (*GenerateResponse, error) {
	req := GenerateRequest{
		Contents: contents,
	}

	for _, opt := range options {
		opt(&req)
	}

	return c.sendGenerateContent(ctx, req)
}

// GenerateText is a convenience method for single-turn text prompts
func (c *Client) GenerateText(ctx context.Context, prompt string, options ...Option) (string, error) {
	contents := []Content{
		{Role: "user", Parts: []Part{{Text: prompt}}},
	}

	resp, err := c.GenerateContent(ctx, contents, options...)
	if err != nil {
		return "", err
	}

	return resp.ExtractText(), nil
}

// sendGenerateContent performs the actual API request
func (c *Client) sendGenerateContent(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("x-goog-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result GenerateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
