// Package ai wraps the OpenAI embeddings and chat-completions endpoints.
package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client is the narrow surface the diagnostic pipeline needs. Both calls
// return a provider error on any non-2xx response; the pipeline decides
// how to degrade.
type Client interface {
	Embed(text string) ([]float32, error)
	CompleteJSON(system, user string) (string, error)
}

// OpenAIClient calls the OpenAI REST API with plain HTTP.
type OpenAIClient struct {
	apiKey     string
	chatModel  string
	embedModel string
	baseURL    string
	client     *http.Client
}

func NewOpenAIClient(apiKey, chatModel, embedModel string, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{
		apiKey:     apiKey,
		chatModel:  chatModel,
		embedModel: embedModel,
		baseURL:    defaultBaseURL,
		client:     &http.Client{Timeout: timeout},
	}
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *format       `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type format struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Embed returns the embedding vector for the given text.
func (c *OpenAIClient) Embed(text string) ([]float32, error) {
	body, err := c.post("/embeddings", embedRequest{Model: c.embedModel, Input: text})
	if err != nil {
		return nil, err
	}

	var resp embedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode embeddings response: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("embeddings response contained no data")
	}
	return resp.Data[0].Embedding, nil
}

// CompleteJSON runs a low-temperature chat completion in JSON mode and
// returns the raw content string with any markdown code fences stripped.
func (c *OpenAIClient) CompleteJSON(system, user string) (string, error) {
	body, err := c.post("/chat/completions", chatRequest{
		Model: c.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    0.2,
		ResponseFormat: &format{Type: "json_object"},
	})
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat response contained no choices")
	}

	return stripCodeFences(resp.Choices[0].Message.Content), nil
}

func (c *OpenAIClient) post(path string, payload interface{}) ([]byte, error) {
	if c.apiKey == "" {
		return nil, errors.New("openai api key not configured")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read openai response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(buf.Bytes(), &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("openai returned %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("openai returned %d", resp.StatusCode)
	}

	return buf.Bytes(), nil
}

func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) > 2 {
			content = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}
	return content
}
