// Package decompose asks a text-generation endpoint to split a big task into steps.
package decompose

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"todo-list/internal/errors"
)

const (
	serviceName     = "task breakdown endpoint"
	maxResponseSize = 1 << 20
)

// Options configures a Client
type Options struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client calls the decomposition endpoint. One request per call, no retries.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// Result is a parsed endpoint reply
type Result struct {
	Steps         []string `json:"steps"`
	Clarification string   `json:"clarification,omitempty"`
}

type generateRequest struct {
	Task string `json:"task"`
}

type chatCompletion struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type endpointError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a new decomposition client
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		endpoint: opts.Endpoint,
		apiKey:   opts.APIKey,
		client:   httpClient,
	}
}

// Decompose sends task to the endpoint and parses the first choice's content
func (c *Client) Decompose(ctx context.Context, task string) (*Result, error) {
	body, err := json.Marshal(generateRequest{Task: task})
	if err != nil {
		return nil, errors.NewUpstreamError(serviceName, fmt.Errorf("failed to marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewUpstreamError(serviceName, fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.NewUpstreamError(serviceName, fmt.Errorf("HTTP request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.NewUpstreamError(serviceName, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr endpointError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, errors.NewUpstreamError(serviceName, fmt.Errorf("endpoint error (%d): %s", resp.StatusCode, apiErr.Error.Message))
		}
		return nil, errors.NewUpstreamError(serviceName, fmt.Errorf("endpoint error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	var completion chatCompletion
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, errors.NewUpstreamError(serviceName, fmt.Errorf("failed to decode response: %w", err))
	}
	if len(completion.Choices) == 0 {
		return nil, errors.NewUpstreamError(serviceName, fmt.Errorf("response has no choices"))
	}

	steps, rest := Split(completion.Choices[0].Message.Content)
	return &Result{Steps: steps, Clarification: rest}, nil
}
