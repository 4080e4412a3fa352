// Package llm is the gateway to the chat-completion provider. One attempt
// per call; callers decide whether a failure is fatal or a degrade.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"travel-madlibs/internal/common/config"
	apperrors "travel-madlibs/internal/common/errors"
	"travel-madlibs/internal/common/httpclient"
	"travel-madlibs/internal/common/logger"
	"travel-madlibs/internal/common/metrics"
	"travel-madlibs/internal/prompt"
)

const tracerName = "llm-gateway"

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	warmModel  string
	httpClient *httpclient.Client
	logger     logger.Logger
}

func NewClient(cfg config.OpenAIConfig, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		warmModel:  cfg.WarmModel,
		httpClient: httpclient.NewClient(config.GetDuration(cfg.Timeout)),
		logger:     log.WithFields(map[string]interface{}{"component": "llm-gateway"}),
	}
}

// Configured reports whether an API key is present. The hybrid ranker
// checks this to skip the ranking call entirely.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// CompleteJSON submits a payload and returns the completion text, trimmed.
// Single attempt; no retry.
func (c *Client) CompleteJSON(ctx context.Context, p prompt.Payload) (string, error) {
	if !c.Configured() {
		return "", apperrors.NewConfigurationMissingError("OpenAI API key is not configured")
	}
	return c.complete(ctx, c.model, p)
}

// Warm fires a minimal ping at the provider to reduce first-call latency.
// A missing key is a silent no-op; other failures are returned for the
// caller to log and ignore.
func (c *Client) Warm(ctx context.Context) error {
	if !c.Configured() {
		return nil
	}
	_, err := c.complete(ctx, c.warmModel, prompt.Warm())
	return err
}

func (c *Client) complete(ctx context.Context, model string, p prompt.Payload) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "complete", trace.WithAttributes(
		attribute.String("llm.task", p.Task),
		attribute.String("llm.model", model),
	))
	defer span.End()

	start := time.Now()
	metrics.LLMRequestsTotal.WithLabelValues(p.Task).Inc()

	messages := []chatMessage{{Role: "system", Content: p.System}}
	if p.User != "" {
		messages = append(messages, chatMessage{Role: "user", Content: p.User})
	}

	request := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	}
	if p.JSONMode {
		request.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, _ := json.Marshal(request)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", c.fail(span, p.Task, apperrors.NewProviderError("Failed to build provider request", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.fail(span, p.Task, apperrors.NewProviderError("Failed to reach the model provider", err))
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return "", c.fail(span, p.Task, apperrors.NewProviderError(
			fmt.Sprintf("Model provider returned status %d", resp.StatusCode),
			fmt.Errorf("%s", raw),
		))
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", c.fail(span, p.Task, apperrors.NewProviderError("Malformed provider response envelope", err))
	}

	content := ""
	if len(out.Choices) > 0 {
		content = strings.TrimSpace(out.Choices[0].Message.Content)
	}
	if content == "" && p.JSONMode {
		return "", c.fail(span, p.Task, apperrors.NewProviderError("No response received from the model provider", nil))
	}

	// Raw completion text kept in logs for diagnosing bad model output.
	c.logger.Debug("completion received", map[string]interface{}{
		"task":     p.Task,
		"model":    model,
		"response": content,
	})

	metrics.LLMRequestDuration.WithLabelValues(p.Task).Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("llm.response_length", len(content)))
	span.SetStatus(codes.Ok, "")

	return content, nil
}

func (c *Client) fail(span trace.Span, task string, err *apperrors.StandardError) error {
	metrics.LLMRequestsFailed.WithLabelValues(task, string(err.Code)).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Message)
	c.logger.WithError(err).Error("completion failed", map[string]interface{}{
		"task": task,
		"code": string(err.Code),
	})
	return err
}
