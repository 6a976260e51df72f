// Package anthropic 提供外部文本生成服务的访问层
//
// 每次调用都是无状态的单次请求，不做重试。模型输出没有结构契约，
// 所有解析都必须有显式的退化值。
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/JamalC77/penned-works/internal/config"
	apperrors "github.com/JamalC77/penned-works/pkg/errors"
	"github.com/JamalC77/penned-works/pkg/logger"
	"github.com/JamalC77/penned-works/pkg/metrics"
)

var tracer = otel.Tracer("anthropic")

const (
	defaultBaseURL    = "https://api.anthropic.com"
	defaultAPIVersion = "2023-06-01"
	defaultModel      = "claude-opus-4-20250514"

	feedbackMaxTokens    = 1024
	generateMaxTokens    = 2048
	storyWeaverMaxTokens = 1024
	assistMaxTokens      = 1024
	extractionMaxTokens  = 2048
	consistencyMaxTokens = 2048
)

// Client 外部文本生成服务客户端
type Client struct {
	apiKey     string
	baseURL    string
	apiVersion string
	model      string
	httpClient *http.Client
}

// NewClient 创建客户端
//
// 凭证缺失不阻止启动，后续调用会返回配置错误。
func NewClient(cfg *config.AnthropicConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	if cfg.APIKey == "" {
		logger.Warn(context.Background(), "anthropic api key is not configured, text generation is disabled")
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		apiVersion: apiVersion,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured 判断凭证是否已配置
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// message 消息请求体中的单条消息
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesRequest Messages API 请求体
type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

// contentBlock Messages API 响应中的内容块
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// messagesResponse Messages API 响应体
type messagesResponse struct {
	Content []contentBlock `json:"content"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// complete 发起一次 Messages API 调用并返回首个文本块
func (c *Client) complete(ctx context.Context, operation, system, userMessage string, maxTokens int) (string, error) {
	ctx, span := tracer.Start(ctx, "anthropic."+operation,
		trace.WithAttributes(attribute.String("llm.model", c.model)))
	defer span.End()

	if !c.Configured() {
		metrics.LLMRequestsTotal.WithLabelValues(operation, "unconfigured").Inc()
		return "", apperrors.ErrLLMNotConfigured
	}

	start := time.Now()

	reqBody := messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []message{{Role: "user", Content: userMessage}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Anthropic-Version", c.apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		metrics.LLMRequestsTotal.WithLabelValues(operation, "error").Inc()
		return "", apperrors.Wrap(err, apperrors.CodeLLMProviderError, "text generation request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		metrics.LLMRequestsTotal.WithLabelValues(operation, "error").Inc()
		return "", apperrors.Wrap(err, apperrors.CodeLLMProviderError, "failed to read response")
	}

	var parsed messagesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		span.RecordError(err)
		metrics.LLMRequestsTotal.WithLabelValues(operation, "error").Inc()
		return "", apperrors.Wrap(err, apperrors.CodeLLMProviderError, "failed to decode response")
	}

	if resp.StatusCode != http.StatusOK {
		msg := "text generation service returned an error"
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		err := fmt.Errorf("anthropic api status %d: %s", resp.StatusCode, msg)
		span.RecordError(err)
		metrics.LLMRequestsTotal.WithLabelValues(operation, "error").Inc()
		logger.Error(ctx, "anthropic request failed", err,
			"operation", operation,
			"status", resp.StatusCode,
		)
		return "", apperrors.Wrap(err, apperrors.CodeLLMProviderError, "text generation request failed")
	}

	metrics.LLMRequestsTotal.WithLabelValues(operation, "success").Inc()
	metrics.LLMRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", nil
}

// GetWritingFeedback 顾问模式：对选中段落给出反馈
func (c *Client) GetWritingFeedback(ctx context.Context, selection, fullContext, question string) (string, error) {
	text, err := c.complete(ctx, "feedback", consultantSystem,
		feedbackUserMessage(selection, fullContext, question), feedbackMaxTokens)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "Unable to generate feedback.", nil
	}
	return text, nil
}

// GenerateFromDescription 代笔模式：按作者描述生成草稿
func (c *Client) GenerateFromDescription(ctx context.Context, description, context_, styleNotes string) (string, error) {
	text, err := c.complete(ctx, "generate", expedienceSystem,
		generateUserMessage(description, context_, styleNotes), generateMaxTokens)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "Unable to generate content.", nil
	}
	return text, nil
}

// ContinueStory 故事编织模式：续写并给出分支选项
//
// 模型不遵循输出约定时静默退化，不报错。
func (c *Client) ContinueStory(ctx context.Context, storyContext, authorChoice string) (*StoryWeaverResult, error) {
	text, err := c.complete(ctx, "storyweaver", storyWeaverSystem,
		storyWeaverUserMessage(storyContext, authorChoice), storyWeaverMaxTokens)
	if err != nil {
		return nil, err
	}
	result := parseStoryWeaver(text)
	return &result, nil
}

// QuickAssist 快速润色：无法解析时原样返回输入
func (c *Client) QuickAssist(ctx context.Context, text string, kind AssistKind) (string, error) {
	revised, err := c.complete(ctx, "assist", quickAssistSystem,
		quickAssistUserMessage(text, kind), assistMaxTokens)
	if err != nil {
		return "", err
	}
	if revised == "" {
		return text, nil
	}
	return revised, nil
}

// ExtractStoryBibleElements 从单章文本抽取故事圣经要素
//
// 解析失败返回全空结构，传输失败返回错误。
func (c *Client) ExtractStoryBibleElements(ctx context.Context, chapterText, chapterTitle string, known *KnownBible) (*Extraction, error) {
	text, err := c.complete(ctx, "extract", extractionSystem,
		extractionUserMessage(chapterText, chapterTitle, known), extractionMaxTokens)
	if err != nil {
		return nil, err
	}
	return parseExtraction(text), nil
}

// CheckConsistency 检查全稿与故事圣经的一致性
//
// 解析失败返回空切片，传输失败返回错误。
func (c *Client) CheckConsistency(ctx context.Context, manuscript string, known *KnownBible) ([]ConsistencyIssue, error) {
	text, err := c.complete(ctx, "consistency", consistencySystem,
		consistencyUserMessage(manuscript, known), consistencyMaxTokens)
	if err != nil {
		return nil, err
	}
	return parseConsistencyIssues(text), nil
}
