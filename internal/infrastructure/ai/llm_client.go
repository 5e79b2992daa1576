package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/metrics"
)

const (
	DefaultBaseURL     = "https://api.siliconflow.cn/v1"
	DefaultModel       = "Qwen/Qwen2.5-7B-Instruct"
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.7
	DefaultTimeout     = 30 * time.Second
)

// Settings はLLM APIの接続設定
// 呼び出しのたびに読み直されるため、実行中の設定変更が次の呼び出しに反映される
type Settings struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// IsConfigured は認証情報が設定されているかを返す
func (s Settings) IsConfigured() bool {
	return strings.TrimSpace(s.APIKey) != ""
}

// withDefaults は未設定の項目に既定値を入れる
func (s Settings) withDefaults() Settings {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.Model == "" {
		s.Model = DefaultModel
	}
	if s.MaxTokens <= 0 {
		s.MaxTokens = DefaultMaxTokens
	}
	if s.Temperature <= 0 {
		s.Temperature = DefaultTemperature
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	return s
}

// StaticSettings は固定の設定を返すプロバイダを作る
func StaticSettings(s Settings) func() Settings {
	return func() Settings { return s }
}

// LLMClient はOpenAI互換のChat Completions API（SiliconFlow）との通信を担当するクライアント
type LLMClient struct {
	settings   func() Settings
	httpClient *http.Client
}

// NewLLMClient は新しいLLMClientインスタンスを作成
func NewLLMClient(settings func() Settings) *LLMClient {
	return &LLMClient{
		settings:   settings,
		httpClient: &http.Client{},
	}
}

// ChatMessage は会話の1メッセージ
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest はChat Completions APIへのリクエスト構造体
type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ResponseFormat は応答形式の指定
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatCompletionResponse はChat Completions APIからのレスポンス構造体
type ChatCompletionResponse struct {
	Choices []Choice  `json:"choices"`
	Error   *APIError `json:"error,omitempty"`
}

// Choice は生成された候補
type Choice struct {
	Message ChatMessage `json:"message"`
}

// APIError はAPIが返すエラー情報
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// IsConfigured は呼び出し時点の設定で認証情報があるかを返す
func (c *LLMClient) IsConfigured() bool {
	return c != nil && c.settings != nil && c.settings().IsConfigured()
}

// ChatCompletion はJSON形式の応答を要求してメッセージを送り、最初の候補の本文を返す
func (c *LLMClient) ChatCompletion(ctx context.Context, messages []ChatMessage) (content string, err error) {
	if c.settings == nil {
		return "", repository.ErrNotConfigured
	}
	settings := c.settings()
	if !settings.IsConfigured() {
		return "", repository.ErrNotConfigured
	}
	settings = settings.withDefaults()

	start := time.Now()
	defer func() { metrics.ObserveLLMRequest(start, err) }()

	ctx, cancel := context.WithTimeout(ctx, settings.Timeout)
	defer cancel()

	req := ChatCompletionRequest{
		Model:          settings.Model,
		Messages:       messages,
		Temperature:    settings.Temperature,
		MaxTokens:      settings.MaxTokens,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("リクエストのシリアライズに失敗: %w", err)
	}

	url := strings.TrimRight(settings.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+settings.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("レスポンスの読み取りに失敗: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API呼び出しエラー (status: %d): %s", resp.StatusCode, string(body))
	}

	var completion ChatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("レスポンスのパースに失敗: %w", err)
	}

	if len(completion.Choices) == 0 {
		if completion.Error != nil {
			return "", fmt.Errorf("有効なレスポンスが生成されませんでした: %s", completion.Error.Message)
		}
		return "", fmt.Errorf("有効なレスポンスが生成されませんでした")
	}

	return completion.Choices[0].Message.Content, nil
}
