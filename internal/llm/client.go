// Package llm — клиент completion-сервера (llama.cpp server API).
// Модель и токенизатор живут в отдельном процессе, бот ходит к нему по HTTP.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// Температура сэмплирования. Ответы намеренно недетерминированы.
	temperature = 0.5

	generateTimeout = 3 * time.Minute
	tokenizeTimeout = 15 * time.Second
)

// markupTagRe вычищает обрывки разметки вида "</think>" из ответа модели
var markupTagRe = regexp.MustCompile(`</[^>]+>`)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Generate генерирует не более maxNewTokens новых токенов по промпту.
// Вызов блокирующий, поэтому снаружи выполняется в пуле воркеров.
func (c *Client) Generate(ctx context.Context, prompt string, maxNewTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	req := struct {
		Prompt      string  `json:"prompt"`
		NPredict    int     `json:"n_predict"`
		Temperature float64 `json:"temperature"`
		Stream      bool    `json:"stream"`
	}{
		Prompt:      prompt,
		NPredict:    maxNewTokens,
		Temperature: temperature,
	}

	var resp struct {
		Content string `json:"content"`
	}

	if err := c.post(ctx, "/completion", req, &resp); err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}

	return CleanResponse(resp.Content), nil
}

// TokenCount возвращает количество токенов в тексте
func (c *Client) TokenCount(ctx context.Context, text string) (int, error) {
	tokens, err := c.tokenize(ctx, text)
	if err != nil {
		return 0, err
	}
	return len(tokens), nil
}

// TruncateToTokens обрезает текст до limit токенов.
// Если текст уже укладывается в лимит, возвращается без изменений.
func (c *Client) TruncateToTokens(ctx context.Context, text string, limit int) (string, error) {
	if limit <= 0 {
		return "", nil
	}

	tokens, err := c.tokenize(ctx, text)
	if err != nil {
		return "", err
	}

	if len(tokens) <= limit {
		return text, nil
	}

	ctx, cancel := context.WithTimeout(ctx, tokenizeTimeout)
	defer cancel()

	req := struct {
		Tokens []int `json:"tokens"`
	}{Tokens: tokens[:limit]}

	var resp struct {
		Content string `json:"content"`
	}

	if err := c.post(ctx, "/detokenize", req, &resp); err != nil {
		return "", fmt.Errorf("detokenize: %w", err)
	}

	return resp.Content, nil
}

// CleanResponse убирает обрывки тегов и лишние пробелы из сырого вывода модели
func CleanResponse(raw string) string {
	return strings.TrimSpace(markupTagRe.ReplaceAllString(raw, ""))
}

func (c *Client) tokenize(ctx context.Context, text string) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, tokenizeTimeout)
	defer cancel()

	req := struct {
		Content string `json:"content"`
	}{Content: text}

	var resp struct {
		Tokens []int `json:"tokens"`
	}

	if err := c.post(ctx, "/tokenize", req, &resp); err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	return resp.Tokens, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("llm server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
