// Package analysis предоставляет HTTP-клиент сервиса анализа ингредиентов.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vasilis249/ingredient-scanner/internal/model"
)

const (
	// analyzePath задаёт путь операции анализа на сервисе.
	analyzePath = "/cosmetics/analyze"
	// requestTimeout задаёт фиксированный таймаут одного запроса.
	requestTimeout = 30 * time.Second
)

// Client инкапсулирует обращения к сервису анализа ингредиентов.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент сервиса анализа по указанному базовому адресу.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// FetchAnalysis запрашивает отчёт о рисках ингредиентов по штрихкоду.
// На вызов приходится ровно один сетевой запрос, без повторов и кэширования.
// Любой отказ возвращается как *RequestError с категорией и сообщением.
func (c *Client) FetchAnalysis(ctx context.Context, barcode string) (*model.AnalysisResult, error) {
	reqURL, err := c.buildURL(barcode)
	if err != nil {
		return nil, &RequestError{Kind: ErrorKindInvalidEndpoint, Message: err.Error(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &RequestError{Kind: ErrorKindInvalidEndpoint, Message: fmt.Sprintf("create request: %v", err), Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Kind: ErrorKindTransport, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Kind: ErrorKindTransport, Message: fmt.Sprintf("read response body: %v", err), Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &RequestError{Kind: ErrorKindServer, Message: serverMessage(resp.StatusCode, body)}
	}

	result, err := model.DecodeAnalysisResult(body)
	if err != nil {
		return nil, &RequestError{Kind: ErrorKindDecodeFailure, Message: err.Error(), Err: err}
	}

	return result, nil
}

// buildURL собирает адрес запроса, подставляя штрихкод в query-параметры.
func (c *Client) buildURL(barcode string) (string, error) {
	if c == nil || c.baseURL == "" {
		return "", fmt.Errorf("analyzer address is not configured")
	}

	base := c.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse analyzer address: %w", err)
	}

	u.Path = strings.TrimRight(u.Path, "/") + analyzePath
	q := u.Query()
	q.Set("barcode", barcode)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// serverMessage извлекает сообщение из тела ошибочного ответа.
// Порядок источников: поле detail, поле message, текст тела, затем статус.
func serverMessage(status int, body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}

	return fmt.Sprintf("status %d", status)
}
