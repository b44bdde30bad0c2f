package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Roles que entiende la API generateContent.
const (
	WireRoleUser  = "user"
	WireRoleModel = "model"
)

// Turn es un turno de la secuencia de prompt enviada al proveedor.
type Turn struct {
	Role string
	Text string
}

// LLMClient define la interfaz para generar respuestas con un LLM.
type LLMClient interface {
	Generate(ctx context.Context, turns []Turn) (string, error)
}

// Errores clasificados que el llamador puede inspeccionar con errors.Is.
var (
	ErrRateLimited   = errors.New("llm rate limited")
	ErrEmptyResponse = errors.New("llm empty response")
)

type logger interface {
	Printf(format string, v ...interface{})
}

// HTTPClient implementa LLMClient usando la API generateContent de Gemini.
type HTTPClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  logger
}

// NewHTTPClient construye un cliente HTTP apuntando a la API de generacion.
func NewHTTPClient(baseURL, apiKey, model string, log any) *HTTPClient {
	l, _ := log.(logger)
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  l,
	}
}

func (c *HTTPClient) Generate(ctx context.Context, turns []Turn) (string, error) {
	reqBody := generateRequest{Contents: make([]content, 0, len(turns))}
	for _, t := range turns {
		reqBody.Contents = append(reqBody.Contents, content{
			Role:  t.Role,
			Parts: []part{{Text: t.Text}},
		})
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		if c.logger != nil {
			c.logger.Printf("llm rate limited: %s", string(respBody))
		}
		return "", fmt.Errorf("llm http error: status=429: %w", ErrRateLimited)
	}
	if resp.StatusCode >= 400 {
		if c.logger != nil {
			c.logger.Printf("llm error status %d: %s", resp.StatusCode, string(respBody))
		}
		return "", fmt.Errorf("llm http error: status=%d", resp.StatusCode)
	}

	var gr generateResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if gr.Error != nil {
		if gr.Error.Code == http.StatusTooManyRequests || gr.Error.Status == "RESOURCE_EXHAUSTED" {
			return "", fmt.Errorf("llm api error: %s: %w", gr.Error.Message, ErrRateLimited)
		}
		return "", fmt.Errorf("llm api error: %s", gr.Error.Message)
	}

	// Candidatos vacios o filtrados por seguridad llegan sin parts.
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 ||
		gr.Candidates[0].Content.Parts[0].Text == "" {
		return "", ErrEmptyResponse
	}

	return gr.Candidates[0].Content.Parts[0].Text, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}
