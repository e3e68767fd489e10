package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PromptLoaderConfig describes where a prompt is fetched from and what to
// fall back to.
type PromptLoaderConfig struct {
	BaseURL   string
	PublicKey string
	SecretKey string

	PromptName  string
	PromptLabel string
	// CachePath keeps the last fetched prompt for offline starts.
	CachePath string
	// Fallback is returned when neither Langfuse nor CachePath yields a prompt.
	Fallback string
}

var errLangfuseDisabled = errors.New("langfuse integration disabled")

// LoadPrompt returns the named Langfuse prompt, caching it at CachePath.
// When the fetch fails it tries the cached copy and then cfg.Fallback.
// An error is returned only when all three are unavailable.
func LoadPrompt(ctx context.Context, cfg PromptLoaderConfig, log *zap.Logger) (string, error) {
	prompt, err := fetchPrompt(ctx, cfg)
	switch {
	case err == nil:
		if err := savePromptToFile(cfg.CachePath, prompt); err != nil {
			log.Warn("failed to cache prompt locally", zap.String("path", cfg.CachePath), zap.Error(err))
		}
		log.Info("loaded prompt from langfuse", zap.String("prompt", cfg.PromptName), zap.String("label", cfg.PromptLabel))
		return prompt, nil
	case !errors.Is(err, errLangfuseDisabled):
		log.Warn("langfuse prompt fetch failed", zap.String("prompt", cfg.PromptName), zap.Error(err))
	}

	if cfg.CachePath != "" {
		cached, err := readPromptFromFile(cfg.CachePath)
		if err == nil {
			return cached, nil
		}
		if cfg.Fallback == "" {
			return "", err
		}
	}
	if cfg.Fallback == "" {
		return "", errors.New("no prompt source configured")
	}
	return cfg.Fallback, nil
}

func fetchPrompt(ctx context.Context, cfg PromptLoaderConfig) (string, error) {
	if cfg.PromptName == "" || cfg.BaseURL == "" || cfg.PublicKey == "" || cfg.SecretKey == "" {
		return "", errLangfuseDisabled
	}

	parsed, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid LANGFUSE_BASE_URL: %w", err)
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/") + "/api/public/v2/prompts/" + url.PathEscape(cfg.PromptName)
	if cfg.PromptLabel != "" {
		query := parsed.Query()
		query.Set("label", cfg.PromptLabel)
		parsed.RawQuery = query.Encode()
	}

	requestCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create prompt request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cfg.PublicKey, cfg.SecretKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call prompt API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("prompt API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var promptResp struct {
		Type   string          `json:"type"`
		Prompt json.RawMessage `json:"prompt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&promptResp); err != nil {
		return "", fmt.Errorf("decode prompt response: %w", err)
	}

	var prompt string
	switch promptResp.Type {
	case "", "text":
		if err := json.Unmarshal(promptResp.Prompt, &prompt); err != nil {
			return "", fmt.Errorf("parse text prompt: %w", err)
		}
	case "chat":
		var messages []chatPromptMessage
		if err := json.Unmarshal(promptResp.Prompt, &messages); err != nil {
			return "", fmt.Errorf("parse chat prompt: %w", err)
		}
		prompt = systemContent(messages)
	default:
		return "", fmt.Errorf("unsupported prompt type %q", promptResp.Type)
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt %q is empty", cfg.PromptName)
	}
	return prompt, nil
}

type chatPromptMessage struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// systemContent joins the system messages of a chat prompt. The user turn is
// built from analytics data at call time, so other roles are dropped.
func systemContent(messages []chatPromptMessage) string {
	var parts []string
	for _, msg := range messages {
		if msg.Type == "placeholder" || msg.Content == "" {
			continue
		}
		if msg.Role == "" || msg.Role == "system" {
			parts = append(parts, msg.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

func readPromptFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read cached prompt: %w", err)
	}
	return string(data), nil
}

func savePromptToFile(path, prompt string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(prompt), 0o600)
}
