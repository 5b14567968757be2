package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"go-textlens/config"
)

// NewOllamaBackend analyzes text with a model served by Ollama. A nil
// httpClient means http.DefaultClient.
func NewOllamaBackend(cfg config.Ollama, httpClient *http.Client) (Backend, error) {
	base, err := url.Parse(cfg.Host)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid OLLAMA_HOST %q", cfg.Host)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &llmBackend{
		name:     config.ProviderOllama,
		complete: ollamaComplete(api.NewClient(base, httpClient), cfg.Model),
	}, nil
}

func ollamaComplete(client *api.Client, model string) completeFunc {
	return func(ctx context.Context, system, prompt string) (string, error) {
		stream := false
		req := &api.GenerateRequest{
			Model:  model,
			System: system,
			Prompt: prompt,
			Format: json.RawMessage(`"json"`),
			Stream: &stream,
		}

		var out strings.Builder
		err := client.Generate(ctx, req, func(resp api.GenerateResponse) error {
			out.WriteString(resp.Response)
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("ollama generate error: %w", err)
		}

		reply := strings.TrimSpace(out.String())
		if reply == "" {
			return "", fmt.Errorf("ollama returned an empty response")
		}
		return reply, nil
	}
}
