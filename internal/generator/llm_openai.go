package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

func init() {
	Register("llm", newLLM)
}

const defaultLLMEndpoint = "https://api.openai.com/v1/chat/completions"

// LLM generates candidates through an OpenAI-compatible chat/completions
// endpoint, issuing one request per candidate (n=1 each). Every call sends
// the same temperature and no seed, so candidates differ only through the
// provider's own sampling.
type LLM struct {
	apiKey         string
	endpoint       string
	model          string
	defaultTemp    float64
	topP           float64
	maxTokens      int
	isFixedTempDef bool // true for model families (gpt-5) that reject a custom temperature
	client         *http.Client
}

func newLLM(params map[string]string) (Generator, error) {
	apiKey := params["api_key"]
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("generator: llm adapter requires api_key param or OPENAI_API_KEY env var")
	}

	model := params["model"]
	if model == "" {
		model = "gpt-5"
	}

	endpoint := params["endpoint"]
	if endpoint == "" {
		endpoint = defaultLLMEndpoint
	}

	temp := 0.9
	if v, ok := params["temperature"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			temp = parsed
		}
	}
	topP := 0.95
	if v, ok := params["top_p"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			topP = parsed
		}
	}
	maxTokens := 2000
	if v, ok := params["max_completion_tokens"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			maxTokens = parsed
		}
	}

	return &LLM{
		apiKey:         apiKey,
		endpoint:       endpoint,
		model:          model,
		defaultTemp:    temp,
		topP:           topP,
		maxTokens:      maxTokens,
		isFixedTempDef: strings.Contains(strings.ToLower(model), "gpt-5"),
		client:         newHTTPClient(60 * time.Second),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	TopP                float64       `json:"top_p"`
	MaxCompletionTokens int           `json:"max_completion_tokens"`
	N                   int           `json:"n"`
	Temperature         float64       `json:"temperature,omitempty"`
	Seed                *int          `json:"seed,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate issues k independent chat/completions calls, one candidate per
// call. A failed call contributes an error-string placeholder candidate
// rather than aborting the batch; if ctx is cancelled, Generate stops and
// returns the candidates so far together with ctx.Err().
func (l *LLM) Generate(ctx context.Context, src string, k int, opts ...Option) ([]string, error) {
	o := resolveOptions(opts)
	prompt := o.prompt
	if prompt == "" {
		prompt = "Translate the following English text to Hawaiian:"
	}
	fullPrompt := applyPrompt(prompt, src)

	temperature := l.defaultTemp
	if o.hasTemp {
		temperature = o.temperature
	}

	candidates := make([]string, 0, k)
	for i := 0; i < k; i++ {
		text, err := l.complete(ctx, fullPrompt, temperature)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return candidates, ctxErr
			}
			candidates = append(candidates, fmt.Sprintf("[Translation error: %s]", err))
			continue
		}
		candidates = append(candidates, text)
	}
	return candidates, nil
}

func (l *LLM) complete(ctx context.Context, fullPrompt string, temperature float64) (string, error) {
	req := chatRequest{
		Model: l.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a Hawaiian language translator."},
			{Role: "user", Content: fullPrompt},
		},
		TopP:                l.topP,
		MaxCompletionTokens: l.maxTokens,
		N:                   1,
	}
	if !l.isFixedTempDef {
		req.Temperature = temperature
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+l.apiKey)

	resp, err := l.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp, "openai"); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response contained no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
