package hint

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

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pattern-island/internal/pattern"
)

// ErrEmptyResponse is returned when the service answers without any text.
var ErrEmptyResponse = errors.New("hint: empty response")

// GeminiOptions configures a Gemini client.
type GeminiOptions struct {
	Endpoint        string
	Model           string
	APIKey          string
	Temperature     float64
	TopP            float64
	MaxOutputTokens int
	WordCap         int
	HTTPClient      *http.Client
	Logger          *log.Logger
}

// Gemini calls the generateContent REST endpoint of the Gemini API.
type Gemini struct {
	opts       GeminiOptions
	httpClient *http.Client
	log        *log.Logger
}

// NewGemini creates a client. Callers bound each call with a context deadline.
func NewGemini(opts GeminiOptions) *Gemini {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.WordCap < 1 {
		opts.WordCap = DefaultWordCap
	}
	return &Gemini{
		opts:       opts,
		httpClient: hc,
		log:        logger.WithPrefix("gemini"),
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64        `json:"temperature"`
	TopP            float64        `json:"topP"`
	MaxOutputTokens int            `json:"maxOutputTokens"`
	ThinkingConfig  thinkingConfig `json:"thinkingConfig"`
}

type thinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Hint asks the model for a strategy clue and returns its raw text.
func (g *Gemini) Hint(ctx context.Context, level pattern.Level) (string, error) {
	if strings.TrimSpace(g.opts.APIKey) == "" {
		return "", errors.New("hint: no api key configured")
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(g.opts.Endpoint, "/"), g.opts.Model)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: Prompt(level, g.opts.WordCap)}}}},
		GenerationConfig: generationConfig{
			Temperature:     g.opts.Temperature,
			TopP:            g.opts.TopP,
			MaxOutputTokens: g.opts.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("hint: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("hint: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.opts.APIKey)

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("hint: request failed: %w", err)
	}
	defer resp.Body.Close()

	g.log.Debug("response received", "level", level.ID, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("hint: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("hint: decode response: %w", err)
	}

	var sb strings.Builder
	for _, c := range out.Candidates {
		for _, p := range c.Content.Parts {
			sb.WriteString(p.Text)
		}
		if sb.Len() > 0 {
			break
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

type promptItem struct {
	Shape string         `json:"shape,omitempty"`
	Color string         `json:"color,omitempty"`
	Emoji string         `json:"emoji,omitempty"`
	Val   *pattern.Value `json:"val,omitempty"`
	Rot   int            `json:"rot,omitempty"`
}

// Prompt builds the request text for a level. Items are reduced to their
// visual attributes so ids and the answer never reach the service.
func Prompt(level pattern.Level, wordCap int) string {
	items := make([]promptItem, len(level.Sequence))
	for i, it := range level.Sequence {
		p := promptItem{
			Shape: string(it.Shape),
			Color: string(it.Color),
			Emoji: it.Emoji,
			Rot:   it.Rotation,
		}
		if !it.Value.IsZero() {
			v := it.Value
			p.Val = &v
		}
		items[i] = p
	}
	data, _ := json.Marshal(items)

	return fmt.Sprintf(`Rule: Friendly hint for a 7yo child learning patterns. Do not give the answer. Max %d words.
Context: This is a %s pattern game.
Pattern Items: %s
Give a strategy clue only.`, wordCap, level.Category, data)
}
