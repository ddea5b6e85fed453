package ai

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for every mentor call
const DefaultModel = "gemini-3-flash-preview"

// DefaultTimeout bounds a single mentor request
const DefaultTimeout = 30 * time.Second

// Generator is the part of the Gemini client the mentor needs.
// *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config holds mentor settings
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Mentor formats prompts and forwards them to Gemini. Its methods never
// return errors; failures come back as tagged results carrying fallback text.
type Mentor struct {
	gen     Generator
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a mentor backed by the Gemini API
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Mentor, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return NewWithGenerator(client.Models, cfg, logger), nil
}

// NewWithGenerator creates a mentor over any Generator
func NewWithGenerator(gen Generator, cfg Config, logger *zap.Logger) *Mentor {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mentor{
		gen:     gen,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// Model returns the configured model name
func (m *Mentor) Model() string {
	return m.model
}

// generate sends one prompt and returns the trimmed reply text
func (m *Mentor) generate(ctx context.Context, prompt string, temperature float32, topP *float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
		TopP:        topP,
	}

	start := time.Now()
	resp, err := m.gen.GenerateContent(ctx, m.model, genai.Text(prompt), config)
	if err != nil {
		m.logger.Error("Gemini API error",
			zap.String("model", m.model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", err
	}
	if resp == nil {
		return "", nil
	}

	m.logger.Debug("Gemini reply",
		zap.String("model", m.model),
		zap.Duration("elapsed", time.Since(start)))

	return strings.TrimSpace(resp.Text()), nil
}
