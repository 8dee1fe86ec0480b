package config

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if !domain.ValidDelimiter(c.Meaning.Delimiter) {
		return fmt.Errorf("meaning: delimiter must be a single non-space character (got %q)", c.Meaning.Delimiter)
	}
	if err := c.Story.validate(); err != nil {
		return fmt.Errorf("story: %w", err)
	}
	if err := validTemperature(c.Grade.Temperature); err != nil {
		return fmt.Errorf("grade: %w", err)
	}
	if c.Page.BaseURL == "" {
		return fmt.Errorf("page: base_url is required")
	}
	return nil
}

func (l *LLMConfig) validate() error {
	switch l.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", l.Provider, ProviderOpenAI, ProviderAnthropic)
	}
	if strings.TrimSpace(l.APIKey) == "" {
		return fmt.Errorf("api_key is required (LLM_API_KEY or OPENAI_API_KEY)")
	}
	if l.StoryModel == "" || l.GradeModel == "" {
		return fmt.Errorf("story_model and grade_model are required")
	}
	if l.Provider == ProviderAnthropic && (strings.HasPrefix(l.StoryModel, "gpt-") || strings.HasPrefix(l.GradeModel, "gpt-")) {
		return fmt.Errorf("anthropic provider needs claude models (story_model %q, grade_model %q)", l.StoryModel, l.GradeModel)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	return nil
}

func (s *StoryConfig) validate() error {
	if err := validTemperature(s.Temperature); err != nil {
		return err
	}
	if err := validTemperature(s.RegenTemperature); err != nil {
		return fmt.Errorf("regen: %w", err)
	}
	if s.MinLength < 0 {
		return fmt.Errorf("min_length must be >= 0 (got %d)", s.MinLength)
	}
	if s.RegenConcurrency <= 0 {
		return fmt.Errorf("regen_concurrency must be > 0 (got %d)", s.RegenConcurrency)
	}
	if s.RegenMaxTokens < 0 {
		return fmt.Errorf("regen_max_tokens must be >= 0 (got %d)", s.RegenMaxTokens)
	}
	switch s.Fallback {
	case FallbackTemplate, FallbackEmpty, FallbackKeep:
	default:
		return fmt.Errorf("unknown fallback policy %q", s.Fallback)
	}
	if s.Fallback == FallbackTemplate && !strings.Contains(s.FallbackTemplate, "{word}") {
		return fmt.Errorf("fallback_template must contain {word}")
	}
	return nil
}

func validTemperature(t float64) error {
	if t < 0 || t > 2 {
		return fmt.Errorf("temperature must be within [0, 2] (got %v)", t)
	}
	return nil
}
