package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	CORS    CORSConfig    `yaml:"cors"`
	LLM     LLMConfig     `yaml:"llm"`
	Meaning MeaningConfig `yaml:"meaning"`
	Story   StoryConfig   `yaml:"story"`
	Grade   GradeConfig   `yaml:"grade"`
	Page    PageConfig    `yaml:"page"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"180s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Completion providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// LLMConfig holds the completion oracle settings. APIKey is injected into the
// provider client at construction.
type LLMConfig struct {
	Provider   string        `yaml:"provider"    env:"LLM_PROVIDER"    env-default:"openai"`
	APIKey     string        `yaml:"api_key"     env:"LLM_API_KEY"`
	BaseURL    string        `yaml:"base_url"    env:"LLM_BASE_URL"`
	StoryModel string        `yaml:"story_model" env:"LLM_STORY_MODEL" env-default:"gpt-4o"`
	GradeModel string        `yaml:"grade_model" env:"LLM_GRADE_MODEL" env-default:"gpt-4o-mini"`
	MaxTokens  int           `yaml:"max_tokens"  env:"LLM_MAX_TOKENS"  env-default:"4096"`
	Timeout    time.Duration `yaml:"timeout"     env:"LLM_TIMEOUT"     env-default:"120s"`
}

// MeaningConfig controls meaning normalization.
type MeaningConfig struct {
	Delimiter    string `yaml:"delimiter"      env:"MEANING_DELIMITER"      env-default:","`
	Separators   string `yaml:"separators"     env:"MEANING_SEPARATORS"     env-default:"/·•|;"`
	SplitOnSpace bool   `yaml:"split_on_space" env:"MEANING_SPLIT_ON_SPACE" env-default:"true"`
}

// Fallback policies applied when a story fails the quality gate twice.
const (
	FallbackTemplate = "template"
	FallbackEmpty    = "empty"
	FallbackKeep     = "keep"
)

// StoryConfig holds mnemonic generation and quality gate settings.
type StoryConfig struct {
	Temperature      float64 `yaml:"temperature"       env:"STORY_TEMPERATURE"        env-default:"0.8"`
	RegenTemperature float64 `yaml:"regen_temperature" env:"STORY_REGEN_TEMPERATURE"  env-default:"0.9"`
	RegenMaxTokens   int     `yaml:"regen_max_tokens"  env:"STORY_REGEN_MAX_TOKENS"   env-default:"256"`
	RegenConcurrency int     `yaml:"regen_concurrency" env:"STORY_REGEN_CONCURRENCY"  env-default:"4"`
	MinLength        int     `yaml:"min_length"        env:"STORY_MIN_LENGTH"         env-default:"3"`
	BannedPhrases    string  `yaml:"banned_phrases"    env:"STORY_BANNED_PHRASES"     env-default:"외우자,기억하,암기하"`
	Fallback         string  `yaml:"fallback"          env:"STORY_FALLBACK"           env-default:"template"`
	FallbackTemplate string  `yaml:"fallback_template" env:"STORY_FALLBACK_TEMPLATE"  env-default:"{word} 하면 바로 떠오르는 {meaning}!"`
	NoEtymology      string  `yaml:"no_etymology"      env:"STORY_NO_ETYMOLOGY"       env-default:"어원 정보 없음"`
	GroupByRoot      bool    `yaml:"group_by_root"     env:"STORY_GROUP_BY_ROOT"      env-default:"false"`
}

// BannedPhraseList splits BannedPhrases on commas, dropping blanks.
func (s StoryConfig) BannedPhraseList() []string {
	return splitList(s.BannedPhrases)
}

// GradeConfig holds grading settings.
type GradeConfig struct {
	Temperature float64 `yaml:"temperature" env:"GRADE_TEMPERATURE" env-default:"0.15"`
}

// PageConfig holds page-fetch settings.
type PageConfig struct {
	BaseURL        string        `yaml:"base_url"        env:"PAGE_BASE_URL"        env-default:"https://velog.io"`
	DefaultAccount string        `yaml:"default_account" env:"PAGE_DEFAULT_ACCOUNT" env-default:"@dvlp"`
	Timeout        time.Duration `yaml:"timeout"         env:"PAGE_TIMEOUT"         env-default:"10s"`
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
