package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

// Config is read from environment variables. GROQ_API_KEY is the only
// required setting.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Completion provider
	GroqAPIKey  string `env:"GROQ_API_KEY,required"`
	GroqBaseURL string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	GroqModel   string `env:"GROQ_MODEL" envDefault:"llama-3.3-70b-versatile"`

	// Profile service
	ProfileBaseURL string `env:"PROFILE_BASE_URL" envDefault:"https://ace.prismaticcrm.com"`

	// Outbound call bounds
	ProfileTimeout    time.Duration `env:"PROFILE_TIMEOUT" envDefault:"15s"`
	CompletionTimeout time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"30s"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
