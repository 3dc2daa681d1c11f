package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RiskConfig holds the classification thresholds and stage weights.
// It is built once at startup and passed into components; nothing
// mutates it afterwards.
type RiskConfig struct {
	HighThreshold   float64 `json:"high_threshold"`
	MediumThreshold float64 `json:"medium_threshold"`
	StaticWeight    float64 `json:"static_weight"`
	NewsWeight      float64 `json:"news_weight"`
}

// DefaultRiskConfig returns the standard thresholds and weights.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		HighThreshold:   70,
		MediumThreshold: 40,
		StaticWeight:    0.6,
		NewsWeight:      0.4,
	}
}

// OpenAIConfig configures the LLM collaborator.
type OpenAIConfig struct {
	APIKey string
	Model  string
	// Requests per second allowed against the API.
	RateLimit float64
}

// SMTPConfig configures the mail dispatcher.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Configured reports whether enough settings are present to send mail.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.From != "" && s.Username != ""
}

// NewsSource is one page the headline scraper polls.
type NewsSource struct {
	URL    string `json:"url"`
	Domain string `json:"domain"`
}

// DefaultNewsSources returns the economic and geopolitical pages the
// scraper pulls headlines from when none are configured.
func DefaultNewsSources() []NewsSource {
	return []NewsSource{
		{URL: "https://www.reuters.com/business/", Domain: "reuters.com"},
		{URL: "https://www.ft.com/global-economy", Domain: "ft.com"},
		{URL: "https://www.bloomberg.com/markets", Domain: "bloomberg.com"},
		{URL: "https://www.aljazeera.com/middle-east/", Domain: "aljazeera.com"},
		{URL: "https://www.bbc.com/news/world", Domain: "bbc.com"},
		{URL: "https://www.cnn.com/world", Domain: "cnn.com"},
	}
}

// Config is the full application configuration.
type Config struct {
	Port    string
	DataDir string
	Risk    RiskConfig
	OpenAI  OpenAIConfig
	SMTP    SMTPConfig
	Sources []NewsSource
}

// Load reads configuration from the environment with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:    getEnvOrDefault("PORT", "8080"),
		DataDir: getEnvOrDefault("DATA_DIR", "./data"),
		Risk:    DefaultRiskConfig(),
		OpenAI: OpenAIConfig{
			APIKey:    os.Getenv("OPENAI_API_KEY"),
			Model:     getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
			RateLimit: 2,
		},
		SMTP: SMTPConfig{
			Host:     getEnvOrDefault("SMTP_SERVER", "smtp.gmail.com"),
			Port:     587,
			Username: os.Getenv("EMAIL_SENDER"),
			Password: os.Getenv("EMAIL_PASSWORD"),
			From:     os.Getenv("EMAIL_SENDER"),
		},
		Sources: DefaultNewsSources(),
	}

	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
		cfg.SMTP.Port = port
	}

	if v := os.Getenv("HIGH_RISK_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid HIGH_RISK_THRESHOLD %q: %w", v, err)
		}
		cfg.Risk.HighThreshold = f
	}
	if v := os.Getenv("MEDIUM_RISK_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MEDIUM_RISK_THRESHOLD %q: %w", v, err)
		}
		cfg.Risk.MediumThreshold = f
	}
	if v := os.Getenv("STATIC_RISK_WEIGHT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid STATIC_RISK_WEIGHT %q: %w", v, err)
		}
		cfg.Risk.StaticWeight = f
	}
	if v := os.Getenv("NEWS_RISK_WEIGHT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid NEWS_RISK_WEIGHT %q: %w", v, err)
		}
		cfg.Risk.NewsWeight = f
	}

	// NEWS_SOURCES is a comma-separated list of url|domain pairs.
	if v := os.Getenv("NEWS_SOURCES"); v != "" {
		var sources []NewsSource
		for _, entry := range strings.Split(v, ",") {
			parts := strings.SplitN(strings.TrimSpace(entry), "|", 2)
			if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
				return nil, fmt.Errorf("invalid NEWS_SOURCES entry %q", entry)
			}
			sources = append(sources, NewsSource{URL: parts[0], Domain: parts[1]})
		}
		cfg.Sources = sources
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
