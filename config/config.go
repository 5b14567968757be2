package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// ProbeDisabled turns the scheduled backend probe off when used as PROBE_SCHEDULE.
const ProbeDisabled = "off"

type Google struct {
	// base64 encoded service account json
	Credentials string
}

type OpenAI struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Ollama struct {
	Host  string
	Model string
}

// Config holds everything the service reads from the environment.
type Config struct {
	Host          string
	Port          int
	Provider      string
	ProbeSchedule string
	GinMode       string // empty keeps gin's own default
	Google        Google
	OpenAI        OpenAI
	Ollama        Ollama
}

// Load reads an optional .env file and builds the config from the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		// .env is optional, real deployments set the variables directly
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	// gin reads GIN_MODE once at init, before .env has been loaded
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	return cfg, nil
}

// FromEnv builds the config from the current environment, applying defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Host:          getEnv("HOST", "0.0.0.0"),
		Provider:      strings.ToLower(getEnv("NLP_PROVIDER", ProviderGoogle)),
		ProbeSchedule: getEnv("PROBE_SCHEDULE", "*/10 * * * *"),
		GinMode:       strings.ToLower(getEnv(gin.EnvGinMode, "")),
		Google: Google{
			Credentials: os.Getenv("NATURAL_LANGUAGE_CREDENTIALS"),
		},
		OpenAI: OpenAI{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
		},
		Ollama: Ollama{
			Host:  strings.TrimRight(getEnv("OLLAMA_HOST", "http://localhost:11434"), "/"),
			Model: getEnv("OLLAMA_MODEL", "mistral"),
		},
	}

	port, err := strconv.Atoi(getEnv("PORT", "5000"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected provider has what it needs to start.
func (c *Config) Validate() error {
	switch c.GinMode {
	case "", gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("invalid GIN_MODE %q (want debug, release or test)", c.GinMode)
	}

	switch c.Provider {
	case ProviderGoogle:
		if c.Google.Credentials == "" {
			return errors.New("NATURAL_LANGUAGE_CREDENTIALS must be set for the google provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return errors.New("OPENAI_API_KEY must be set for the openai provider")
		}
	case ProviderOllama:
		if c.Ollama.Host == "" {
			return errors.New("OLLAMA_HOST must not be empty for the ollama provider")
		}
	default:
		return fmt.Errorf("unknown NLP_PROVIDER %q (want google, openai or ollama)", c.Provider)
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ProbeEnabled reports whether the scheduled backend probe should run.
func (c *Config) ProbeEnabled() bool {
	return c.ProbeSchedule != "" && c.ProbeSchedule != ProbeDisabled
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
