package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	TextBackendOpenAI = "openai"
	TextBackendGemini = "gemini"

	CacheBackendFile     = "file"
	CacheBackendPostgres = "postgres"
)

// Config is resolved once at startup and passed by value to every constructor.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	Port     string `env:"PORT" envDefault:"8000" validate:"required,numeric"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`

	// Text generation
	TextBackend   string `env:"TEXT_BACKEND" envDefault:"openai" validate:"oneof=openai gemini"`
	OpenAIKey     string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com" validate:"url"`
	GeminiKey     string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	// Image generation
	StabilityKey      string `env:"STABILITY_KEY"`
	StabilityEndpoint string `env:"STABILITY_ENDPOINT" envDefault:"https://api.stability.ai" validate:"url"`
	StabilityEngine   string `env:"STABILITY_ENGINE" envDefault:"stable-diffusion-xl-1024-v1-0" validate:"required"`

	// Menu shape
	MenuTheme          string `env:"MENU_THEME" envDefault:"potatoes"`
	DishesPerCategory  int    `env:"DISHES_PER_CATEGORY" envDefault:"6" validate:"min=1,max=20"`
	IngredientsPerDish int    `env:"INGREDIENTS_PER_DISH" envDefault:"5" validate:"min=1,max=20"`

	// Cache
	CacheBackend string `env:"CACHE_BACKEND" envDefault:"file" validate:"oneof=file postgres"`
	CachePath    string `env:"CACHE_PATH" envDefault:"data.json"`
	DatabaseURL  string `env:"DATABASE_URL"`

	// Images
	StaticDir      string `env:"STATIC_DIR" envDefault:"static" validate:"required"`
	ImageOutputDir string `env:"IMAGE_OUTPUT_DIR" envDefault:"img/menu" validate:"required"`

	// Optional R2 mirror for generated images
	R2Endpoint  string `env:"R2_ENDPOINT"`
	R2AccessKey string `env:"R2_ACCESS_KEY"`
	R2SecretKey string `env:"R2_SECRET_KEY"`
	R2Bucket    string `env:"R2_BUCKET_NAME"`
}

// Load reads .env (outside production) and parses the environment.
func Load() (Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	return FromEnviron(env.ToMap(os.Environ()))
}

// FromEnviron parses and validates the given variables instead of the process env.
func FromEnviron(environ map[string]string) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: environ})
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks field constraints and the storage settings every command
// needs. Generation credentials are checked by ValidateGeneration.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var missing []string

	switch c.CacheBackend {
	case CacheBackendFile:
		if c.CachePath == "" {
			missing = append(missing, "CACHE_PATH")
		}
	case CacheBackendPostgres:
		if c.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	}

	// R2 is all-or-nothing
	if c.R2Endpoint != "" || c.R2Bucket != "" {
		for k, v := range map[string]string{
			"R2_ENDPOINT":    c.R2Endpoint,
			"R2_ACCESS_KEY":  c.R2AccessKey,
			"R2_SECRET_KEY":  c.R2SecretKey,
			"R2_BUCKET_NAME": c.R2Bucket,
		} {
			if v == "" {
				missing = append(missing, k)
			}
		}
	}

	return missingVars(missing)
}

// ValidateGeneration checks the API keys needed to generate a menu.
func (c Config) ValidateGeneration() error {
	var missing []string

	switch c.TextBackend {
	case TextBackendOpenAI:
		if c.OpenAIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case TextBackendGemini:
		if c.GeminiKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	}

	if c.StabilityKey == "" {
		missing = append(missing, "STABILITY_KEY")
	}

	return missingVars(missing)
}

func missingVars(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return errors.New("missing env vars: " + strings.Join(missing, ", "))
}

// MirrorEnabled reports whether generated images are also pushed to R2.
func (c Config) MirrorEnabled() bool {
	return c.R2Bucket != ""
}

func (c Config) Production() bool {
	return c.AppEnv == "production"
}
