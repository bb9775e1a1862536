package config

import "github.com/phrazzld/bazi-api/internal/domain/bazi"

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Engine   EngineConfig   `mapstructure:"engine" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0,lte=43200"`
	BCryptCost           int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// LLMConfig configures the optional model-backed chart narrator. When
// Enabled is false the deterministic template reading is served instead.
type LLMConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	GeminiAPIKey      string `mapstructure:"gemini_api_key" validate:"required_if=Enabled true"`
	ModelName         string `mapstructure:"model_name" validate:"required_if=Enabled true"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=60"`
}

// EngineConfig overrides the chart engine's weight table and strength band.
// A zero weight keeps the built-in default.
type EngineConfig struct {
	StemWeight      float64 `mapstructure:"stem_weight" validate:"gte=0"`
	BranchWeight    float64 `mapstructure:"branch_weight" validate:"gte=0"`
	YearWeight      float64 `mapstructure:"year_weight" validate:"gte=0"`
	MonthWeight     float64 `mapstructure:"month_weight" validate:"gte=0"`
	DayWeight       float64 `mapstructure:"day_weight" validate:"gte=0"`
	HourWeight      float64 `mapstructure:"hour_weight" validate:"gte=0"`
	WeakThreshold   float64 `mapstructure:"weak_threshold" validate:"gte=0,lte=100"`
	StrongThreshold float64 `mapstructure:"strong_threshold" validate:"gte=0,lte=100,gtefield=WeakThreshold"`
	// CacheSize bounds the number of memoized charts; zero disables the memo.
	CacheSize int `mapstructure:"cache_size" validate:"gte=0"`
}

// Params converts the engine section into validated engine parameters.
func (c EngineConfig) Params() (*bazi.Params, error) {
	return bazi.NewParams(bazi.ParamsConfig{
		StemWeight:      c.StemWeight,
		BranchWeight:    c.BranchWeight,
		YearWeight:      c.YearWeight,
		MonthWeight:     c.MonthWeight,
		DayWeight:       c.DayWeight,
		HourWeight:      c.HourWeight,
		WeakThreshold:   c.WeakThreshold,
		StrongThreshold: c.StrongThreshold,
	})
}
