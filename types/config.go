package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	Config    string          `mapstructure:"config"`
	Project   ProjectConfig   `mapstructure:"project" validate:"required"`
	Data      DataConfig      `mapstructure:"data" validate:"required"`
	Generator GeneratorConfig `mapstructure:"generator" validate:"omitempty"`
	Server    ServerConfig    `mapstructure:"server" validate:"omitempty"`
}

// ProjectConfig holds project-related settings.
type ProjectConfig struct {
	RootDir  string `mapstructure:"rootDir" validate:"required"`
	GoalsDir string `mapstructure:"goalsDir"`
}

// DataConfig holds data storage configuration.
type DataConfig struct {
	File   string `mapstructure:"file" validate:"required"`
	Format string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// GeneratorConfig holds configuration for the remote task-generation
// service. When BaseURL is empty the service is disabled and goal
// creation uses the local stage template directly.
type GeneratorConfig struct {
	BaseURL string `mapstructure:"baseURL" validate:"omitempty,url"`
	// RequestTimeoutSeconds controls the HTTP client timeout for generation calls.
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=1,max=600"`
	// MaxRetries controls how many attempts are made before falling back
	// to the local template.
	MaxRetries int `mapstructure:"maxRetries" validate:"omitempty,min=1,max=10"`
	// BaseDelayMillis is the first backoff delay; it doubles per attempt.
	BaseDelayMillis int `mapstructure:"baseDelayMillis" validate:"omitempty,min=1"`
}

// ServerConfig holds settings for the embedded HTTP API.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}
