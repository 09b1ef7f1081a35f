package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	CORS    CORSConfig
	Auth    AuthConfig
	Upload  UploadConfig
	Log     LogConfig
	Mail    MailConfig
	GinMode string `env:"GIN_MODE" env-default:"release"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `env:"SERVER_PORT"             env-default:"8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// MongoConfig holds the document store connection settings.
type MongoConfig struct {
	URI       string        `env:"MONGODB_URI"      env-required:"true"`
	Database  string        `env:"MONGODB_DATABASE" env-required:"true"`
	DBTimeout time.Duration `env:"DB_TIMEOUT"       env-default:"5s"`
}

// CORSConfig holds the allowed frontends (public site and admin UI).
type CORSConfig struct {
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000,http://localhost:3001"`
}

// Origins splits AllowedOrigins on commas.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// AuthConfig holds token and admin credential settings.
type AuthConfig struct {
	JWTSecret         string        `env:"JWT_SECRET"          env-required:"true"`
	JWTIssuer         string        `env:"JWT_ISSUER"          env-default:"product-catalog"`
	TokenTTL          time.Duration `env:"JWT_TTL"             env-default:"24h"`
	AdminUsername     string        `env:"ADMIN_USERNAME"      env-default:"admin"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH" env-required:"true"`
	// CookieSecure marks the admin cookie Secure; enable behind HTTPS.
	CookieSecure bool `env:"COOKIE_SECURE" env-default:"false"`
}

// UploadConfig controls where product/category images are stored.
type UploadConfig struct {
	Dir      string `env:"UPLOAD_DIR"       env-default:"./uploads"`
	MaxBytes int64  `env:"UPLOAD_MAX_BYTES" env-default:"5242880"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
	Output string `env:"LOG_OUTPUT" env-default:"stdout"`
	File   string `env:"LOG_FILE"   env-default:"./logs/app.log"`
}

// MailConfig configures the new-contact notification. Empty Host disables it.
type MailConfig struct {
	Host        string `env:"SMTP_HOST"`
	Port        int    `env:"SMTP_PORT"     env-default:"587"`
	Username    string `env:"SMTP_USERNAME"`
	Password    string `env:"SMTP_PASSWORD"`
	From        string `env:"SMTP_FROM"`
	NotifyEmail string `env:"NOTIFY_EMAIL"`
}

// Enabled reports whether enough settings are present to send mail.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.From != "" && m.NotifyEmail != ""
}

// Load reads an optional .env file and then the process environment.
// Priority: ENV > .env > defaults (via env-default tags).
func Load(envFiles ...string) (*Config, error) {
	// A missing .env is fine: production relies on real environment variables.
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks constraints that tags cannot express.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.Mongo.DBTimeout <= 0 {
		errs = append(errs, errors.New("DB_TIMEOUT must be positive"))
	}
	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}
	switch c.Log.Output {
	case "stdout", "file", "both":
	default:
		errs = append(errs, fmt.Errorf("LOG_OUTPUT must be stdout, file or both, got %q", c.Log.Output))
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode))
	}
	return errors.Join(errs...)
}
