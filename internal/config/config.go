package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds every environment-driven setting of the BeCopy API.
type Config struct {
	HTTPAddr           string        `env:"HTTP_ADDR"            envDefault:":8080"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT"     envDefault:"30s"`

	Mongo  MongoConfig
	Token  TokenConfig
	OAuth  OAuthConfig
	TalkJS TalkJSConfig
	OpenAI OpenAIConfig
	Geo    GeoConfig

	// AdminSecretKey gates admin registration; a request carrying any other
	// value is rejected regardless of field validity.
	AdminSecretKey string `env:"ADMIN_SECRET_KEY"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI      string `env:"MONGODB_URI"      envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGODB_DATABASE" envDefault:"becopy"`
}

// TokenConfig holds JWT and verification code lifetimes.
type TokenConfig struct {
	Secret            string        `env:"JWT_SECRET"`
	Issuer            string        `env:"JWT_ISSUER"          envDefault:"becopy"`
	AccessTokenTTL    time.Duration `env:"ACCESS_TOKEN_TTL"    envDefault:"24h"`
	OTPCodeTTL        time.Duration `env:"OTP_CODE_TTL"        envDefault:"10m"`
	ResetCodeTTL      time.Duration `env:"RESET_CODE_TTL"      envDefault:"15m"`
	AuthFlowTTL       time.Duration `env:"AUTH_FLOW_TTL"       envDefault:"30m"`
	MaxVerifyAttempts int           `env:"MAX_VERIFY_ATTEMPTS" envDefault:"5"`
}

// OAuthConfig holds the credentials of the external identity providers.
type OAuthConfig struct {
	GoogleClientID       string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret   string `env:"GOOGLE_CLIENT_SECRET"`
	LinkedInClientID     string `env:"LINKEDIN_CLIENT_ID"`
	LinkedInClientSecret string `env:"LINKEDIN_CLIENT_SECRET"`
}

// TalkJSConfig holds the chat provider credentials.
type TalkJSConfig struct {
	AppID     string `env:"TALKJS_APP_ID"`
	SecretKey string `env:"TALKJS_SECRET_KEY"`
}

// OpenAIConfig holds the settings of the code-conversion proxy.
type OpenAIConfig struct {
	APIKey  string        `env:"OPENAI_API_KEY"`
	BaseURL string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	Model   string        `env:"OPENAI_MODEL"    envDefault:"gpt-3.5-turbo"`
	Timeout time.Duration `env:"OPENAI_TIMEOUT"  envDefault:"60s"`
}

// GeoConfig holds location resolution settings.
type GeoConfig struct {
	DefaultRadiusKM float64       `env:"GEO_DEFAULT_RADIUS_KM" envDefault:"250"`
	RequestTimeout  time.Duration `env:"GEO_REQUEST_TIMEOUT"   envDefault:"5s"`
}

// Load parses the configuration from environment variables and validates it.
func Load(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate configuration")
	}

	return &cfg
}

// validate checks that the secrets the service cannot run without are set.
func (c *Config) validate() error {
	if c.Token.Secret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.AdminSecretKey == "" {
		return fmt.Errorf("missing ADMIN_SECRET_KEY environment variable")
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("missing MONGODB_URI environment variable")
	}

	return nil
}
