package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all application configuration.
type Config struct {
	Server    Server    `yaml:"server"`
	Scraper   Scraper   `yaml:"scraper"`
	Sentiment Sentiment `yaml:"sentiment"`
	Cache     Cache     `yaml:"cache"`
	OpenAI    OpenAI    `yaml:"openai"`
}

// Server holds HTTP server configuration.
type Server struct {
	Host         string        `yaml:"host" env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"SERVER_PORT" env-default:"8000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"60s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

// Address returns the full server address.
func (s Server) Address() string {
	return s.Host + ":" + s.Port
}

// Scraper selects and configures the post scraping backend.
type Scraper struct {
	NitterBaseURL  string        `yaml:"nitter_base_url" env:"NITTER_BASE_URL" env-default:"https://nitter.net"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SCRAPER_REQUEST_TIMEOUT" env-default:"30s"`
	XClientID      string        `yaml:"x_client_id" env:"X_CLIENT_ID"`
	XClientSecret  string        `yaml:"x_client_secret" env:"X_CLIENT_SECRET"`
	XAuthURL       string        `yaml:"x_auth_url" env:"X_AUTH_URL" env-default:"https://api.twitter.com/oauth2/token"`
	XSearchURL     string        `yaml:"x_search_url" env:"X_SEARCH_URL" env-default:"https://api.twitter.com/2/tweets/search/recent"`
}

// UseXAPI reports whether X API credentials are configured.
func (s Scraper) UseXAPI() bool {
	return s.XClientID != "" && s.XClientSecret != ""
}

// Sentiment selects the scoring backend.
type Sentiment struct {
	// Backend is "vader" or "openai". An openai selection without an API
	// key silently falls back to vader.
	Backend string `yaml:"backend" env:"SENTIMENT_BACKEND" env-default:"vader"`
}

// Cache configures the analysis response cache.
type Cache struct {
	TTL           time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"1h"`
	ValkeyAddress string        `yaml:"valkey_address" env:"VALKEY_INIT_ADDRESS"`
	ValkeyPass    string        `yaml:"valkey_password" env:"VALKEY_PASSWORD"`
	ValkeyTLS     bool          `yaml:"valkey_tls" env:"VALKEY_TLS" env-default:"false"`
}

// OpenAI holds the optional LLM credential.
type OpenAI struct {
	APIKey string `yaml:"api_key" env:"OPENAI_API_KEY"`
}

// MustLoad reads configuration from the environment and exits the process
// on error.
func MustLoad() Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
