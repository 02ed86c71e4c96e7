package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix = "TUBEDECK"

	defaultHTTPAddress       = "0.0.0.0:8090"
	defaultYouTubeBaseURL    = "https://www.googleapis.com/youtube/v3"
	defaultProxyEndpoint     = "http://127.0.0.1:8090/api/youtube-proxy"
	defaultDatabasePath      = "tubedeck.db"
	defaultSessionIssuer     = "tubedeck-auth"
	defaultSessionAudience   = "tubedeck-dashboard"
	defaultSessionTTLMinutes = 720
	defaultGoogleJWKSURL     = "https://www.googleapis.com/oauth2/v3/certs"
	defaultLogLevel          = "info"
)

// AppConfig captures runtime configuration for the proxy server and the
// dashboard CLI. The YouTube API key is deliberately optional: its absence is
// surfaced per proxied request, not at startup.
type AppConfig struct {
	HTTPAddress          string
	YouTubeAPIKey        string
	YouTubeBaseURL       string
	ProxyEndpoint        string
	ProxyAnonKey         string
	DatabasePath         string
	VideoID              string
	SessionToken         string
	SessionSigningSecret string
	SessionIssuer        string
	SessionAudience      string
	SessionTTL           time.Duration
	GoogleClientID       string
	GoogleJWKSURL        string
	LogLevel             string
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("http.address", defaultHTTPAddress)
	configViper.SetDefault("youtube.base_url", defaultYouTubeBaseURL)
	configViper.SetDefault("proxy.endpoint", defaultProxyEndpoint)
	configViper.SetDefault("database.path", defaultDatabasePath)
	configViper.SetDefault("session.issuer", defaultSessionIssuer)
	configViper.SetDefault("session.audience", defaultSessionAudience)
	configViper.SetDefault("session.ttl_minutes", defaultSessionTTLMinutes)
	configViper.SetDefault("google.jwks_url", defaultGoogleJWKSURL)
	configViper.SetDefault("log.level", defaultLogLevel)
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddress:          configViper.GetString("http.address"),
		YouTubeAPIKey:        configViper.GetString("youtube.api_key"),
		YouTubeBaseURL:       configViper.GetString("youtube.base_url"),
		ProxyEndpoint:        configViper.GetString("proxy.endpoint"),
		ProxyAnonKey:         configViper.GetString("proxy.anon_key"),
		DatabasePath:         configViper.GetString("database.path"),
		VideoID:              configViper.GetString("video.id"),
		SessionToken:         configViper.GetString("session.token"),
		SessionSigningSecret: configViper.GetString("session.signing_secret"),
		SessionIssuer:        configViper.GetString("session.issuer"),
		SessionAudience:      configViper.GetString("session.audience"),
		SessionTTL:           time.Duration(configViper.GetInt("session.ttl_minutes")) * time.Minute,
		GoogleClientID:       configViper.GetString("google.client_id"),
		GoogleJWKSURL:        configViper.GetString("google.jwks_url"),
		LogLevel:             configViper.GetString("log.level"),
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	if strings.TrimSpace(c.HTTPAddress) == "" {
		return fmt.Errorf("http.address is required")
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session.ttl_minutes must be positive")
	}
	return nil
}
