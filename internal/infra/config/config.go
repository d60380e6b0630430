// internal/infra/config/config.go
package config

import (
	"os"
	"strings"
	"time"
)

// SecretPrefix marks a value that must be resolved through Secret Manager.
// Format: sm://<secret-id> or sm://projects/<p>/secrets/<id>/versions/<v>
const SecretPrefix = "sm://"

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port string

	// DATA_STORE_URL: postgres://... | firestore://<project> | empty (offline memory store)
	DataStoreURL string

	// Identity provider public API key. Empty ⇒ offline identity provider.
	AuthAPIKey        string
	FirebaseProjectID string
	GCPCreds          string

	// SeedFile is the YAML catalog loaded into the in-memory store. Empty ⇒ embedded catalog.
	SeedFile string

	ProductImageBucket string
	GCSSignerEmail     string

	SendGridAPIKey string
	MailFrom       string

	RedisURL     string
	OTLPEndpoint string

	SessionIdleTTL time.Duration
	RemoteTimeout  time.Duration

	AllowedOrigins []string
}

// Load は環境変数を読み込み Config を返します。
func Load() *Config {
	return &Config{
		Port:               getenvDefault("PORT", "8080"),
		DataStoreURL:       strings.TrimSpace(os.Getenv("DATA_STORE_URL")),
		AuthAPIKey:         strings.TrimSpace(os.Getenv("AUTH_API_KEY")),
		FirebaseProjectID:  getenvDefault("FIREBASE_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		GCPCreds:           os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		SeedFile:           strings.TrimSpace(os.Getenv("SEED_FILE")),
		ProductImageBucket: strings.TrimSpace(os.Getenv("PRODUCT_IMAGE_BUCKET")),
		GCSSignerEmail:     strings.TrimSpace(os.Getenv("GCS_SIGNER_EMAIL")),
		SendGridAPIKey:     strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")),
		MailFrom:           getenvDefault("MAIL_FROM", "orders@lacklink.example"),
		RedisURL:           strings.TrimSpace(os.Getenv("REDIS_URL")),
		OTLPEndpoint:       strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		SessionIdleTTL:     getenvDuration("SESSION_IDLE_TTL", 30*time.Minute),
		RemoteTimeout:      getenvDuration("REMOTE_TIMEOUT", 10*time.Second),
		AllowedOrigins:     splitCSV(getenvDefault("ALLOWED_ORIGINS", "http://localhost:5173")),
	}
}

// Offline reports whether either connection parameter is missing.
func (c *Config) Offline() bool {
	return c.DataStoreURL == "" || c.AuthAPIKey == ""
}

// SecretFields returns the values that may carry an sm:// reference.
func (c *Config) SecretFields() map[string]*string {
	return map[string]*string{
		"DATA_STORE_URL":   &c.DataStoreURL,
		"AUTH_API_KEY":     &c.AuthAPIKey,
		"SENDGRID_API_KEY": &c.SendGridAPIKey,
		"REDIS_URL":        &c.RedisURL,
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
