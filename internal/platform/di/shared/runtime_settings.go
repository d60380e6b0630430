// internal/platform/di/shared/runtime_settings.go
package shared

import (
	"errors"
	"strings"
	"time"

	appcfg "github.com/UDAY2232/LackLink/internal/infra/config"
)

// RuntimeSettings is config-resolved runtime settings (normalized once).
// It contains only values, no external clients.
type RuntimeSettings struct {
	// Product images (signed upload URLs)
	ProductImageBucket string
	GCSSignerEmail     string

	// Order confirmation mail
	MailFrom string

	SessionIdleTTL time.Duration
	RemoteTimeout  time.Duration
	AllowedOrigins []string
}

// ResolveRuntimeSettings normalizes settings from cfg.
// It is side-effect free; warnings are returned so the caller decides how to surface them.
func ResolveRuntimeSettings(cfg *appcfg.Config) (RuntimeSettings, []string, error) {
	if cfg == nil {
		return RuntimeSettings{}, nil, errors.New("shared.runtime_settings: cfg is nil")
	}

	var warns []string
	s := RuntimeSettings{
		ProductImageBucket: strings.TrimSpace(cfg.ProductImageBucket),
		GCSSignerEmail:     strings.TrimSpace(cfg.GCSSignerEmail),
		MailFrom:           strings.TrimSpace(cfg.MailFrom),
		SessionIdleTTL:     cfg.SessionIdleTTL,
		RemoteTimeout:      cfg.RemoteTimeout,
	}
	for _, o := range cfg.AllowedOrigins {
		s.AllowedOrigins = append(s.AllowedOrigins, strings.TrimRight(strings.TrimSpace(o), "/"))
	}

	if s.ProductImageBucket == "" {
		warns = append(warns, "PRODUCT_IMAGE_BUCKET is empty (product image upload disabled)")
	} else if s.GCSSignerEmail == "" {
		warns = append(warns, "GCS_SIGNER_EMAIL is empty (signing falls back to the client credentials)")
	}
	if strings.TrimSpace(cfg.SendGridAPIKey) == "" {
		warns = append(warns, "SENDGRID_API_KEY is empty (order confirmation mail disabled)")
	}
	if s.SessionIdleTTL <= 0 {
		s.SessionIdleTTL = 30 * time.Minute
	}
	if s.RemoteTimeout <= 0 {
		s.RemoteTimeout = 10 * time.Second
	}

	return s, warns, nil
}
