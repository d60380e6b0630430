// internal/platform/di/shared/runtime_settings_validate.go
package shared

import (
	"fmt"
	"strings"
)

// Validate fails fast for values that would cause undefined behavior,
// while allowing optional features to stay disabled when settings are empty.
func (s RuntimeSettings) Validate() error {
	if strings.ContainsAny(s.ProductImageBucket, " \t\r\n/") {
		return fmt.Errorf("shared.runtime_settings: ProductImageBucket is not a bucket name (got %q)", s.ProductImageBucket)
	}
	if e := s.GCSSignerEmail; e != "" && !strings.Contains(e, "@") {
		return fmt.Errorf("shared.runtime_settings: GCSSignerEmail must be a service account email (got %q)", e)
	}
	if e := s.MailFrom; e != "" && !strings.Contains(e, "@") {
		return fmt.Errorf("shared.runtime_settings: MailFrom must be an email address (got %q)", e)
	}
	for _, o := range s.AllowedOrigins {
		if o == "*" {
			continue
		}
		if !(strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://")) {
			return fmt.Errorf("shared.runtime_settings: origin must start with http:// or https:// (got %q)", o)
		}
		rest := o[strings.Index(o, "://")+3:]
		if strings.Contains(rest, "/") {
			return fmt.Errorf("shared.runtime_settings: origin must not include a path (got %q)", o)
		}
	}
	if s.RemoteTimeout <= 0 || s.SessionIdleTTL <= 0 {
		return fmt.Errorf("shared.runtime_settings: timeouts must be positive")
	}
	return nil
}
