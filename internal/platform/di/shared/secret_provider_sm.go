// internal/platform/di/shared/secret_provider_sm.go
package shared

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	appcfg "github.com/UDAY2232/LackLink/internal/infra/config"
)

var errSecretProviderNotConfigured = errors.New("shared: secret provider not configured")

// SecretAccessor reads the payload of a fully qualified secret version name.
type SecretAccessor interface {
	Access(ctx context.Context, name string) (string, error)
}

// secretProviderSM is the Secret Manager accessor.
type secretProviderSM struct {
	sm *secretmanager.Client
}

func (p *secretProviderSM) Access(ctx context.Context, name string) (string, error) {
	if p == nil || p.sm == nil {
		return "", errSecretProviderNotConfigured
	}
	resp, err := p.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("secretProviderSM: AccessSecretVersion failed (%s): %w", name, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("secretProviderSM: empty payload (%s)", name)
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

// secretVersionName expands an sm:// reference.
//
//	sm://db-url                             → projects/<project>/secrets/db-url/versions/latest
//	sm://projects/p/secrets/s/versions/3    → as is
func secretVersionName(ref, projectID string) (string, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), appcfg.SecretPrefix)
	if ref == "" {
		return "", errors.New("empty secret reference")
	}
	if strings.HasPrefix(ref, "projects/") {
		return ref, nil
	}
	prj := strings.TrimSpace(projectID)
	if prj == "" {
		return "", errors.New("projectID is empty")
	}
	return "projects/" + prj + "/secrets/" + ref + "/versions/latest", nil
}

// hasSecretRefs reports whether any config value needs Secret Manager.
func hasSecretRefs(cfg *appcfg.Config) bool {
	for _, p := range cfg.SecretFields() {
		if strings.HasPrefix(*p, appcfg.SecretPrefix) {
			return true
		}
	}
	return false
}

// ResolveSecrets replaces every sm:// value in cfg with its payload.
// A value that cannot be resolved is cleared, which puts the dependent feature offline.
func ResolveSecrets(ctx context.Context, cfg *appcfg.Config, projectID string, acc SecretAccessor) {
	fields := cfg.SecretFields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		p := fields[key]
		if !strings.HasPrefix(*p, appcfg.SecretPrefix) {
			continue
		}
		name, err := secretVersionName(*p, projectID)
		if err == nil {
			var v string
			if acc == nil {
				err = errSecretProviderNotConfigured
			} else if v, err = acc.Access(ctx, name); err == nil {
				*p = v
				log.Printf("[shared.infra] %s resolved from Secret Manager", key)
				continue
			}
		}
		log.Printf("[shared.infra] WARN: %s secret unresolved: %v", key, err)
		*p = ""
	}
}
