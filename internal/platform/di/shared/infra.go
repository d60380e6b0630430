// internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"errors"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/go-redis/redis/v8"
	"google.golang.org/api/option"

	appcfg "github.com/UDAY2232/LackLink/internal/infra/config"
)

// Infra is shared runtime infrastructure for DI.
//   - owns external clients (DataStore/FirebaseAuth/GCS/SecretManager/Redis)
//   - owns config-resolved runtime settings
//
// Every client is best-effort: a missing or failing dependency is logged as WARN
// and the dependent feature runs in offline mode instead of failing the boot.
type Infra struct {
	Config    *appcfg.Config
	ProjectID string
	Settings  RuntimeSettings

	// Store is never nil; it falls back to the in-memory variant.
	Store DataStore

	// Clients (owned; Close-managed). Any of them may be nil.
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client
	Redis         *redis.Client

	// ClientOptions are shared by every Google client.
	ClientOptions []option.ClientOption

	// StoreOffline is true when DATA_STORE_URL was missing or unusable.
	StoreOffline bool
}

// NewInfra initializes shared infra.
func NewInfra(ctx context.Context) (*Infra, error) {
	return NewInfraFromConfig(ctx, appcfg.Load())
}

func NewInfraFromConfig(ctx context.Context, cfg *appcfg.Config) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}

	inf := &Infra{
		Config:    cfg,
		ProjectID: strings.TrimSpace(cfg.FirebaseProjectID),
	}

	// Credentials file (optional; mainly for local dev)
	if credFile := strings.TrimSpace(cfg.GCPCreds); credFile != "" {
		inf.ClientOptions = append(inf.ClientOptions, option.WithCredentialsFile(credFile))
		log.Printf("[shared.infra] Using credentials file for GCP clients: %s", redactPath(credFile))
	}

	// 1) Secret Manager, only when some value references it
	if hasSecretRefs(cfg) {
		sm, err := secretmanager.NewClient(ctx, inf.ClientOptions...)
		if err != nil {
			log.Printf("[shared.infra] WARN: secretmanager.NewClient failed: %v (sm:// values will be cleared)", err)
			ResolveSecrets(ctx, cfg, inf.ProjectID, nil)
		} else {
			inf.SecretManager = sm
			ResolveSecrets(ctx, cfg, inf.ProjectID, &secretProviderSM{sm: sm})
		}
	}

	// 2) Runtime settings
	settings, warns, err := ResolveRuntimeSettings(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range warns {
		log.Printf("[shared.infra] WARN: %s", w)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	inf.Settings = settings

	// 3) DataStore (falls back to memory)
	inf.Store, inf.StoreOffline = openStoreWithFallback(ctx, cfg, inf.ProjectID)

	// 4) Firebase App/Auth, only with an identity provider API key
	if cfg.AuthAPIKey != "" {
		fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: inf.ProjectID}, inf.ClientOptions...)
		if err != nil {
			log.Printf("[shared.infra] WARN: firebase app init failed: %v", err)
		} else {
			inf.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[shared.infra] WARN: firebase auth init failed: %v", err)
			} else {
				inf.FirebaseAuth = authClient
				log.Printf("[shared.infra] Firebase Auth initialized")
			}
		}
	} else {
		log.Printf("[shared.infra] WARN: AUTH_API_KEY is empty (offline identity provider)")
	}

	// 5) GCS, only when a product image bucket is configured
	if settings.ProductImageBucket != "" {
		gcsClient, err := storage.NewClient(ctx, inf.ClientOptions...)
		if err != nil {
			log.Printf("[shared.infra] WARN: storage.NewClient failed: %v", err)
		} else {
			inf.GCS = gcsClient
			log.Printf("[shared.infra] GCS storage client initialized bucket=%s", settings.ProductImageBucket)
		}
	}

	// 6) Redis checkout guard backend
	if cfg.RedisURL != "" {
		inf.Redis = openRedis(ctx, cfg.RedisURL)
	}

	return inf, nil
}

// Offline reports whether the service runs without a live store or identity provider.
func (i *Infra) Offline() bool {
	return i == nil || i.StoreOffline || i.FirebaseAuth == nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Store != nil {
		_ = i.Store.Close()
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	return nil
}

func openStoreWithFallback(ctx context.Context, cfg *appcfg.Config, projectID string) (DataStore, bool) {
	if cfg.DataStoreURL != "" {
		st, err := OpenDataStore(ctx, cfg.DataStoreURL, cfg.SeedFile, projectID, cfg.GCPCreds)
		if err == nil {
			log.Printf("[shared.infra] DataStore connected mode=%s", st.Mode())
			return st, false
		}
		log.Printf("[shared.infra] WARN: DataStore open failed: %v (falling back to offline memory store)", err)
	} else {
		log.Printf("[shared.infra] WARN: DATA_STORE_URL is empty (offline memory store)")
	}

	st, err := OpenMemoryStore(cfg.SeedFile)
	if err != nil {
		log.Printf("[shared.infra] WARN: %v (starting with an empty catalog)", err)
		st, _ = OpenMemoryStore("")
	}
	return st, true
}

func openRedis(ctx context.Context, rawURL string) *redis.Client {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		log.Printf("[shared.infra] WARN: invalid REDIS_URL: %v (in-process checkout guard)", err)
		return nil
	}
	cli := redis.NewClient(opts)
	if err := cli.Ping(ctx).Err(); err != nil {
		log.Printf("[shared.infra] WARN: redis ping failed: %v (in-process checkout guard)", err)
		_ = cli.Close()
		return nil
	}
	log.Printf("[shared.infra] Redis connected addr=%s", opts.Addr)
	return cli
}

func redactPath(p string) string {
	// Do not log full path; keep only the last segment
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if p == "" {
		return ""
	}
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***/" + last
}
