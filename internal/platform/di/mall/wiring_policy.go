// internal/platform/di/mall/wiring_policy.go
package mall

import (
	"context"
	"log"
	"time"

	"github.com/UDAY2232/LackLink/internal/adapters/out/gcs"
	"github.com/UDAY2232/LackLink/internal/adapters/out/identity"
	"github.com/UDAY2232/LackLink/internal/adapters/out/mail"
	outredis "github.com/UDAY2232/LackLink/internal/adapters/out/redis"
	usecase "github.com/UDAY2232/LackLink/internal/application/usecase"
	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	shared "github.com/UDAY2232/LackLink/internal/platform/di/shared"
)

// wiring_policy.go decides which optional dependencies are enabled from the
// infra that came up. Every builder degrades to an offline variant instead of failing.

// checkoutGuardTTL bounds a crashed holder's lock.
const checkoutGuardTTL = 2 * time.Minute

// buildIdentityProvider uses Firebase when both the admin client and the API key are present.
func buildIdentityProvider(ctx context.Context, infra *shared.Infra) (authdom.Provider, bool) {
	if infra.FirebaseAuth != nil && infra.Config.AuthAPIKey != "" {
		p, err := identity.NewFirebaseProvider(ctx, infra.FirebaseAuth, infra.Config.AuthAPIKey)
		if err == nil {
			return p, true
		}
		log.Printf("[di.mall] WARN: firebase identity provider init failed: %v (offline provider)", err)
	}
	return identity.NewOfflineProvider(), false
}

func buildCheckoutGuard(infra *shared.Infra) usecase.CheckoutGuard {
	if infra.Redis != nil {
		return outredis.NewGuard(infra.Redis, checkoutGuardTTL)
	}
	log.Printf("[di.mall] checkout guard is in-process (REDIS_URL unset or unreachable)")
	return outredis.NewLocalGuard()
}

// buildOrderMailer returns a nil interface (not a typed nil) when mail is disabled.
func buildOrderMailer(infra *shared.Infra) usecase.OrderNotifier {
	m := mail.NewOrderMailerWithSendGrid(infra.Config.SendGridAPIKey, infra.Settings.MailFrom)
	if m == nil {
		return nil
	}
	return m
}

// buildImageUploader returns a nil interface when GCS is not configured.
func buildImageUploader(infra *shared.Infra) productdom.ImageUploader {
	if infra.GCS == nil || infra.Settings.ProductImageBucket == "" {
		return nil
	}
	return gcs.NewProductImageRepositoryGCS(infra.GCS, infra.Settings.ProductImageBucket, infra.Settings.GCSSignerEmail)
}
