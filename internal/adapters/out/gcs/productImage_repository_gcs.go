// internal/adapters/out/gcs/productImage_repository_gcs.go
package gcs

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iamcredentials/v1"

	"github.com/UDAY2232/LackLink/internal/domain/common"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
)

// DefaultUploadExpiry is the lifetime of a signed upload URL.
const DefaultUploadExpiry = 15 * time.Minute

var (
	ErrUnsupportedImageType = common.NewValidationError("content_type", "content type must be image/jpeg, image/png, image/webp or image/gif")
	ErrUploadNotConfigured  = fmt.Errorf("product image upload is not configured: %w", common.ErrRemoteFailure)
)

// UploadTarget is the product-domain upload target.
type UploadTarget = productdom.ImageUploadTarget

// ProductImageRepositoryGCS issues V4 signed PUT URLs for product images.
//
// Layout (single bucket):
//   - objectPath: products/{retailerId}/{objectId}/<fileName>
//
// Signing uses IAMCredentials SignBlob for SignerEmail, so no JSON private key is required.
// The runtime identity must be allowed to call iamcredentials.signBlob for that account.
type ProductImageRepositoryGCS struct {
	Client        *storage.Client
	Bucket        string
	SignerEmail   string
	PublicBaseURL string

	signBytes func(ctx context.Context) (func([]byte) ([]byte, error), error)
	now       func() time.Time
}

func NewProductImageRepositoryGCS(client *storage.Client, bucket, signerEmail string) *ProductImageRepositoryGCS {
	r := &ProductImageRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		SignerEmail:   strings.TrimSpace(signerEmail),
		PublicBaseURL: "https://storage.googleapis.com",
		now:           time.Now,
	}
	r.signBytes = r.iamSigner
	return r
}

// IssueUpload returns a signed upload URL for one product image of retailerID.
func (r *ProductImageRepositoryGCS) IssueUpload(ctx context.Context, retailerID, fileName, contentType string) (UploadTarget, error) {
	if r == nil || r.Bucket == "" || r.SignerEmail == "" {
		return UploadTarget{}, ErrUploadNotConfigured
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if _, ok := extensionByMIME[ct]; !ok {
		return UploadTarget{}, ErrUnsupportedImageType
	}

	obj := r.objectPath(retailerID, fileName, ct)

	sign, err := r.signBytes(ctx)
	if err != nil {
		return UploadTarget{}, common.Remote("gcs.signer", err)
	}

	exp := r.now().UTC().Add(DefaultUploadExpiry)
	u, err := storage.SignedURL(r.Bucket, obj, &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "PUT",
		GoogleAccessID: r.SignerEmail,
		SignBytes:      sign,
		ContentType:    ct,
		Expires:        exp,
	})
	if err != nil {
		return UploadTarget{}, common.Remote("gcs.signed_url", err)
	}

	return UploadTarget{
		UploadURL:   u,
		PublicURL:   r.PublicURL(obj),
		ObjectPath:  obj,
		ContentType: ct,
		ExpiresAt:   exp,
	}, nil
}

// PublicURL is the object URL for a bucket readable by allUsers.
func (r *ProductImageRepositoryGCS) PublicURL(objectPath string) string {
	base := strings.TrimRight(r.PublicBaseURL, "/")
	return base + "/" + r.Bucket + "/" + (&url.URL{Path: objectPath}).EscapedPath()
}

func (r *ProductImageRepositoryGCS) objectPath(retailerID, fileName, ct string) string {
	rid := sanitizePathSegment(retailerID)
	if rid == "" {
		rid = "_"
	}
	name := sanitizePathSegment(fileName)
	if name == "" {
		name = "image"
	}
	return "products/" + rid + "/" + newObjectID() + "/" + ensureExtensionByMIME(name, ct)
}

func (r *ProductImageRepositoryGCS) iamSigner(ctx context.Context) (func([]byte) ([]byte, error), error) {
	svc, err := iamcredentials.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("productImage_repository_gcs: iamcredentials init failed: %w", err)
	}
	name := fmt.Sprintf("projects/-/serviceAccounts/%s", r.SignerEmail)

	return func(b []byte) ([]byte, error) {
		resp, err := svc.Projects.ServiceAccounts.SignBlob(name, &iamcredentials.SignBlobRequest{
			Payload: base64.StdEncoding.EncodeToString(b),
		}).Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		if resp == nil || resp.SignedBlob == "" {
			return nil, errors.New("productImage_repository_gcs: empty signature")
		}
		return base64.StdEncoding.DecodeString(resp.SignedBlob)
	}, nil
}
