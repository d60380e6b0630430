package product

import (
	"context"
	"time"
)

// ImageUploadTarget is what a browser needs to PUT an image and then reference it on a product.
type ImageUploadTarget struct {
	UploadURL   string    `json:"upload_url"`
	PublicURL   string    `json:"public_url"`
	ObjectPath  string    `json:"object_path"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ImageUploader issues direct-upload URLs for product images.
type ImageUploader interface {
	IssueUpload(ctx context.Context, retailerID, fileName, contentType string) (ImageUploadTarget, error)
}
