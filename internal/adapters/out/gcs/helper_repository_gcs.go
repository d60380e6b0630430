// internal/adapters/out/gcs/helper_repository_gcs.go
package gcs

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// sanitizePathSegment normalizes a path segment for GCS object paths.
// - removes separators
// - trims dots/spaces
func sanitizePathSegment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "/", "_")
	return strings.Trim(s, ". ")
}

// extensionByMIME maps the accepted image types.
var extensionByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ensureExtensionByMIME appends an extension based on MIME when fileName has no extension.
func ensureExtensionByMIME(fileName string, mime string) string {
	if strings.Contains(path.Base(strings.ToLower(strings.TrimSpace(fileName))), ".") {
		return fileName
	}
	return fileName + extensionByMIME[strings.ToLower(strings.TrimSpace(mime))]
}

// newObjectID generates the unique part of an object path.
func newObjectID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
