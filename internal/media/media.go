// Package media wraps the remote media host: uploads, deletions by public
// id, and extraction of embedded media references from article HTML.
package media

import (
	"context"
	"io"
	"strings"
)

// Resource is the media host's resource type discriminator.
type Resource string

const (
	ResourceImage Resource = "image"
	ResourceVideo Resource = "video"
)

// videoExtensions are the file extensions treated as video when no explicit
// flag is supplied.
var videoExtensions = []string{".mp4", ".mov", ".avi", ".webm", ".mkv"}

// ResourceType resolves the resource type of a URL. An explicit flag wins;
// otherwise the URL's extension decides, defaulting to image.
func ResourceType(url string, isVideo *bool) Resource {
	if isVideo != nil {
		if *isVideo {
			return ResourceVideo
		}
		return ResourceImage
	}

	lower := strings.ToLower(url)
	for _, ext := range videoExtensions {
		if strings.Contains(lower, ext) {
			return ResourceVideo
		}
	}
	return ResourceImage
}

// UploadOpts parameterizes an upload.
type UploadOpts struct {
	Folder   string
	Resource Resource
}

// Upload is the result of a successful upload.
type Upload struct {
	URL      string
	PublicID string
	Bytes    int64
	Resource Resource
}

// DeleteResult pairs a deletion attempt with its outcome so callers can log
// best-effort failures explicitly instead of silently dropping them.
type DeleteResult struct {
	PublicID string
	Resource Resource
	Err      error
}

// Store is the remote media host. Delete is attempted exactly once; callers
// decide what a failure means.
type Store interface {
	Upload(ctx context.Context, file io.Reader, filename string, opts UploadOpts) (Upload, error)
	Delete(ctx context.Context, publicID string, resource Resource) error
}
