package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// DefaultFolder is where article uploads land on the media host.
const DefaultFolder = "karyawan-articles"

// CloudinaryStore implements Store against the Cloudinary upload API.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
	folder string
}

type CloudinaryConfig struct {
	// URL is a cloudinary:// connection URL (api key, secret, cloud name).
	URL    string
	Folder string
}

func NewCloudinaryStore(cfg CloudinaryConfig) (*CloudinaryStore, error) {
	client, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	client.Config.URL.Secure = true

	folder := cfg.Folder
	if folder == "" {
		folder = DefaultFolder
	}

	return &CloudinaryStore{client: client, folder: folder}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, filename string, opts UploadOpts) (Upload, error) {
	folder := opts.Folder
	if folder == "" {
		folder = s.folder
	}
	resource := opts.Resource
	if resource == "" {
		resource = ResourceImage
	}

	res, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: string(resource),
	})
	if err != nil {
		return Upload{}, fmt.Errorf("failed to upload %s: %w", filename, err)
	}

	return Upload{
		URL:      res.SecureURL,
		PublicID: res.PublicID,
		Bytes:    int64(res.Bytes),
		Resource: resource,
	}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string, resource Resource) error {
	res, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(resource),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", publicID, err)
	}
	if res.Result != "ok" {
		return fmt.Errorf("media host refused deletion of %s: %s", publicID, res.Result)
	}
	return nil
}

var _ Store = (*CloudinaryStore)(nil)
