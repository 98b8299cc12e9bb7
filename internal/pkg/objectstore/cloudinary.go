package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore uploads images to Cloudinary. The tree path doubles as
// the public ID (minus extension), so a second upload to the same path
// overwrites the first, which is what the edit flow relies on.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are required")
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	if folder == "" {
		folder = "servepupil"
	}

	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStore) publicID(path string) string {
	path = strings.TrimSuffix(path, ".jpg")
	return s.folder + "/" + strings.Trim(path, "/")
}

func (s *CloudinaryStore) Upload(ctx context.Context, path string, content io.Reader) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, content, uploader.UploadParams{
		PublicID:     s.publicID(path),
		ResourceType: "image",
		Overwrite:    api.Bool(true),
		Invalidate:   api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return result.SecureURL, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, path string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     s.publicID(path),
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

var _ Store = (*CloudinaryStore)(nil)
