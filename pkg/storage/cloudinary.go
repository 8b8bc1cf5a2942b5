package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"retail-leasing/pkg/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type cloudinaryService struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiSecret string
}

func NewCloudinary(config utils.StorageConfig) (Service, error) {
	if config.CloudName == "" || config.APIKey == "" || config.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(config.CloudName, config.APIKey, config.APISecret)
	if err != nil {
		return nil, fmt.Errorf("initialize cloudinary: %w", err)
	}

	return &cloudinaryService{
		cld:       cld,
		cloudName: config.CloudName,
		apiSecret: config.APISecret,
	}, nil
}

func (s *cloudinaryService) Upload(ctx context.Context, localFilePath, folder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return "", fmt.Errorf("upload document: %w", err)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("upload document: no public ID returned")
	}
	return result.PublicID, nil
}

// SignedURL builds an authenticated delivery URL signed with SHA-1 over the
// expiry and document key.
func (s *cloudinaryService) SignedURL(ctx context.Context, documentKey string, expires time.Duration) (string, error) {
	expiresAt := time.Now().Add(expires).Unix()
	stringToSign := fmt.Sprintf("expires_at=%d&public_id=%s%s", expiresAt, documentKey, s.apiSecret)
	signature := computeSHA1(stringToSign)
	url := fmt.Sprintf("https://res.cloudinary.com/%s/image/authenticated/s--%s--/expires_%d/%s",
		s.cloudName, signature, expiresAt, documentKey)
	return url, nil
}

func (s *cloudinaryService) Delete(ctx context.Context, documentKey string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: documentKey})
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func computeSHA1(input string) string {
	h := sha1.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}
