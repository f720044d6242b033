package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/simmerhub/backend/config"
)

// allowedImageExts is the upload extension whitelist.
var allowedImageExts = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// ImageService stores recipe images in S3, keyed by uploader and the
// sanitized original filename.
type ImageService struct {
	s3Config *config.S3Config
}

func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// Upload stores image data and returns the object key to persist on the
// recipe. Files with an unexpected extension are rejected.
func (s *ImageService) Upload(ctx context.Context, userID uuid.UUID, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedImageExts[ext]
	if !ok {
		return "", ErrUnsupportedImage
	}

	key := fmt.Sprintf("recipe-images/%s_%s", userID, sanitizeFilename(filename))

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	log.Printf("Uploaded recipe image %s", key)
	return key, nil
}

// Delete removes a stored image. Callers treat failures as best-effort.
func (s *ImageService) Delete(ctx context.Context, key string) error {
	_, err := s.s3Config.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", key, err)
	}
	return nil
}

// URL returns the public URL for a stored object key.
func (s *ImageService) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
}

// sanitizeFilename strips path components and anything outside a safe
// character set.
func sanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	return unsafeFilenameChars.ReplaceAllString(base, "")
}
