package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"siaga-bencana/internal/config"
)

var (
	ErrStorageUnavailable = errors.New("media storage is not configured")
	ErrUnsupportedType    = errors.New("unsupported image type")
)

const maxImageSize = 10 << 20 // 10 MiB

type Service interface {
	UploadDisasterImage(ctx context.Context, disasterID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)
}

type service struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

// UploadDisasterImage stores the image under the report's id and returns the
// public URL to record on the report.
func (s *service) UploadDisasterImage(ctx context.Context, disasterID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	if s.minioClient == nil {
		return "", ErrStorageUnavailable
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", ErrUnsupportedType
	}
	if fileSize > maxImageSize {
		return "", fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}

	storagePath := fmt.Sprintf("disasters/%s/%s-%s", disasterID, time.Now().Format("20060102150405"), sanitize(fileName))

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return s.publicURL(storagePath), nil
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}

func sanitize(fileName string) string {
	fileName = strings.ReplaceAll(fileName, "/", "_")
	return strings.ReplaceAll(fileName, "\\", "_")
}
