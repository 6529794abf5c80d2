package storage

import (
	"context"
	"io"
)

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// S3PublicBaseURL is the prefix under which uploaded objects are publicly
	// reachable; the upload result URL is this prefix plus the object key.
	S3PublicBaseURL string
}

// StorageService defines the public interface for the image storage service.
type StorageService interface {
	// Upload stores the object under the given key and returns its public URL.
	Upload(ctx context.Context, key string, mimeType string, body io.Reader) (string, error)
}

// NewStorageService is the factory function for StorageService.
// It initializes and returns a concrete implementation based on the provided configuration.
func NewStorageService(cfg ServiceConfig) (StorageService, error) {
	// Currently, only S3 compatible implementations are supported.
	return newS3Client(cfg)
}
