package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedMedia is returned when an upload is not a PDF. The gate
// runs before any bytes are persisted.
var ErrUnsupportedMedia = errors.New("only PDF attachments are allowed")

const pdfMimeType = "application/pdf"

// Storage interface for attachment storage operations
type Storage interface {
	// Upload stores an attachment under a generated unique name and
	// returns that name
	Upload(ctx context.Context, fileID uuid.UUID, filename string, data io.Reader) (string, error)

	// Download retrieves an attachment by stored name
	Download(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete removes an attachment by stored name. Deleting a name that
	// does not resolve to an existing file is not an error.
	Delete(ctx context.Context, name string) error
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal:
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewStorageFromEnv creates a storage instance from environment variables
func NewStorageFromEnv() (Storage, error) {
	storageType := os.Getenv("STORAGE_TYPE")
	if storageType == "" {
		storageType = "local" // Default to local for development
	}

	switch StorageType(storageType) {
	case StorageTypeLocal:
		localPath := os.Getenv("STORAGE_LOCAL_PATH")
		if localPath == "" {
			localPath = "./uploads"
		}
		return NewLocalStorage(localPath)

	case StorageTypeS3:
		cfg := StorageConfig{
			Type:         StorageTypeS3,
			S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
			S3Region:     os.Getenv("AWS_REGION"),
			AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		}
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1"
		}
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}
		return NewS3Storage(cfg)

	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageType)
	}
}

// ValidateUpload rejects anything but a PDF before any bytes are
// persisted. When the part carries no Content-Type it is inferred from
// the filename extension.
func ValidateUpload(header *multipart.FileHeader) error {
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" && strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		mimeType = pdfMimeType
	}
	if mimeType != pdfMimeType {
		return ErrUnsupportedMedia
	}
	return nil
}

// StoredName generates the unique flat name an upload is stored under.
// The original extension is preserved, defaulting to .pdf when absent.
func StoredName(fileID uuid.UUID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".pdf"
	}
	return fileID.String() + ext
}

// ContentType determines the content type served for a stored name
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return pdfMimeType
	default:
		return "application/octet-stream"
	}
}
