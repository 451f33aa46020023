package storage

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// exercisePrefix namespaces exercise demonstration media in the bucket.
const exercisePrefix = "exercises/"

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	DeleteObject(ctx context.Context, objectKey string) error
}

// ExerciseMediaKey builds a fresh object key for an exercise video or image.
// The original file extension is kept so players can infer the format.
func ExerciseMediaKey(exerciseID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return exercisePrefix + exerciseID + "/" + uuid.NewString() + ext
}

// IsExerciseMediaKey reports whether ref is an object key created by
// ExerciseMediaKey rather than an external URL.
func IsExerciseMediaKey(ref string) bool {
	return strings.HasPrefix(ref, exercisePrefix)
}
