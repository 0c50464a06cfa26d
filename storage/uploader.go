package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores layout snapshots in object storage.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// SnapshotKey is the object key of a layout snapshot taken for groupID at the given time.
func SnapshotKey(groupID int, at time.Time) string {
	return fmt.Sprintf("brackets/group-%d/layout-%d.json", groupID, at.UTC().Unix())
}
