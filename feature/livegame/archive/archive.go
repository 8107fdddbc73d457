package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"game-tracker/core/storage"
	"game-tracker/feature/livegame/remote"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Prefix is the object prefix under which pushed games are archived.
const Prefix = "offline-games"

// Archive writes offline game payloads to object storage.
type Archive struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	now    func() time.Time
}

// New creates an archive writing to bucket.
func New(client storage.Client, bucket string, logger *zap.Logger) *Archive {
	return &Archive{client: client, bucket: bucket, logger: logger, now: time.Now}
}

// EnsureBucket creates the archive bucket when it does not exist.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create archive bucket: %w", err)
	}
	a.logger.Info("Archive bucket created", zap.String("bucket", a.bucket))
	return nil
}

// Store uploads payload and returns its object name.
func (a *Archive) Store(ctx context.Context, payload remote.FullGamePayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	name := ObjectName(payload.Game.ID, a.now())
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}

	a.logger.Info("Game archived",
		zap.String("game", payload.Game.ID),
		zap.String("object", name),
		zap.Int("bytes", len(data)))
	return name, nil
}

// ObjectName returns the archive object name for a game pushed at t.
func ObjectName(gameID string, t time.Time) string {
	return fmt.Sprintf("%s/%s/%s.json", Prefix, gameID, t.UTC().Format("20060102T150405Z"))
}
