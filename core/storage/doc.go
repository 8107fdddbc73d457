// Package storage provides access to S3-compatible object storage.
//
// The tracker uses it to archive the full payload of an offline game right before the
// one-shot upload, so a scorekeeper's game can be recovered even if the device is lost
// after a failed push. It wraps the MinIO Go client, which works against AWS S3 and
// self-hosted MinIO alike.
//
// # Client Interface
//
// The Client interface only exposes what the archive needs, which keeps it easy to
// mock (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
