package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"doorbelld/internal/models"
	"doorbelld/internal/providers"
	"doorbelld/internal/structures"
)

// MirrorInterface copies finished events to object storage.
type MirrorInterface interface {
	Upload(ctx context.Context, day, id, dir string) error
	Remove(ctx context.Context, day, id string) error
}

type MinioMirror struct {
	client *minio.Client
	bucket string
	logger providers.Logger
}

func NewMirror(conf *structures.Config, logger providers.Logger) (MirrorInterface, error) {
	if !conf.Mirror.Enabled {
		return &noopMirror{}, nil
	}

	cli, err := minio.New(conf.Mirror.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.Mirror.AccessKey, conf.Mirror.SecretKey, ""),
		Secure: conf.Mirror.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = cli.MakeBucket(ctx, conf.Mirror.Bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := cli.BucketExists(ctx, conf.Mirror.Bucket)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("create or check bucket %s: %w", conf.Mirror.Bucket, err)
		}
	}

	logger.Infof(providers.TypeApp, "Mirroring events to %s, bucket=%s", conf.Mirror.Endpoint, conf.Mirror.Bucket)
	return &MinioMirror{client: cli, bucket: conf.Mirror.Bucket, logger: logger}, nil
}

// Upload puts every media file of the event under <day>/<id>/.
func (m *MinioMirror) Upload(ctx context.Context, day, id, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || isHidden(e.Name()) {
			continue
		}
		key := objectKey(day, id, e.Name())
		_, err := m.client.FPutObject(ctx, m.bucket, key, filepath.Join(dir, e.Name()), minio.PutObjectOptions{
			ContentType: contentType(e.Name()),
		})
		if err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
	}
	m.logger.Debugf(providers.TypeCapture, "Mirrored %s/%s", day, id)
	return nil
}

func (m *MinioMirror) Remove(ctx context.Context, day, id string) error {
	prefix := objectKey(day, id, "")
	var errs []error
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			errs = append(errs, obj.Err)
			continue
		}
		if err := m.client.RemoveObject(ctx, m.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", obj.Key, err))
		}
	}
	return errors.Join(errs...)
}

func objectKey(day, id, name string) string {
	if name == "" {
		return path.Join(day, id) + "/"
	}
	return path.Join(day, id, name)
}

func contentType(name string) string {
	if models.MediaTypeOf(name) == models.MediaVideo {
		return "video/mp4"
	}
	if filepath.Ext(name) == ImageExt {
		return "image/webp"
	}
	return "application/octet-stream"
}

type noopMirror struct{}

func (n *noopMirror) Upload(_ context.Context, _, _, _ string) error { return nil }
func (n *noopMirror) Remove(_ context.Context, _, _ string) error    { return nil }
