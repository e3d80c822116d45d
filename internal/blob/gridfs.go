package blob

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFS stores objects in a Mongo GridFS bucket, using the key as file id.
type GridFS struct {
	bucket *gridfs.Bucket
}

func NewGridFS(db *mongo.Database, bucketName string) (*GridFS, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket: %w", err)
	}
	return &GridFS{bucket: bucket}, nil
}

func (g *GridFS) Put(ctx context.Context, key, contentType string, r io.Reader) error {
	if err := g.bucket.DeleteContext(ctx, key); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
		return fmt.Errorf("replace blob %s: %w", key, err)
	}

	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	if err := g.bucket.UploadFromStreamWithID(key, key, r, opts); err != nil {
		return fmt.Errorf("upload blob %s: %w", key, err)
	}
	return nil
}

func (g *GridFS) Open(ctx context.Context, key string) (*Object, error) {
	stream, err := g.bucket.OpenDownloadStream(key)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open blob %s: %w", key, err)
	}

	file := stream.GetFile()
	ct := "application/octet-stream"
	if file.Metadata != nil {
		if v, ok := file.Metadata.Lookup("contentType").StringValueOK(); ok && v != "" {
			ct = v
		}
	}
	return &Object{Body: stream, ContentType: ct, Size: file.Length}, nil
}
