// Package archive uploads season snapshots to DigitalOcean Spaces (or any S3
// compatible bucket) before the points are cleared.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	botconfig "github.com/prd11/dream11-bot/dreambot/config"
	"github.com/prd11/dream11-bot/dreambot/ledger"
)

const keyTimeLayout = "20060102T150405Z"

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Spaces struct {
	client objectPutter
	bucket string
	prefix string
}

// NewSpaces connects to the Spaces endpoint of region.
func NewSpaces(ctx context.Context, key, secret, region, bucket, prefix string) (*Spaces, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.digitaloceanspaces.com", region))
	})

	return &Spaces{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

// Key is the object key of a snapshot taken at t.
func Key(prefix string, t time.Time) string {
	name := "season-" + t.UTC().Format(keyTimeLayout) + ".json"
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func Encode(snap *ledger.Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// Archive uploads snap and returns its object key.
func (s *Spaces) Archive(ctx context.Context, snap *ledger.Snapshot) (string, error) {
	body, err := Encode(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	key := Key(s.prefix, snap.TakenAt)

	ctx, cancel := context.WithTimeout(ctx, botconfig.ArchiveUploadTimeout)
	defer cancel()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload snapshot to %s/%s: %w", s.bucket, key, err)
	}

	slog.Info("Snapshot uploaded",
		slog.String("type", "sys"),
		slog.String("bucket", s.bucket),
		slog.String("key", key),
		slog.Int("bytes", len(body)))
	return key, nil
}

func (s *Spaces) Bucket() string {
	return s.bucket
}
