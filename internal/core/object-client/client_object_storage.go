package objectclient

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	cfg "github.com/markdave123-py/VectorVault/internal/config"
)

type S3Client struct {
	client *s3.Client
	bucket string
}

func NewS3Client(ctx context.Context, cfg *cfg.Config) (*S3Client, error) {
	if cfg.AwsAccessKey == "" || cfg.AwsSecretKey == "" {
		return nil, fmt.Errorf("AWS credentials not set")
	}
	if cfg.AwsRegion == "" {
		return nil, fmt.Errorf("AWS_REGION not set")
	}
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("S3 bucket name not set")
	}

	awsCfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(cfg.AwsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AwsAccessKey, cfg.AwsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	log.Println("Connected to AWS S3 successfully")

	return &S3Client{
		client: client,
		bucket: cfg.BucketName,
	}, nil
}

// SyncToDir downloads every object under prefix into destDir so the
// ingestion pipeline can pick documents up from local disk. Keys are
// flattened: "reports/2024/q1.pdf" becomes "reports_2024_q1.pdf".
// Returns the number of objects downloaded.
func (c *S3Client) SyncToDir(ctx context.Context, prefix, destDir string) (int, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, fmt.Errorf("create dest dir %q: %w", destDir, err)
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("list s3 objects: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue
			}
			keys = append(keys, key)
		}
	}

	downloader := manager.NewDownloader(c.client)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, key := range keys {
		key := key
		g.Go(func() error {
			return c.downloadOne(gctx, downloader, key, destDir)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	log.Printf("synced %d objects from s3://%s/%s to %s", len(keys), c.bucket, prefix, destDir)
	return len(keys), nil
}

func (c *S3Client) downloadOne(ctx context.Context, downloader *manager.Downloader, key, destDir string) error {
	ctxGet, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	name := strings.ReplaceAll(strings.TrimPrefix(key, "/"), "/", "_")
	path := filepath.Join(destDir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	if _, err := downloader.Download(ctxGet, f, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("s3 download %q: %w", key, err)
	}
	return nil
}
