package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Service keeps movie media in Amazon S3 (or compatible APIs).
type S3Service struct {
	client   *s3.Client
	uploader *manager.Uploader
	presign  *s3.PresignClient
}

func NewS3Service(client *s3.Client) *S3Service {
	return &S3Service{
		client:   client,
		uploader: manager.NewUploader(client),
		presign:  s3.NewPresignClient(client),
	}
}

type mediaFile struct {
	path string
	key  string
	size int64
}

// UploadDirectory uploads every media file under localPath to
// bucket/KeyPrefix and returns the s3:// location of the prefix.
func (s *S3Service) UploadDirectory(ctx context.Context, localPath string, opts UploadOptions) (string, error) {
	if opts.Bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}
	keyPrefix := strings.Trim(opts.KeyPrefix, "/")
	if keyPrefix == "" {
		return "", fmt.Errorf("key prefix is required")
	}

	files, err := collectMedia(filepath.Clean(localPath), keyPrefix)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no media files in %s", localPath)
	}

	var totalSize int64
	for _, file := range files {
		totalSize += file.size
	}
	progress := newUploadProgress(totalSize, opts.Progress)
	if progress != nil {
		progress.emit()
	}

	for _, file := range files {
		if err := s.uploadFile(ctx, opts.Bucket, file, progress); err != nil {
			return "", err
		}
	}

	if progress != nil {
		progress.emit()
	}
	return fmt.Sprintf("s3://%s/%s", opts.Bucket, keyPrefix), nil
}

func (s *S3Service) uploadFile(ctx context.Context, bucket string, file mediaFile, progress *uploadProgress) error {
	f, err := os.Open(file.path)
	if err != nil {
		return fmt.Errorf("open file %s: %w", file.path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if progress != nil {
		reader = io.TeeReader(f, progress)
	}
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(file.key),
		Body:   reader,
		ACL:    types.ObjectCannedACLPrivate,
	}
	if ct := ContentType(file.key); ct != "" {
		input.ContentType = aws.String(ct)
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return fmt.Errorf("upload %s: %w", file.path, err)
	}
	return nil
}

func collectMedia(root, keyPrefix string) ([]mediaFile, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat local path: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("local path must be a directory")
	}

	var files []mediaFile
	err = filepath.Walk(root, func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() || ContentType(p) == "" {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", p, err)
		}
		files = append(files, mediaFile{
			path: p,
			key:  path.Join(keyPrefix, filepath.ToSlash(rel)),
			size: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ContentType returns the MIME type of a playable or subtitle file, or "" for
// anything else.
func ContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".mp4", ".m4v":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".m3u8":
		return "application/x-mpegURL"
	case ".vtt":
		return "text/vtt"
	case ".mkv":
		return "video/x-matroska"
	}
	return ""
}

// walkPrefix calls fn with every page of objects under prefix.
func (s *S3Service) walkPrefix(ctx context.Context, bucket, prefix string, fn func([]types.Object) error) error {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(bucket)}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list objects: %w", err)
		}
		if len(page.Contents) == 0 {
			continue
		}
		if err := fn(page.Contents); err != nil {
			return err
		}
	}
	return nil
}

// ListObjects lists objects under prefix, skipping folder placeholder keys.
func (s *S3Service) ListObjects(ctx context.Context, bucket, prefix string) ([]Object, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	var objects []Object
	err := s.walkPrefix(ctx, bucket, strings.TrimSpace(prefix), func(page []types.Object) error {
		for _, obj := range page {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue
			}
			objects = append(objects, Object{
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: obj.LastModified,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objects, nil
}

// DeletePrefix removes everything under prefix. An empty prefix is refused so
// a bucket is never wiped by accident.
func (s *S3Service) DeletePrefix(ctx context.Context, bucket, prefix string) error {
	if bucket == "" {
		return fmt.Errorf("storage bucket is required")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}

	return s.walkPrefix(ctx, bucket, prefix, func(page []types.Object) error {
		ids := make([]types.ObjectIdentifier, len(page))
		for i, obj := range page {
			ids[i] = types.ObjectIdentifier{Key: obj.Key}
		}
		out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("delete objects: %w", err)
		}
		if len(out.Errors) > 0 {
			first := out.Errors[0]
			return fmt.Errorf("delete %s: %s (%d keys failed)", aws.ToString(first.Key), aws.ToString(first.Message), len(out.Errors))
		}
		return nil
	})
}

// GetObjectURL returns a presigned GET URL valid for expires.
func (s *S3Service) GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	if bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

var _ Service = (*S3Service)(nil)

const progressInterval = 200 * time.Millisecond

// uploadProgress counts bytes read across all files of one upload and
// reports them at most every progressInterval, plus at the start and end.
type uploadProgress struct {
	mu    sync.Mutex
	done  int64
	total int64
	cb    func(done, total int64)
	last  time.Time
}

func newUploadProgress(total int64, cb func(done, total int64)) *uploadProgress {
	if cb == nil {
		return nil
	}
	return &uploadProgress{total: total, cb: cb}
}

func (p *uploadProgress) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done += int64(len(b))
	if p.done == p.total || time.Since(p.last) >= progressInterval {
		p.fire()
	}
	return len(b), nil
}

func (p *uploadProgress) emit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fire()
}

func (p *uploadProgress) fire() {
	p.last = time.Now()
	p.cb(p.done, p.total)
}
