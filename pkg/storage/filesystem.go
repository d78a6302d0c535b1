package storage

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PublicPathPrefix is the URL prefix under which bucket objects are served.
const PublicPathPrefix = "/storage/v1/object/public"

// ErrInvalidPath is returned for object paths that escape their bucket.
var ErrInvalidPath = errors.New("invalid object path")

// BucketStorage persists uploaded objects on disk as <baseDir>/<bucket>/<path>
// and addresses them with public URLs.
type BucketStorage struct {
	baseDir       string
	publicBaseURL string
}

// NewBucketStorage ensures the base directory exists and returns a handle.
func NewBucketStorage(baseDir, publicBaseURL string) (*BucketStorage, error) {
	if baseDir == "" {
		baseDir = "./storage"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &BucketStorage{baseDir: baseDir, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

// BaseDir exposes the on-disk root, used to mount the public file server.
func (s *BucketStorage) BaseDir() string {
	return s.baseDir
}

// Upload copies r into bucket/objectPath. Existing objects are not replaced.
func (s *BucketStorage) Upload(bucket, objectPath string, r io.Reader) error {
	target, err := s.resolve(bucket, objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("prepare bucket directory: %w", err)
	}
	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create object: %w", err)
	}
	if _, err := io.Copy(file, r); err != nil {
		_ = file.Close()
		_ = os.Remove(target)
		return fmt.Errorf("write object: %w", err)
	}
	return file.Close()
}

// Open returns a read-only handle for a stored object.
func (s *BucketStorage) Open(bucket, objectPath string) (*os.File, error) {
	target, err := s.resolve(bucket, objectPath)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("open object: %w", err)
	}
	return file, nil
}

// Delete removes a stored object if present.
func (s *BucketStorage) Delete(bucket, objectPath string) error {
	target, err := s.resolve(bucket, objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// PublicURL returns <base>/storage/v1/object/public/<bucket>/<path>.
func (s *BucketStorage) PublicURL(bucket, objectPath string) string {
	segments := strings.Split(path.Join(bucket, objectPath), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return s.publicBaseURL + PublicPathPrefix + "/" + strings.Join(segments, "/")
}

func (s *BucketStorage) resolve(bucket, objectPath string) (string, error) {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean("/" + objectPath)
	if cleaned == "/" || strings.Contains(objectPath, "..") {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.baseDir, bucket, filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))), nil
}
