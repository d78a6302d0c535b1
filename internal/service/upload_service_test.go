package service

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

// 1x1 transparent PNG.
var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

type memoryObjectStore struct {
	objects map[string][]byte
	err     error
}

func (m *memoryObjectStore) Upload(bucket, objectPath string, r io.Reader) error {
	if m.err != nil {
		return m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[bucket+"/"+objectPath] = data
	return nil
}

func (m *memoryObjectStore) PublicURL(bucket, objectPath string) string {
	return "http://localhost:8080/storage/v1/object/public/" + bucket + "/" + objectPath
}

func TestUploadImageStoresUnderFolder(t *testing.T) {
	store := &memoryObjectStore{}
	svc := NewUploadService(store, UploadConfig{}, nil)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	notices := &Notices{}

	result, err := svc.UploadImage("teachers", "Sarah.PNG", bytes.NewReader(tinyPNG), notices)
	require.NoError(t, err)
	assert.Equal(t, DefaultBucket, result.Bucket)
	assert.Regexp(t, regexp.MustCompile(`^teachers/1700000000000-[0-9a-f]{8}\.png$`), result.Path)
	assert.Equal(t, "http://localhost:8080/storage/v1/object/public/school-images/"+result.Path, result.PublicURL)
	assert.Equal(t, "image/png", result.ContentType)
	assert.Equal(t, tinyPNG, store.objects[DefaultBucket+"/"+result.Path])
	assert.Equal(t, []Notice{{Level: NoticeSuccess, Message: UploadSuccessMessage}}, notices.List())
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	store := &memoryObjectStore{}
	svc := NewUploadService(store, UploadConfig{}, nil)
	notices := &Notices{}

	_, err := svc.UploadImage("gallery", "notes.png", bytes.NewReader([]byte("just some text")), notices)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, store.objects)
	assert.Equal(t, UploadNotImageMessage, notices.List()[0].Message)
}

func TestUploadImageRejectsLargeFiles(t *testing.T) {
	store := &memoryObjectStore{}
	svc := NewUploadService(store, UploadConfig{MaxSize: int64(len(tinyPNG) - 1)}, nil)
	notices := &Notices{}

	_, err := svc.UploadImage("gallery", "a.png", bytes.NewReader(tinyPNG), notices)
	require.Error(t, err)
	assert.Empty(t, store.objects)
	assert.Equal(t, UploadTooLargeMessage, notices.List()[0].Message)
}

func TestUploadImageStoreFailure(t *testing.T) {
	svc := NewUploadService(&memoryObjectStore{err: errors.New("disk full")}, UploadConfig{}, nil)
	_, err := svc.UploadImage("", "a.png", bytes.NewReader(tinyPNG), &Notices{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrGateway))
}

func TestUploadImageDerivesExtensionAndCleansFolder(t *testing.T) {
	store := &memoryObjectStore{}
	svc := NewUploadService(store, UploadConfig{}, nil)

	result, err := svc.UploadImage("../../etc/", "blob", bytes.NewReader(tinyPNG), &Notices{})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^etc/\d+-[0-9a-f]{8}\.png$`), result.Path)
}

func TestUploadImageExtensionFollowsContent(t *testing.T) {
	store := &memoryObjectStore{}
	svc := NewUploadService(store, UploadConfig{}, nil)

	result, err := svc.UploadImage("gallery", "x.html", bytes.NewReader(tinyPNG), &Notices{})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^gallery/\d+-[0-9a-f]{8}\.png$`), result.Path)
	assert.Equal(t, "image/png", result.ContentType)
}

func TestUploadImageRejectsSVG(t *testing.T) {
	store := &memoryObjectStore{}
	svc := NewUploadService(store, UploadConfig{}, nil)
	notices := &Notices{}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"><script>alert(1)</script></svg>`)

	_, err := svc.UploadImage("gallery", "logo.svg", bytes.NewReader(svg), notices)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, store.objects)
	assert.Equal(t, UploadNotImageMessage, notices.List()[0].Message)
}
