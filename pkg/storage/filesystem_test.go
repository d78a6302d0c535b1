package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketStorageUploadAndOpen(t *testing.T) {
	store, err := NewBucketStorage(t.TempDir(), "http://localhost:8080/")
	require.NoError(t, err)

	require.NoError(t, store.Upload("school-images", "teachers/1-abc.png", strings.NewReader("png")))

	file, err := store.Open("school-images", "teachers/1-abc.png")
	require.NoError(t, err)
	defer file.Close()
	body, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "png", string(body))

	assert.Error(t, store.Upload("school-images", "teachers/1-abc.png", strings.NewReader("again")))
}

func TestBucketStoragePublicURL(t *testing.T) {
	store, err := NewBucketStorage(t.TempDir(), "https://cdn.example.com/")
	require.NoError(t, err)

	assert.Equal(t,
		"https://cdn.example.com/storage/v1/object/public/school-images/gallery/17-x.jpg",
		store.PublicURL("school-images", "gallery/17-x.jpg"),
	)
}

func TestBucketStorageRejectsTraversal(t *testing.T) {
	store, err := NewBucketStorage(t.TempDir(), "")
	require.NoError(t, err)

	assert.ErrorIs(t, store.Upload("school-images", "../secret.txt", strings.NewReader("x")), ErrInvalidPath)
	assert.ErrorIs(t, store.Upload("../etc", "a.png", strings.NewReader("x")), ErrInvalidPath)
	assert.ErrorIs(t, store.Delete("school-images", ""), ErrInvalidPath)
}
