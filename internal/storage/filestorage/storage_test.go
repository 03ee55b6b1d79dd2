package storage_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	storage "storefront/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileStorage(t *testing.T) *storage.LocalFileStorage {
	t.Helper()

	fs, err := storage.NewLocalFileStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	return fs
}

func createTestFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)

	err = writer.Close()
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	file.Close()

	return header
}

func TestLocalFileStorage_Save(t *testing.T) {
	fs := setupFileStorage(t)
	ctx := context.Background()

	t.Run("successful save", func(t *testing.T) {
		testFile := createTestFile(t, "test.jpg", "test content")

		filePath, size, err := fs.Save(ctx, testFile, "products/1")
		require.NoError(t, err)

		assert.Equal(t, filepath.Join("products", "1", "test.jpg"), filePath)
		assert.Equal(t, int64(12), size)

		data, err := os.ReadFile(fs.GetFullPath(filePath))
		require.NoError(t, err)
		assert.Equal(t, "test content", string(data))
	})

	t.Run("save with empty subpath", func(t *testing.T) {
		testFile := createTestFile(t, "plain.jpg", "x")

		filePath, _, err := fs.Save(ctx, testFile, "")
		require.NoError(t, err)
		assert.Equal(t, "plain.jpg", filePath)
	})

	t.Run("traversal filename is confined to subpath", func(t *testing.T) {
		testFile := createTestFile(t, "../../etc/passwd", "boom")

		filePath, _, err := fs.Save(ctx, testFile, "products/2")
		require.NoError(t, err)

		assert.Equal(t, filepath.Join("products", "2", "passwd"), filePath)
		assert.True(t, fs.Exists(filePath))
	})

	t.Run("save with context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		testFile := createTestFile(t, "late.jpg", "late")
		_, _, err := fs.Save(ctx, testFile, "products/3")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalFileStorage_Delete(t *testing.T) {
	fs := setupFileStorage(t)
	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		testFile := createTestFile(t, "to_delete.jpg", "content")

		filePath, _, err := fs.Save(ctx, testFile, "")
		require.NoError(t, err)

		err = fs.Delete(ctx, filePath)
		assert.NoError(t, err)
		assert.False(t, fs.Exists(filePath))
	})

	t.Run("delete non-existent file", func(t *testing.T) {
		err := fs.Delete(ctx, "nonexistent.jpg")
		assert.ErrorIs(t, err, storage.ErrFileNotFound)
	})

	t.Run("delete with empty path", func(t *testing.T) {
		err := fs.Delete(ctx, "")
		assert.ErrorIs(t, err, storage.ErrEmptyFilename)
	})
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain name kept", "v.jpg", "v.jpg"},
		{"directories stripped", "../../etc/passwd", "passwd"},
		{"backslash directories stripped", `..\..\boot.ini`, "boot.ini"},
		{"unsafe characters replaced", "my photo (1).jpg", "my_photo__1_.jpg"},
		{"leading dots removed", "...hidden.jpg", "hidden.jpg"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, storage.SanitizeFilename(tc.in))
		})
	}

	t.Run("garbage names get generated keys", func(t *testing.T) {
		for _, in := range []string{"", "..", "///", "???"} {
			got := storage.SanitizeFilename(in)
			assert.NotEmpty(t, got)
			assert.NotContains(t, got, "/")
			assert.NotContains(t, got, "..")
		}
	})
}

func TestLocalFileStorage_Exists(t *testing.T) {
	fs := setupFileStorage(t)
	ctx := context.Background()

	testFile := createTestFile(t, "probe.jpg", "p")
	filePath, _, err := fs.Save(ctx, testFile, "products/9")
	require.NoError(t, err)

	assert.True(t, fs.Exists(filePath))
	assert.False(t, fs.Exists("products/9/missing.jpg"))
}

func TestNewLocalFileStorage(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		fs, err := storage.NewLocalFileStorage(t.TempDir(), "/uploads")
		require.NoError(t, err)
		assert.NotNil(t, fs)
	})

	t.Run("invalid directory", func(t *testing.T) {
		_, err := storage.NewLocalFileStorage("/nonexistent/path", "/uploads")
		assert.Error(t, err)
	})
}
