package storage

import (
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)
	return s, dir
}

func fileHeader(filename, contentType string) *multipart.FileHeader {
	header := &multipart.FileHeader{
		Filename: filename,
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		header.Header.Set("Content-Type", contentType)
	}
	return header
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		wantErr     error
	}{
		{"pdf content type", "doc.pdf", "application/pdf", nil},
		{"no content type with pdf extension", "doc.pdf", "", nil},
		{"plain text", "doc.txt", "text/plain", ErrUnsupportedMedia},
		{"png pretending nothing", "img.png", "image/png", ErrUnsupportedMedia},
		{"no content type no extension", "doc", "", ErrUnsupportedMedia},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(fileHeader(tt.filename, tt.contentType))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStoredName(t *testing.T) {
	id := uuid.New()

	assert.Equal(t, id.String()+".pdf", StoredName(id, "receipt.pdf"))
	assert.Equal(t, id.String()+".pdf", StoredName(id, "receipt.PDF"))
	// extension defaults to .pdf when absent
	assert.Equal(t, id.String()+".pdf", StoredName(id, "receipt"))
}

func TestLocalStorage_UploadWritesFlatFile(t *testing.T) {
	s, dir := newTestStorage(t)
	id := uuid.New()

	name, err := s.Upload(context.Background(), id, "receipt.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, id.String()+".pdf", name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestLocalStorage_DownloadRoundTrip(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	name, err := s.Upload(ctx, uuid.New(), "receipt.pdf", strings.NewReader("content"))
	require.NoError(t, err)

	reader, err := s.Download(ctx, name)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestLocalStorage_DownloadMissing(t *testing.T) {
	s, _ := newTestStorage(t)

	_, err := s.Download(context.Background(), "nope.pdf")
	assert.Error(t, err)
}

func TestLocalStorage_DeleteRemovesFile(t *testing.T) {
	s, dir := newTestStorage(t)
	ctx := context.Background()

	name, err := s.Upload(ctx, uuid.New(), "receipt.pdf", strings.NewReader("content"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_DeleteIsIdempotent(t *testing.T) {
	s, _ := newTestStorage(t)

	assert.NoError(t, s.Delete(context.Background(), "never-existed.pdf"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("a.pdf"))
	assert.Equal(t, "application/octet-stream", ContentType("a.bin"))
}
