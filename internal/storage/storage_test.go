package storage

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-review/internal/types"
)

func newTestEngine(t *testing.T, maxSize int64) *Engine {
	t.Helper()
	engine, err := NewEngine(t.TempDir(), maxSize, nil)
	require.NoError(t, err)
	return engine
}

func pdfBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, "%PDF-1.7\n")
	return data
}

func pdfMeta(name string, size int64) types.FileMetadata {
	return types.FileMetadata{OriginalFilename: name, MimeType: MimePDF, Size: size}
}

func TestStore_Success(t *testing.T) {
	engine := newTestEngine(t, 0)
	data := pdfBytes(512)

	relPath, err := engine.Store(context.Background(), data, pdfMeta("resume.pdf", 512))
	require.NoError(t, err)

	// {year}/{month}/{uuid}-{sanitizedBase}.{ext}, relative to the root.
	assert.Regexp(t, regexp.MustCompile(`^\d{4}/\d{2}/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}-resume\.pdf$`), relPath)
	assert.False(t, filepath.IsAbs(relPath))

	got, err := engine.Retrieve(context.Background(), relPath)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestStore_SanitizesFilename(t *testing.T) {
	engine := newTestEngine(t, 0)

	relPath, err := engine.Store(context.Background(), pdfBytes(64), pdfMeta("my résumé (final)!.pdf", 64))
	require.NoError(t, err)
	base := filepath.Base(relPath)
	// Everything outside [a-zA-Z0-9_-] is stripped from the original basename.
	assert.Regexp(t, `-myrsumfinal\.pdf$`, base)
}

func TestStore_UniqueNamesForSameFilename(t *testing.T) {
	engine := newTestEngine(t, 0)

	first, err := engine.Store(context.Background(), pdfBytes(64), pdfMeta("resume.pdf", 64))
	require.NoError(t, err)
	second, err := engine.Store(context.Background(), pdfBytes(64), pdfMeta("resume.pdf", 64))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestStore_SizeBoundary(t *testing.T) {
	engine := newTestEngine(t, 1024)

	// Exactly the ceiling is accepted.
	_, err := engine.Store(context.Background(), pdfBytes(1024), pdfMeta("resume.pdf", 1024))
	assert.NoError(t, err)

	// One byte over is rejected before any I/O.
	_, err = engine.Store(context.Background(), pdfBytes(1025), pdfMeta("resume.pdf", 1025))
	var tooLarge *ErrFileTooLarge
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, int64(1025), tooLarge.Size)
	assert.Equal(t, int64(1024), tooLarge.Limit)
	assert.Equal(t, "file_too_large", tooLarge.Code())
}

func TestStore_RejectsOversizedPayloadWithSmallDeclaredSize(t *testing.T) {
	engine := newTestEngine(t, 1024)

	// The declared size fits, the actual payload does not.
	_, err := engine.Store(context.Background(), pdfBytes(4096), pdfMeta("resume.pdf", 100))
	var tooLarge *ErrFileTooLarge
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, int64(4096), tooLarge.Size)
}

func TestStore_RejectsSpoofedContent(t *testing.T) {
	engine := newTestEngine(t, 0)

	// Declared PDF, actual ZIP payload.
	data := []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00}
	_, err := engine.Store(context.Background(), data, types.FileMetadata{
		OriginalFilename: "resume.pdf",
		MimeType:         MimePDF,
		Size:             int64(len(data)),
	})
	var invalid *ErrInvalidFileType
	require.ErrorAs(t, err, &invalid)
}

func TestRetrieve_NotFound(t *testing.T) {
	engine := newTestEngine(t, 0)

	_, err := engine.Retrieve(context.Background(), "2024/01/does-not-exist.pdf")
	var notFound *ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "not_found", notFound.Code())
}

func TestRetrieve_TraversalNeverEscapesRoot(t *testing.T) {
	// Plant a file outside the storage root that a successful traversal
	// would reach, then verify no payload resolves to it.
	parent := t.TempDir()
	root := filepath.Join(parent, "store")
	secret := filepath.Join(parent, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("top secret"), 0o644))

	engine, err := NewEngine(root, 0, nil)
	require.NoError(t, err)

	payloads := []string{
		"../secret.txt",
		"..\\secret.txt",
		"../../secret.txt",
		"..\\..\\secret.txt",
		"foo/../../secret.txt",
		"foo\\..\\..\\secret.txt",
		"./../secret.txt",
		"....//secret.txt",
		"/../secret.txt",
		"/etc/passwd",
		"\\etc\\passwd",
		"2024/01/../../../secret.txt",
		"..",
		"../",
		"",
		".",
	}
	for _, payload := range payloads {
		data, err := engine.Retrieve(context.Background(), payload)
		assert.Nil(t, data, "payload %q", payload)
		var notFound *ErrNotFound
		assert.ErrorAs(t, err, &notFound, "payload %q", payload)

		err = engine.Delete(context.Background(), payload)
		assert.ErrorAs(t, err, &notFound, "delete payload %q", payload)
	}

	// The outside file is untouched.
	content, err := os.ReadFile(secret)
	require.NoError(t, err)
	assert.Equal(t, []byte("top secret"), content)
}

func TestDelete_RemovesBlob(t *testing.T) {
	engine := newTestEngine(t, 0)

	relPath, err := engine.Store(context.Background(), pdfBytes(64), pdfMeta("resume.pdf", 64))
	require.NoError(t, err)

	require.NoError(t, engine.Delete(context.Background(), relPath))

	_, err = engine.Retrieve(context.Background(), relPath)
	var notFound *ErrNotFound
	assert.ErrorAs(t, err, &notFound)

	err = engine.Delete(context.Background(), relPath)
	assert.ErrorAs(t, err, &notFound)
}

func TestMetadata_DerivesMimeFromExtension(t *testing.T) {
	engine := newTestEngine(t, 0)

	relPath, err := engine.Store(context.Background(), pdfBytes(128), pdfMeta("resume.pdf", 128))
	require.NoError(t, err)

	meta, err := engine.Metadata(relPath)
	require.NoError(t, err)
	assert.Equal(t, int64(128), meta.Size)
	assert.Equal(t, "application/pdf", meta.MimeType)
	assert.False(t, meta.CreatedAt.IsZero())
}

func TestMetadata_NotFound(t *testing.T) {
	engine := newTestEngine(t, 0)

	_, err := engine.Metadata("2024/01/missing.pdf")
	var notFound *ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}
