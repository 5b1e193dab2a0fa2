// Package storage persists uploaded documents under a collision-resistant,
// traversal-safe path layout and validates content signatures before any write.
package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-review/internal/types"
	"github.com/jonathan/resume-review/pkg/events"
)

// DefaultMaxFileSize is the upload size ceiling (10 MiB).
const DefaultMaxFileSize = 10 << 20

// sanitizePattern matches every character stripped from stored basenames.
var sanitizePattern = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// FileMetadata describes a stored artifact on the read path. The MIME type is
// derived from the file extension, not content.
type FileMetadata struct {
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Engine writes and reads document blobs under a single storage root.
// Concurrent writers never collide: every stored name carries a fresh UUID.
type Engine struct {
	root    string
	maxSize int64
	sink    events.Sink
}

// NewEngine creates an Engine rooted at root. The root directory is created
// if it does not exist. maxSize <= 0 selects DefaultMaxFileSize.
func NewEngine(root string, maxSize int64, sink events.Sink) (*Engine, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if sink == nil {
		sink = events.NewNop()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}
	if err := os.MkdirAll(absRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &Engine{root: absRoot, maxSize: maxSize, sink: sink}, nil
}

// Store validates the upload against its declared metadata and writes it under
// {year}/{month}/{uuid}-{sanitizedBase}{ext}. Returns the path relative to the
// storage root. Size and signature are checked before any I/O happens.
func (e *Engine) Store(ctx context.Context, data []byte, meta types.FileMetadata) (string, error) {
	// The ceiling applies to both the declared size and the actual payload,
	// so an understated declaration cannot smuggle in an oversized buffer.
	if size := max(meta.Size, int64(len(data))); size > e.maxSize {
		err := &ErrFileTooLarge{Size: size, Limit: e.maxSize}
		e.sink.FileOp(ctx, "store", meta.OriginalFilename, size, err)
		return "", err
	}
	if err := ValidateSignature(data, meta.MimeType); err != nil {
		e.sink.FileOp(ctx, "store", meta.OriginalFilename, meta.Size, err)
		return "", err
	}

	now := time.Now()
	relPath := path.Join(
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", int(now.Month())),
		uniqueFilename(meta.OriginalFilename),
	)

	absPath := filepath.Join(e.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		e.sink.FileOp(ctx, "store", relPath, meta.Size, err)
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		e.sink.FileOp(ctx, "store", relPath, meta.Size, err)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	e.sink.FileOp(ctx, "store", relPath, int64(len(data)), nil)
	return relPath, nil
}

// Retrieve reads a stored artifact by its root-relative path.
func (e *Engine) Retrieve(ctx context.Context, relativePath string) ([]byte, error) {
	absPath, err := e.resolve(relativePath)
	if err != nil {
		e.sink.FileOp(ctx, "retrieve", relativePath, 0, err)
		return nil, err
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			nf := &ErrNotFound{Path: relativePath}
			e.sink.FileOp(ctx, "retrieve", relativePath, 0, nf)
			return nil, nf
		}
		e.sink.FileOp(ctx, "retrieve", relativePath, 0, err)
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	e.sink.FileOp(ctx, "retrieve", relativePath, int64(len(data)), nil)
	return data, nil
}

// Delete removes a stored artifact by its root-relative path.
func (e *Engine) Delete(ctx context.Context, relativePath string) error {
	absPath, err := e.resolve(relativePath)
	if err != nil {
		e.sink.FileOp(ctx, "delete", relativePath, 0, err)
		return err
	}
	if err := os.Remove(absPath); err != nil {
		if os.IsNotExist(err) {
			nf := &ErrNotFound{Path: relativePath}
			e.sink.FileOp(ctx, "delete", relativePath, 0, nf)
			return nf
		}
		e.sink.FileOp(ctx, "delete", relativePath, 0, err)
		return fmt.Errorf("failed to delete file: %w", err)
	}
	e.sink.FileOp(ctx, "delete", relativePath, 0, nil)
	return nil
}

// Metadata returns filename, size, extension-derived MIME type, and mod time
// for a stored artifact.
func (e *Engine) Metadata(relativePath string) (*FileMetadata, error) {
	absPath, err := e.resolve(relativePath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ErrNotFound{Path: relativePath}
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(absPath))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return &FileMetadata{
		Filename:  info.Name(),
		Size:      info.Size(),
		MimeType:  mimeType,
		CreatedAt: info.ModTime(),
	}, nil
}

// resolve normalizes a client-supplied relative path and joins it with the
// storage root, rejecting anything that would escape the root. Traversal
// attempts surface as ErrNotFound so the caller learns nothing about the
// filesystem layout.
func (e *Engine) resolve(relativePath string) (string, error) {
	cleaned := strings.ReplaceAll(relativePath, "\\", "/")
	cleaned = path.Clean("/" + cleaned) // collapses any ../ against the virtual root
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", &ErrNotFound{Path: relativePath}
	}

	absPath := filepath.Join(e.root, filepath.FromSlash(cleaned))
	if absPath != e.root && !strings.HasPrefix(absPath, e.root+string(filepath.Separator)) {
		return "", &ErrNotFound{Path: relativePath}
	}
	return absPath, nil
}

// uniqueFilename builds {uuid}-{sanitizedBase}{ext} from an original filename.
func uniqueFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext != "" {
		ext = "." + sanitizePattern.ReplaceAllString(strings.TrimPrefix(ext, "."), "")
	}
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = sanitizePattern.ReplaceAllString(base, "")
	if base == "" {
		base = "document"
	}
	return fmt.Sprintf("%s-%s%s", uuid.New().String(), base, ext)
}
