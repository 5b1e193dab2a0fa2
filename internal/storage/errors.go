package storage

import "fmt"

// ErrFileTooLarge indicates the declared upload size exceeds the ceiling.
type ErrFileTooLarge struct {
	Size  int64
	Limit int64
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("file too large: %d bytes exceeds limit of %d bytes", e.Size, e.Limit)
}

// Code returns the machine-readable error code.
func (e *ErrFileTooLarge) Code() string { return "file_too_large" }

// ErrInvalidFileType indicates the MIME type is not allowed or the byte
// prefix does not match the signature expected for the declared type.
type ErrInvalidFileType struct {
	MimeType string
	Reason   string
}

func (e *ErrInvalidFileType) Error() string {
	return fmt.Sprintf("invalid file type %q: %s", e.MimeType, e.Reason)
}

// Code returns the machine-readable error code.
func (e *ErrInvalidFileType) Code() string { return "invalid_file_type" }

// ErrNotFound indicates no stored artifact exists at the given path.
type ErrNotFound struct {
	Path string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// Code returns the machine-readable error code.
func (e *ErrNotFound) Code() string { return "not_found" }
