package storage

import "bytes"

// Supported document MIME types.
const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// fileSignatures maps each allowed MIME type to the magic-number prefix its
// content must start with. MIME headers and extensions are attacker-controlled;
// byte prefixes are not.
var fileSignatures = map[string][]byte{
	MimePDF:  []byte("%PDF"),
	MimeDOC:  {0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, // OLE2 compound file
	MimeDOCX: {0x50, 0x4B, 0x03, 0x04},                         // ZIP local file header
}

// AllowedMimeType reports whether the declared MIME type is supported.
func AllowedMimeType(mimeType string) bool {
	_, ok := fileSignatures[mimeType]
	return ok
}

// ValidateSignature checks that data begins with the magic-number prefix
// expected for the declared MIME type.
func ValidateSignature(data []byte, mimeType string) error {
	sig, ok := fileSignatures[mimeType]
	if !ok {
		return &ErrInvalidFileType{MimeType: mimeType, Reason: "mime type not in allow-list"}
	}
	if len(data) < len(sig) || !bytes.HasPrefix(data, sig) {
		return &ErrInvalidFileType{MimeType: mimeType, Reason: "content signature does not match declared type"}
	}
	return nil
}
