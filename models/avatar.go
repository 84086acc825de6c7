package models

import (
	"io"
	"time"
)

// Upload is a file received from a client before it is persisted.
type Upload struct {
	// OriginalName is the file name supplied by the client.
	OriginalName string
	// Size is the declared content length in bytes.
	Size int64
	// Content streams the file body.
	Content io.Reader
}

// StoredFile describes a file after it has been written to avatar storage.
type StoredFile struct {
	// OriginalName is the file name supplied by the client.
	OriginalName string `json:"original_name"`
	// Name is the generated file name inside the avatar directory.
	Name string `json:"filename"`
	// Path is the location of the file on disk.
	Path string `json:"path"`
	// Size is the number of bytes written.
	Size int64 `json:"size"`
	// MimeType is derived from the file extension.
	MimeType string `json:"mimetype"`
}

// AvatarFile is an opened avatar ready to be streamed to a client.
// The caller must close Content.
type AvatarFile struct {
	Name    string
	Size    int64
	ModTime time.Time
	Content io.ReadSeekCloser
}

// AvatarUpload is the outcome of a successful avatar upload.
type AvatarUpload struct {
	User User       `json:"user"`
	File StoredFile `json:"file"`
}
