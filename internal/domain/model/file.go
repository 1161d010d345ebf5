package model

import "time"

// StoredFile holds raw uploaded bytes addressed by a generated storage name.
// Events and submissions reference stored files by name; the reference is
// non-owning.
type StoredFile struct {
	ID           int       `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	MimeType     *string   `json:"mimeType"`
	Size         int64     `json:"size"`
	Data         []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
