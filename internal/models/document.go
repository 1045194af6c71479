package models

import "time"

// DocumentRecord is the metadata describing one uploaded object. The remote
// document store is authoritative; in-memory views over these records are
// caches and are replaced on every mutating operation.
type DocumentRecord struct {
	// ID is generated client-side before creation and doubles as the
	// object-store id, keeping the two stores aligned by construction.
	ID         string
	OwnerID    string
	Filename   string
	Extension  string
	MimeType   string
	SizeBytes  int64
	SizeLabel  string
	ViewURL    string
	PreviewURL string
	// AccessCode enables non-owner access to a shared document.
	AccessCode string
	Public     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DocumentFields is the creation payload for a document record: everything
// except the client-generated id.
type DocumentFields struct {
	OwnerID    string
	Filename   string
	Extension  string
	MimeType   string
	SizeBytes  int64
	SizeLabel  string
	ViewURL    string
	PreviewURL string
	AccessCode string
	Public     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
