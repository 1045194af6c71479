package models

import "io"

// StagedFile is a file selected locally but not yet uploaded. It is owned
// exclusively by the staging area and identified by name; two staged files
// may share a name.
//
// Either Path or Body carries the binary: Path points at a file on disk
// opened at upload time, Body is an in-memory handle used when no path
// exists. MimeType is the declared type and may be empty or generic; the
// upload pipeline normalizes it.
type StagedFile struct {
	Name     string
	MimeType string
	Size     int64
	Path     string
	Body     io.Reader
}
