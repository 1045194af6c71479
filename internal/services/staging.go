package services

import (
	"context"

	"github.com/eshmelev/dropspace/internal/logging"
	"github.com/eshmelev/dropspace/internal/models"
	"github.com/eshmelev/dropspace/internal/notify"
	"github.com/eshmelev/dropspace/internal/views"
)

// Staging manages the in-memory list of files queued for upload.
type Staging struct {
	files       *views.View[[]models.StagedFile]
	sessionDocs *views.View[[]*models.DocumentRecord]
	notifier    notify.Notifier
	log         logging.Logger
}

func NewStaging(
	files *views.View[[]models.StagedFile],
	sessionDocs *views.View[[]*models.DocumentRecord],
	notifier notify.Notifier,
	log logging.Logger,
) *Staging {
	return &Staging{files: files, sessionDocs: sessionDocs, notifier: notifier, log: log}
}

// Select prepends the chosen files, newest selection first. Files are not
// de-duplicated: selecting the same file twice stages it twice.
func (s *Staging) Select(files ...models.StagedFile) {
	s.files.Update(func(current []models.StagedFile) []models.StagedFile {
		next := make([]models.StagedFile, 0, len(files)+len(current))
		next = append(next, files...)
		return append(next, current...)
	})
}

// Remove drops every staged file with the given name and notifies the user.
// The notification fires whether or not anything matched.
func (s *Staging) Remove(ctx context.Context, name string) {
	s.files.Update(func(current []models.StagedFile) []models.StagedFile {
		next := make([]models.StagedFile, 0, len(current))
		for _, f := range current {
			if f.Name != name {
				next = append(next, f)
			}
		}
		return next
	})
	s.notifier.Error(ctx, "File removed")
}

// Clear empties both the staging list and the session's uploaded-documents
// view.
func (s *Staging) Clear(ctx context.Context) {
	s.files.Set(nil)
	s.sessionDocs.Set(nil)
	s.notifier.Error(ctx, "All files removed")
}

// Files returns the current staging list.
func (s *Staging) Files() []models.StagedFile {
	return s.files.Get()
}
