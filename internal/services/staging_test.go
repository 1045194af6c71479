package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eshmelev/dropspace/internal/models"
	"github.com/eshmelev/dropspace/internal/notify"
	"github.com/eshmelev/dropspace/internal/views"
)

func newTestStaging() (*Staging, *views.View[[]models.StagedFile], *views.View[[]*models.DocumentRecord], *notify.Recorder) {
	files := views.New[[]models.StagedFile](nil)
	sessionDocs := views.New[[]*models.DocumentRecord](nil)
	recorder := &notify.Recorder{}
	return NewStaging(files, sessionDocs, recorder, testLogger()), files, sessionDocs, recorder
}

func TestSelectPrependsNewestFirst(t *testing.T) {
	staging, files, _, _ := newTestStaging()

	staging.Select(models.StagedFile{Name: "a.txt", Size: 1})
	staging.Select(models.StagedFile{Name: "b.txt", Size: 2}, models.StagedFile{Name: "c.txt", Size: 3})

	got := files.Get()
	assert.Equal(t, []string{"b.txt", "c.txt", "a.txt"}, names(got))
}

func TestSelectKeepsDuplicates(t *testing.T) {
	staging, files, _, _ := newTestStaging()

	f := models.StagedFile{Name: "dup.txt", Size: 10}
	staging.Select(f)
	staging.Select(f)

	got := files.Get()
	assert.Len(t, got, 2)
	var total int64
	for _, sf := range got {
		total += sf.Size
	}
	assert.Equal(t, int64(20), total)
}

func TestRemoveDropsAllMatchesAndNotifies(t *testing.T) {
	ctx := context.Background()
	staging, files, _, recorder := newTestStaging()

	f := models.StagedFile{Name: "dup.txt"}
	staging.Select(f)
	staging.Select(f)
	staging.Select(models.StagedFile{Name: "keep.txt"})

	staging.Remove(ctx, "dup.txt")

	assert.Equal(t, []string{"keep.txt"}, names(files.Get()))
	assert.Equal(t, []string{"File removed"}, recorder.Errors)
}

func TestRemoveMissingStillNotifies(t *testing.T) {
	ctx := context.Background()
	staging, files, _, recorder := newTestStaging()

	staging.Select(models.StagedFile{Name: "keep.txt"})
	staging.Remove(ctx, "ghost.txt")
	staging.Remove(ctx, "ghost.txt")

	assert.Equal(t, []string{"keep.txt"}, names(files.Get()))
	assert.Len(t, recorder.Errors, 2)
}

func TestClearEmptiesStagingAndSessionDocs(t *testing.T) {
	ctx := context.Background()
	staging, files, sessionDocs, recorder := newTestStaging()

	staging.Select(models.StagedFile{Name: "a.txt"})
	sessionDocs.Set([]*models.DocumentRecord{{ID: "doc1"}})

	staging.Clear(ctx)

	assert.Empty(t, files.Get())
	assert.Empty(t, sessionDocs.Get())
	assert.Equal(t, []string{"All files removed"}, recorder.Errors)
}

func names(files []models.StagedFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}
