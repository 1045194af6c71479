package services

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/eshmelev/dropspace/internal/common"
	sc "github.com/eshmelev/dropspace/internal/config"
	"github.com/eshmelev/dropspace/internal/filex"
	"github.com/eshmelev/dropspace/internal/localstore"
	"github.com/eshmelev/dropspace/internal/logging"
	"github.com/eshmelev/dropspace/internal/mimex"
	"github.com/eshmelev/dropspace/internal/models"
	"github.com/eshmelev/dropspace/internal/remote/auth"
	"github.com/eshmelev/dropspace/internal/remote/docstore"
	"github.com/eshmelev/dropspace/internal/remote/objectstore"
	"github.com/eshmelev/dropspace/internal/views"
)

// profilePrefKey is the preference slot holding the profile picture URL.
const profilePrefKey = "profile"

// Uploader runs the upload pipeline: binary to the object store first, then
// the metadata record, then the session view. There is no compensating
// delete when a later step fails, so the object store may hold orphans.
type Uploader struct {
	config      *sc.Config
	auth        auth.Service
	objects     objectstore.Store
	docs        docstore.Store
	gateway     *Gateway
	slot        *localstore.Slot
	sessionDocs *views.View[[]*models.DocumentRecord]
	log         logging.Logger
}

func NewUploader(
	config *sc.Config,
	authSvc auth.Service,
	objects objectstore.Store,
	docs docstore.Store,
	gateway *Gateway,
	slot *localstore.Slot,
	sessionDocs *views.View[[]*models.DocumentRecord],
	log logging.Logger,
) *Uploader {
	return &Uploader{
		config:      config,
		auth:        authSvc,
		objects:     objects,
		docs:        docs,
		gateway:     gateway,
		slot:        slot,
		sessionDocs: sessionDocs,
		log:         log,
	}
}

// documentID builds a fresh document id from three random tokens.
func documentID() (string, error) {
	var id string
	for i := 0; i < 3; i++ {
		token, err := common.Token()
		if err != nil {
			return "", err
		}
		id += token
	}
	return id, nil
}

// open yields the staged file's content, opening Path lazily when the file
// was staged from disk.
func open(file models.StagedFile) (io.Reader, func(), error) {
	if file.Body != nil {
		return file.Body, func() {}, nil
	}
	if file.Path == "" {
		return nil, nil, fmt.Errorf("staged file %q has no content", file.Name)
	}
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", file.Path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

// Upload pushes one staged file through the pipeline and returns the
// session document view with the new record appended.
func (u *Uploader) Upload(ctx context.Context, file models.StagedFile) ([]*models.DocumentRecord, error) {
	id, err := documentID()
	if err != nil {
		return nil, err
	}
	mimeType := mimex.Normalize(file.Name, file.MimeType)

	body, closeBody, err := open(file)
	if err != nil {
		return nil, err
	}
	defer closeBody()

	put, err := u.objects.Put(ctx, u.config.S3Bucket, id, body, file.Size)
	if err != nil {
		return nil, err
	}

	// Owner resolution doubles as the session check and triggers a
	// verification pass over the local identity cache.
	identity, err := u.gateway.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, common.ErrUnauthorized
	}

	viewURL, err := u.objects.ViewURL(ctx, put.BucketID, put.ObjectID)
	if err != nil {
		return nil, err
	}
	previewURL, err := u.objects.PreviewURL(ctx, put.BucketID, put.ObjectID)
	if err != nil {
		return nil, err
	}
	accessCode, err := common.Token()
	if err != nil {
		return nil, err
	}
	filename, extension := filex.SplitName(file.Name)

	created, err := u.docs.Create(ctx, u.config.DatabaseID, u.config.CollectionID, id, models.DocumentFields{
		OwnerID:    identity.ID,
		Filename:   filename,
		Extension:  extension,
		MimeType:   mimeType,
		SizeBytes:  put.SizeOriginal,
		SizeLabel:  filex.FormatSize(put.SizeOriginal),
		ViewURL:    viewURL,
		PreviewURL: previewURL,
		AccessCode: accessCode,
		Public:     false,
		CreatedAt:  put.CreatedAt,
		UpdatedAt:  put.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}

	u.log.Info(ctx, "document uploaded", "id", created.ID, "owner", identity.ID, "size", put.SizeOriginal)

	return u.sessionDocs.Update(func(docs []*models.DocumentRecord) []*models.DocumentRecord {
		next := make([]*models.DocumentRecord, 0, len(docs)+1)
		next = append(next, docs...)
		return append(next, created)
	}), nil
}

// UploadProfile stores a profile picture under a short random id and saves
// its view URL into the identity's preferences. The updated identity
// replaces the cached one.
func (u *Uploader) UploadProfile(ctx context.Context, file models.StagedFile) (string, error) {
	id, err := common.Token()
	if err != nil {
		return "", err
	}

	body, closeBody, err := open(file)
	if err != nil {
		return "", err
	}
	defer closeBody()

	put, err := u.objects.Put(ctx, u.config.S3Bucket, id, body, file.Size)
	if err != nil {
		return "", err
	}
	viewURL, err := u.objects.ViewURL(ctx, put.BucketID, put.ObjectID)
	if err != nil {
		return "", err
	}

	token, err := u.slot.Token(ctx)
	if err != nil {
		return "", err
	}
	identity, err := u.auth.UpdatePreferences(ctx, token, map[string]string{profilePrefKey: viewURL})
	if err != nil {
		return "", err
	}
	if err := u.slot.SaveIdentity(ctx, identity); err != nil {
		return "", err
	}
	return viewURL, nil
}
