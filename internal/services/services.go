// Package services implements the file & document synchronization core:
// session gateway, identity verifier, file staging, upload pipeline, and
// the document query/mutation services. Remote collaborators are injected
// as the contracts defined under internal/remote.
package services

import (
	"sync"

	sc "github.com/eshmelev/dropspace/internal/config"
	"github.com/eshmelev/dropspace/internal/localstore"
	"github.com/eshmelev/dropspace/internal/logging"
	"github.com/eshmelev/dropspace/internal/models"
	"github.com/eshmelev/dropspace/internal/notify"
	"github.com/eshmelev/dropspace/internal/remote/auth"
	"github.com/eshmelev/dropspace/internal/remote/docstore"
	"github.com/eshmelev/dropspace/internal/remote/objectstore"
	"github.com/eshmelev/dropspace/internal/views"
)

// UI routes the verifier cares about.
const (
	RouteAuthenticate = "/authenticate"
	RouteDashboard    = "/dashboard"
)

// Navigator abstracts the UI's current location so the verifier can force
// a redirect without knowing the rendering layer.
type Navigator interface {
	Location() string
	Replace(path string)
}

// MemoryNavigator is a Navigator for headless consumers (CLI, tests).
type MemoryNavigator struct {
	mu       sync.Mutex
	location string
}

func NewMemoryNavigator(location string) *MemoryNavigator {
	return &MemoryNavigator{location: location}
}

func (n *MemoryNavigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

func (n *MemoryNavigator) Replace(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = path
}

// Services bundles the core components with the four observable views
// consumed by the UI layer.
type Services struct {
	Gateway  *Gateway
	Verifier *Verifier
	Staging  *Staging
	Uploader *Uploader
	Query    *Query
	Mutation *Mutation

	StagedFiles      *views.View[[]models.StagedFile]
	SessionDocuments *views.View[[]*models.DocumentRecord]
	GlobalDocuments  *views.View[[]*models.DocumentRecord]
	AllDocuments     *views.View[[]*models.DocumentRecord]
}

// New wires the components against the given collaborators.
func New(
	config *sc.Config,
	authSvc auth.Service,
	objects objectstore.Store,
	docs docstore.Store,
	slot *localstore.Slot,
	nav Navigator,
	notifier notify.Notifier,
	log logging.Logger,
) *Services {
	stagedFiles := views.New[[]models.StagedFile](nil)
	sessionDocs := views.New[[]*models.DocumentRecord](nil)
	globalDocs := views.New[[]*models.DocumentRecord](nil)
	allDocs := views.New[[]*models.DocumentRecord](nil)

	verifier := NewVerifier(authSvc, slot, nav, log)
	gateway := NewGateway(authSvc, slot, verifier, log)

	return &Services{
		Gateway:  gateway,
		Verifier: verifier,
		Staging:  NewStaging(stagedFiles, sessionDocs, notifier, log),
		Uploader: NewUploader(config, authSvc, objects, docs, gateway, slot, sessionDocs, log),
		Query:    NewQuery(config, docs, objects, allDocs, log),
		Mutation: NewMutation(config, objects, docs, log),

		StagedFiles:      stagedFiles,
		SessionDocuments: sessionDocs,
		GlobalDocuments:  globalDocs,
		AllDocuments:     allDocs,
	}
}
