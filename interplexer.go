package signpost

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Interplexer shares route bundles between processes over an
// InterplexerConnection. A process that owns routes publishes its router
// under a service name; other processes fetch the bundle, or watch for
// announcements, and compile equivalent routes for matching and link
// generation.
type Interplexer struct {
	mu sync.Mutex

	ID         string
	Service    string
	Codec      BundleCodec
	Connection InterplexerConnection
	Logger     *slog.Logger

	publishedRouter *Router
	watchHandler    func(interplexerID string, routes []*Route)
	watchOptions    []RouteOption
}

// NewInterplexer creates an interplexer for a service. Bundles are encoded
// with codec.
func NewInterplexer(service string, codec BundleCodec) *Interplexer {
	return &Interplexer{
		ID:      uuid.NewString(),
		Service: service,
		Codec:   codec,
		Logger:  slog.Default(),
	}
}

// SetConnection binds the interplexer to a connection. If a connection was
// already set its bindings are removed, and any published router or watch
// handler is bound to the new connection. A nil connection is rejected and
// the existing bindings are left in place.
func (i *Interplexer) SetConnection(connection InterplexerConnection) error {
	if connection == nil {
		return fmt.Errorf("interplexer %s: connection must not be nil", i.ID)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.Connection != nil && i.publishedRouter != nil {
		if err := i.Connection.UnbindBundleRequest(i.Service); err != nil {
			return err
		}
	}
	if i.Connection != nil && i.watchHandler != nil {
		if err := i.Connection.UnbindBundleAnnounce(i.Service); err != nil {
			return err
		}
	}

	i.Connection = connection

	if i.publishedRouter != nil {
		if err := i.bindPublishedRouter(); err != nil {
			return err
		}
	}
	if i.watchHandler != nil {
		if err := i.Connection.BindBundleAnnounce(i.Service, i.handleBundleAnnounce); err != nil {
			return err
		}
	}

	return nil
}

// Publish serves the router's bundle to bundle requests and announces it to
// watchers. Publish again after adding routes to announce the new bundle.
func (i *Interplexer) Publish(router *Router) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.Connection == nil {
		return fmt.Errorf("interplexer %s has no connection", i.ID)
	}

	if i.publishedRouter == nil {
		i.publishedRouter = router
		return i.bindPublishedRouter()
	}

	i.publishedRouter = router
	return i.announce()
}

func (i *Interplexer) bindPublishedRouter() error {
	if err := i.Connection.BindBundleRequest(i.Service, i.handleBundleRequest); err != nil {
		return err
	}
	return i.announce()
}

func (i *Interplexer) announce() error {
	bundle, err := i.Codec.Marshal(i.publishedRouter.Bundle())
	if err != nil {
		return err
	}
	return i.Connection.AnnounceBundle(i.Service, i.ID, bundle)
}

// Fetch requests the service's bundle and compiles it into a router.
func (i *Interplexer) Fetch(ctx context.Context, opts ...RouteOption) (*Router, error) {
	i.mu.Lock()
	connection := i.Connection
	i.mu.Unlock()

	if connection == nil {
		return nil, fmt.Errorf("interplexer %s has no connection", i.ID)
	}

	bundle, err := connection.RequestBundle(ctx, i.Service)
	if err != nil {
		return nil, err
	}

	descriptors, err := i.Codec.Unmarshal(bundle)
	if err != nil {
		return nil, err
	}

	router := NewRouter(opts...)
	if err := router.AddBundle(descriptors); err != nil {
		return nil, err
	}
	return router, nil
}

// Watch calls handler with the compiled routes of every bundle announced for
// the service by another interplexer. Announcements from this interplexer are
// ignored. The options are applied to every compiled route.
func (i *Interplexer) Watch(handler func(interplexerID string, routes []*Route), opts ...RouteOption) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.Connection == nil {
		return fmt.Errorf("interplexer %s has no connection", i.ID)
	}

	i.watchHandler = handler
	i.watchOptions = opts
	return i.Connection.BindBundleAnnounce(i.Service, i.handleBundleAnnounce)
}

func (i *Interplexer) handleBundleRequest() ([]byte, error) {
	i.mu.Lock()
	router := i.publishedRouter
	i.mu.Unlock()

	return i.Codec.Marshal(router.Bundle())
}

func (i *Interplexer) handleBundleAnnounce(interplexerID string, bundle []byte) {
	if interplexerID == i.ID {
		return
	}

	i.mu.Lock()
	handler := i.watchHandler
	opts := i.watchOptions
	i.mu.Unlock()

	if handler == nil {
		return
	}

	descriptors, err := i.Codec.Unmarshal(bundle)
	if err != nil {
		i.Logger.Warn("failed to decode announced bundle",
			"service", i.Service, "from", interplexerID, "error", err)
		return
	}

	routes, err := CompileBundle(descriptors, opts...)
	if err != nil {
		i.Logger.Warn("failed to compile announced bundle",
			"service", i.Service, "from", interplexerID, "error", err)
		return
	}

	handler(interplexerID, routes)
}
