package signpost

import "context"

// InterplexerConnection carries encoded route bundles between processes. See
// the nats-connection package for a NATS implementation and the
// local-connection package for an in-process one.
type InterplexerConnection interface {
	AnnounceBundle(service string, interplexerID string, bundle []byte) error
	BindBundleAnnounce(service string, handler func(interplexerID string, bundle []byte)) error
	UnbindBundleAnnounce(service string) error

	RequestBundle(ctx context.Context, service string) ([]byte, error)
	BindBundleRequest(service string, handler func() ([]byte, error)) error
	UnbindBundleRequest(service string) error
}
