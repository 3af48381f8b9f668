// Package natsconnection is a signpost.InterplexerConnection backed by NATS.
// Bundles are announced with publish/subscribe and fetched with
// request/reply, on subjects namespaced by service.
package natsconnection

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/RobertWHurst/signpost"
	"github.com/nats-io/nats.go"
)

type Connection struct {
	NatsConnection *nats.Conn
	Logger         *slog.Logger

	mu                   sync.Mutex
	unbindBundleAnnounce map[string][]func() error
	unbindBundleRequest  map[string]func() error
}

var _ signpost.InterplexerConnection = &Connection{}

func New(conn *nats.Conn) *Connection {
	return &Connection{
		NatsConnection:       conn,
		Logger:               slog.Default(),
		unbindBundleAnnounce: map[string][]func() error{},
		unbindBundleRequest:  map[string]func() error{},
	}
}

// namespace builds a subject such as "signpost.bundle.announce.api".
func namespace(parts ...string) string {
	return "signpost." + strings.Join(parts, ".")
}
