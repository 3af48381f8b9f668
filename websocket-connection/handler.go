// Package websocketconnection serves route bundles over WebSockets.
//
// A client that connects receives the encoded bundle as its first message.
// Every message the client sends afterwards is answered with the bundle
// again, so long lived clients can refresh without reconnecting. Requests
// that are not WebSocket upgrades receive the bundle as a plain HTTP
// response.
package websocketconnection

import (
	"net/http"

	"github.com/RobertWHurst/signpost"
	"github.com/coder/websocket"
)

// BundleSource supplies the bundle to send. *signpost.Router implements it.
type BundleSource interface {
	Bundle() []*signpost.RouteDescriptor
}

// Handler is an http.Handler serving a bundle.
type Handler struct {
	source  BundleSource
	codec   signpost.BundleCodec
	origins []string
}

var _ http.Handler = &Handler{}

// NewHandler creates a handler serving source's bundle encoded with codec.
func NewHandler(source BundleSource, codec signpost.BundleCodec) *Handler {
	return &Handler{
		source: source,
		codec:  codec,
	}
}

// SetOrigins configures the allowed origin patterns for WebSocket
// connections. If not set, all origins are allowed (equivalent to
// []string{"*"}).
//
// Origin patterns support wildcards, for example:
//   - "https://example.com" - exact match
//   - "https://*.example.com" - subdomain wildcard
//   - "*" - allow all origins (default)
func (h *Handler) SetOrigins(origins []string) {
	h.origins = origins
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	if req.Header.Get("Upgrade") != "websocket" {
		h.serveBundle(res)
		return
	}

	origins := h.origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	conn, err := websocket.Accept(res, req, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		return
	}
	defer func() { _ = conn.CloseNow() }()

	ctx := req.Context()
	for {
		data, err := h.codec.Marshal(h.source.Bundle())
		if err != nil {
			_ = conn.Close(websocket.StatusInternalError, "failed to encode bundle")
			return
		}
		if err := conn.Write(ctx, messageType(h.codec), data); err != nil {
			return
		}
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}

func (h *Handler) serveBundle(res http.ResponseWriter) {
	data, err := h.codec.Marshal(h.source.Bundle())
	if err != nil {
		http.Error(res, "failed to encode bundle", http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", h.codec.ContentType())
	_, _ = res.Write(data)
}

func messageType(codec signpost.BundleCodec) websocket.MessageType {
	if codec.ContentType() == "application/json" {
		return websocket.MessageText
	}
	return websocket.MessageBinary
}
