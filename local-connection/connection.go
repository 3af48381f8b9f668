// Package localconnection is an in-process signpost.InterplexerConnection.
// It connects interplexers that share a process, which is useful for tests
// and for embedding several services in one binary.
package localconnection

import (
	"sync"

	"github.com/RobertWHurst/signpost"
)

type Connection struct {
	mu               sync.Mutex
	announceHandlers map[string][]func(string, []byte)
	requestHandlers  map[string]func() ([]byte, error)
}

var _ signpost.InterplexerConnection = &Connection{}

func New() *Connection {
	return &Connection{
		announceHandlers: map[string][]func(string, []byte){},
		requestHandlers:  map[string]func() ([]byte, error){},
	}
}
