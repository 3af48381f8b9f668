package localconnection

import (
	"context"
	"errors"
)

// ErrNoResponders is returned by RequestBundle when nothing serves the
// requested service.
var ErrNoResponders = errors.New("no responders for bundle request")

func (c *Connection) RequestBundle(ctx context.Context, service string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	handler, ok := c.requestHandlers[service]
	c.mu.Unlock()

	if !ok {
		return nil, ErrNoResponders
	}
	return handler()
}

func (c *Connection) BindBundleRequest(service string, handler func() ([]byte, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestHandlers[service] = handler
	return nil
}

func (c *Connection) UnbindBundleRequest(service string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.requestHandlers, service)
	return nil
}
