package natsconnection

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"
)

type BundleResponse struct {
	Bundle []byte `json:"bundle,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (c *Connection) RequestBundle(ctx context.Context, service string) ([]byte, error) {
	msg, err := c.NatsConnection.RequestWithContext(ctx, namespace("bundle.request", service), nil)
	if err != nil {
		return nil, err
	}

	response := &BundleResponse{}
	if err := json.Unmarshal(msg.Data, response); err != nil {
		return nil, err
	}
	if response.Error != "" {
		return nil, errors.New(response.Error)
	}
	return response.Bundle, nil
}

func (c *Connection) BindBundleRequest(service string, handler func() ([]byte, error)) error {
	sub, err := c.NatsConnection.Subscribe(namespace("bundle.request", service), func(msg *nats.Msg) {
		response := &BundleResponse{}
		if bundle, err := handler(); err != nil {
			response.Error = err.Error()
		} else {
			response.Bundle = bundle
		}

		responseBytes, err := json.Marshal(response)
		if err != nil {
			c.Logger.Error("failed to encode bundle response", "service", service, "error", err)
			return
		}
		if err := msg.Respond(responseBytes); err != nil {
			c.Logger.Warn("failed to respond to bundle request", "service", service, "error", err)
		}
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	previous, hasPrevious := c.unbindBundleRequest[service]
	c.unbindBundleRequest[service] = sub.Unsubscribe
	c.mu.Unlock()

	if hasPrevious {
		return previous()
	}
	return nil
}

func (c *Connection) UnbindBundleRequest(service string) error {
	c.mu.Lock()
	unbind, ok := c.unbindBundleRequest[service]
	delete(c.unbindBundleRequest, service)
	c.mu.Unlock()

	if !ok {
		return nil
	}
	return unbind()
}
