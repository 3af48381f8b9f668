package natsconnection

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
)

type BundleAnnouncement struct {
	InterplexerID string `json:"interplexerId"`
	Bundle        []byte `json:"bundle"`
}

func (c *Connection) AnnounceBundle(service string, interplexerID string, bundle []byte) error {
	messageBytes, err := json.Marshal(&BundleAnnouncement{
		InterplexerID: interplexerID,
		Bundle:        bundle,
	})
	if err != nil {
		return err
	}
	return c.NatsConnection.Publish(namespace("bundle.announce", service), messageBytes)
}

func (c *Connection) BindBundleAnnounce(service string, handler func(interplexerID string, bundle []byte)) error {
	sub, err := c.NatsConnection.Subscribe(namespace("bundle.announce", service), func(msg *nats.Msg) {
		announcement := &BundleAnnouncement{}
		if err := json.Unmarshal(msg.Data, announcement); err != nil {
			c.Logger.Warn("dropping malformed bundle announcement",
				"subject", msg.Subject, "error", err)
			return
		}
		handler(announcement.InterplexerID, announcement.Bundle)
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.unbindBundleAnnounce[service] = append(c.unbindBundleAnnounce[service], sub.Unsubscribe)
	c.mu.Unlock()

	return nil
}

func (c *Connection) UnbindBundleAnnounce(service string) error {
	c.mu.Lock()
	unbinders := c.unbindBundleAnnounce[service]
	delete(c.unbindBundleAnnounce, service)
	c.mu.Unlock()

	for _, unbind := range unbinders {
		if err := unbind(); err != nil {
			return err
		}
	}
	return nil
}
