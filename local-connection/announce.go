package localconnection

func (c *Connection) AnnounceBundle(service string, interplexerID string, bundle []byte) error {
	c.mu.Lock()
	handlers := append([]func(string, []byte){}, c.announceHandlers[service]...)
	c.mu.Unlock()

	for _, handler := range handlers {
		handler(interplexerID, bundle)
	}
	return nil
}

func (c *Connection) BindBundleAnnounce(service string, handler func(interplexerID string, bundle []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.announceHandlers[service] = append(c.announceHandlers[service], handler)
	return nil
}

func (c *Connection) UnbindBundleAnnounce(service string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.announceHandlers, service)
	return nil
}
