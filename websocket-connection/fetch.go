package websocketconnection

import (
	"context"

	"github.com/RobertWHurst/signpost"
	"github.com/coder/websocket"
)

// Fetch dials a bundle handler at url, reads one bundle, and decodes it with
// codec. The url uses the ws or wss scheme.
func Fetch(ctx context.Context, url string, codec signpost.BundleCodec) ([]*signpost.RouteDescriptor, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.CloseNow() }()

	_, data, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}

	descriptors, err := codec.Unmarshal(data)
	if err != nil {
		return nil, err
	}

	_ = conn.Close(websocket.StatusNormalClosure, "")
	return descriptors, nil
}
