package natsconnection

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/RobertWHurst/signpost"
	jsoncodec "github.com/RobertWHurst/signpost/codec/json"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespace(t *testing.T) {
	assert.Equal(t, "signpost.bundle.announce.api", namespace("bundle.announce", "api"))
	assert.Equal(t, "signpost.bundle.request", namespace("bundle.request"))
}

// connect dials the server in NATS_URL, skipping the test when it is unset.
func connect(t *testing.T) *nats.Conn {
	t.Helper()
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set")
	}
	conn, err := nats.Connect(url)
	require.NoError(t, err)
	t.Cleanup(conn.Close)
	return conn
}

func TestConnectionFetchesPublishedBundle(t *testing.T) {
	connection := New(connect(t))
	service := "test-" + time.Now().Format("150405.000000")

	router := signpost.NewRouter()
	router.MustAddRoute("GET", "user", "/users/<id>", nil, nil)

	publisher := signpost.NewInterplexer(service, jsoncodec.Codec{})
	require.NoError(t, publisher.SetConnection(connection))
	require.NoError(t, publisher.Publish(router))
	defer func() { _ = connection.UnbindBundleRequest(service) }()

	consumer := signpost.NewInterplexer(service, jsoncodec.Codec{})
	require.NoError(t, consumer.SetConnection(New(connect(t))))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	fetched, err := consumer.Fetch(ctx)
	require.NoError(t, err)

	_, params, ok := fetched.Find("/users/9", "GET")
	require.True(t, ok)
	assert.Equal(t, signpost.RouteParams{"id": "9"}, params)
}

func TestConnectionAnnouncesBundles(t *testing.T) {
	connection := New(connect(t))
	service := "test-" + time.Now().Format("150405.000000")

	received := make(chan []byte, 1)
	require.NoError(t, connection.BindBundleAnnounce(service, func(interplexerID string, bundle []byte) {
		if interplexerID == "peer" {
			received <- bundle
		}
	}))
	defer func() { _ = connection.UnbindBundleAnnounce(service) }()
	require.NoError(t, connection.NatsConnection.Flush())

	require.NoError(t, connection.AnnounceBundle(service, "peer", []byte("[]")))

	select {
	case bundle := <-received:
		assert.Equal(t, []byte("[]"), bundle)
	case <-time.After(2 * time.Second):
		t.Fatal("announcement not received")
	}
}
