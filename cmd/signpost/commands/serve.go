package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RobertWHurst/signpost"
	"github.com/RobertWHurst/signpost/metrics"
	natsconnection "github.com/RobertWHurst/signpost/nats-connection"
	websocketconnection "github.com/RobertWHurst/signpost/websocket-connection"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const (
	bundlePath  = "/_signpost/bundle"
	metricsPath = "/_signpost/metrics"
)

func (c *cli) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route bundle and resolve paths over HTTP",
		Long: `Start an HTTP server for the routes of the route definition file.

  GET /_signpost/bundle    The encoded bundle, over HTTP or a WebSocket
  GET /_signpost/metrics   Prometheus metrics
  *   /...                 The route matching the request, as JSON

When a NATS url is set the bundle is also published to NATS under the
service name, for processes using an Interplexer.

Examples:
  signpost serve --listen :9000
  SIGNPOST_NATS=nats://localhost:4222 signpost serve`,
		Args: cobra.NoArgs,
		RunE: c.runServe,
	}

	cmd.Flags().String("listen", ":8080", "Address to listen on")
	cmd.Flags().String("nats", "", "NATS url to publish the bundle to")
	_ = c.settings.BindPFlag("listen", cmd.Flags().Lookup("listen"))
	_ = c.settings.BindPFlag("nats", cmd.Flags().Lookup("nats"))

	return cmd
}

func (c *cli) runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	codec, err := codecFor(c.settings.GetString("format"))
	if err != nil {
		return err
	}

	router, err := c.loadRouter()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Payloads are rebound here, so this must happen before the bundle is
	// published and read from NATS goroutines.
	handler := newServeHandler(router, codec, prometheus.NewRegistry())

	if natsURL := c.settings.GetString("nats"); natsURL != "" {
		conn, err := nats.Connect(natsURL)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer conn.Close()

		connection := natsconnection.New(conn)
		connection.Logger = logger

		service := c.settings.GetString("service")
		if _, err := publishBundle(router, codec, service, connection, logger); err != nil {
			return err
		}
		logger.Info("published bundle", "service", service, "nats", natsURL)
	}

	server := &http.Server{
		Addr:              c.settings.GetString("listen"),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("serving routes", "listen", server.Addr, "routes", len(router.Routes()))
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func publishBundle(router *signpost.Router, codec signpost.BundleCodec, service string, connection signpost.InterplexerConnection, logger *slog.Logger) (*signpost.Interplexer, error) {
	interplexer := signpost.NewInterplexer(service, codec)
	interplexer.Logger = logger
	if err := interplexer.SetConnection(connection); err != nil {
		return nil, err
	}
	if err := interplexer.Publish(router); err != nil {
		return nil, fmt.Errorf("failed to publish bundle: %w", err)
	}
	return interplexer, nil
}

// resolveHandler answers a request with the route it matched.
type resolveHandler struct {
	controller string
}

func (h *resolveHandler) ControllerName() string {
	return h.controller
}

func (h *resolveHandler) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	route, _ := signpost.RouteFromRequest(req)

	res.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(res).Encode(MatchOutput{
		Route:      route.Name(),
		Method:     route.Method(),
		Params:     signpost.ParamsFromRequest(req),
		Controller: h.controller,
	})
}

func newServeHandler(router *signpost.Router, codec signpost.BundleCodec, registry *prometheus.Registry) http.Handler {
	for _, route := range router.Routes() {
		route.Bind(&resolveHandler{controller: controllerName(route)})
	}
	router.SetObserver(metrics.NewObserver(metrics.WithRegistry(registry)))

	mux := http.NewServeMux()
	mux.Handle(bundlePath, websocketconnection.NewHandler(router, codec))
	mux.Handle(metricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/", router)
	return mux
}
