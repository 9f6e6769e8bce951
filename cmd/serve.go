package cmd

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/zuumi/trading-archive-analyze/bitbank"
	"github.com/zuumi/trading-archive-analyze/server"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	port string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the trade history dashboard server" }
func (*serveCmd) Usage() string {
	return `taa serve [-p <port>]

  Serves the upload dashboard: trade history CSVs posted to it are
  analyzed and rendered with live bitbank prices.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.port, "p", "", "Port to listen on. Defaults to the SERVER_PORT environment variable.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger := logrus.New()

	cfg := server.LoadConfig()
	if cfg.Env != "development" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if c.port != "" {
		cfg.Port = c.port
	}

	quotes := bitbank.New(cfg.BitbankBaseURL)
	service := server.NewService(quotes, cfg.FetchTimeout, logger)
	handler := server.NewHandler(service, logger)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("dashboard listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
