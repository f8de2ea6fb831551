package collector

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ainvaltin/httpsrv"
	"golang.org/x/sync/errgroup"

	"github.com/cardano-preview/walletdemo/logger"
)

// DefaultServerAddr is the listen address used when none is configured.
const DefaultServerAddr = ":4000"

type Config struct {
	// ServerAddr is the http listen address, DefaultServerAddr when empty.
	ServerAddr string
	// MongoURI is the optional durable store connection string. When
	// empty the service runs on process local storage.
	MongoURI string
	Logger   *slog.Logger
}

/*
Run starts the transaction collector service and blocks until ctx is
cancelled or the server fails.

The durable store is selected at startup: when a mongo URI is configured
but the server is unreachable the service degrades to process local
storage instead of failing, only the health endpoint reveals the
difference.
*/
func Run(ctx context.Context, config *Config) error {
	log := config.Logger
	if log == nil {
		log = slog.Default()
	}
	addr := config.ServerAddr
	if addr == "" {
		addr = DefaultServerAddr
	}

	store, mongoConnected := selectStore(ctx, config.MongoURI, log)
	defer func() {
		if s, ok := store.(*mongoTxStore); ok {
			if err := s.Close(context.Background()); err != nil {
				log.Warn("closing mongo client", logger.Error(err))
			}
		}
	}()

	api := &restAPI{store: store, mongoConnected: mongoConnected, log: log}
	server := http.Server{
		Addr:              addr,
		Handler:           api.Router(),
		ReadTimeout:       3 * time.Second,
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("collector listening", slog.String("addr", addr), logger.Source(store.Name()))
		return httpsrv.Run(ctx, server, httpsrv.ShutdownTimeout(5*time.Second))
	})
	return g.Wait()
}

func selectStore(ctx context.Context, mongoURI string, log *slog.Logger) (TxStore, bool) {
	if mongoURI == "" {
		return NewMemoryTxStore(), false
	}
	store, err := NewMongoTxStore(ctx, mongoURI)
	if err != nil {
		log.Warn("durable store unreachable, falling back to in-memory storage", logger.Error(err))
		return NewMemoryTxStore(), false
	}
	return store, true
}
