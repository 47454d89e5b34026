package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	contracts "github.com/murkotick/catalog-store/internal/app/product/contracts"
	"github.com/murkotick/catalog-store/internal/app/product/catalog"
	"github.com/murkotick/catalog-store/internal/app/product/queries/get_product"
	"github.com/murkotick/catalog-store/internal/app/product/queries/list_products"
	"github.com/murkotick/catalog-store/internal/app/product/repo"
	"github.com/murkotick/catalog-store/internal/app/product/repo/local"
	"github.com/murkotick/catalog-store/internal/app/product/repo/spannerstore"
	"github.com/murkotick/catalog-store/internal/pkg/clock"
	committer "github.com/murkotick/catalog-store/internal/pkg/committer"
	"github.com/murkotick/catalog-store/internal/pkg/config"
	"github.com/murkotick/catalog-store/internal/pkg/logging"
	httpproduct "github.com/murkotick/catalog-store/internal/transport/http/product"
)

func main() {
	configFile := flag.String("config", os.Getenv("CATALOG_CONFIG"), `path to a YAML or JSON config file, "-" for stdin`)
	flag.Parse()

	vc, err := config.Open(*configFile, os.Stdin, config.ServerDefaults())
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	cfg := vc.Get()

	logger, level, err := logging.New(os.Stderr, cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)
	logging.Follow(vc, level, logger)
	vc.Watch()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	clk := clock.RealClock{}

	backend, closeBackend, err := openBackend(ctx, cfg, clk)
	if err != nil {
		return err
	}
	defer closeBackend()

	store := catalog.New(backend,
		catalog.WithClock(clk),
		catalog.WithLogger(logger),
		catalog.WithPageSize(cfg.Catalog.PageSize),
	)
	store.Load(ctx)
	if err := store.LastError(); err != nil {
		return err
	}

	h := httpproduct.NewHandler(store, httpproduct.Queries{
		Get:  get_product.NewHandler(store),
		List: list_products.NewHandler(store),
	})

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: httpproduct.NewRouter(h, logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "addr", cfg.Server.Addr, "backend", cfg.Backend, "products", store.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// openBackend builds the backing store the server persists to. The remote
// backend is rejected: the server is what remote clients talk to.
func openBackend(ctx context.Context, cfg *config.Config, clk clock.Clock) (contracts.BackingStore, func(), error) {
	switch cfg.Backend {
	case config.BackendSpanner:
		client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("spanner.NewClient: %w", err)
		}
		store := spannerstore.New(client, repo.NewProductRepo(), repo.NewOutboxRepo(), committer.NewAdapter(client), clk)
		return store, client.Close, nil

	case config.BackendLocal:
		slot, err := local.OpenLevelDB(cfg.Local.Path)
		if err != nil {
			return nil, nil, err
		}
		return local.New(slot, cfg.Local.Key, local.RequireExisting()), closer(slot), nil

	default:
		return nil, nil, fmt.Errorf("server backend must be %s or %s, got %q",
			config.BackendSpanner, config.BackendLocal, cfg.Backend)
	}
}

func closer(c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			slog.Warn("close backend", "err", err)
		}
	}
}
