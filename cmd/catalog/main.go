// Command catalog is a terminal client for the product catalog. It hosts one
// catalog store over the configured remote or local backend.
//
// Usage:
//
//	catalog [-config file] list [-search s] [-category c] [-max-price p] [-page n]
//	catalog [-config file] add -name n [-price p] [-description d] [-expires YYYY-MM-DD] [-category c] [-image url]
//	catalog [-config file] update [flags of add] <id>
//	catalog [-config file] delete <id>
//	catalog [-config file] categories
//
// With -config - the configuration is read from stdin.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	contracts "github.com/murkotick/catalog-store/internal/app/product/contracts"
	"github.com/murkotick/catalog-store/internal/app/product/catalog"
	"github.com/murkotick/catalog-store/internal/app/product/repo/local"
	"github.com/murkotick/catalog-store/internal/app/product/repo/remote"
	"github.com/murkotick/catalog-store/internal/pkg/config"
	"github.com/murkotick/catalog-store/internal/pkg/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// app is what every subcommand works with.
type app struct {
	store  *catalog.Store
	remote *remote.Client // nil for the local backend
	out    io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", os.Getenv("CATALOG_CONFIG"), `path to a YAML or JSON config file, "-" for stdin`)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: catalog [-config file] <list|add|update|delete|categories> [flags]")
		return 2
	}

	vc, err := config.Open(*configFile, stdin, config.DefaultConfig())
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	cfg := vc.Get()

	logger, _, err := logging.New(stderr, cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "logging: %v\n", err)
		return 1
	}

	a, closeBackend, err := open(cfg, logger, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	defer closeBackend()

	a.store.Load(ctx)
	if msg := a.store.Err(); msg != "" {
		fmt.Fprintln(stderr, msg)
		return 1
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "list":
		err = a.list(rest)
	case "add":
		err = a.add(ctx, rest)
	case "update":
		err = a.update(ctx, rest)
	case "delete":
		err = a.remove(ctx, rest)
	case "categories":
		err = a.categories(ctx)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if msg := a.store.Err(); msg != "" {
		fmt.Fprintln(stderr, msg)
		return 1
	}
	return 0
}

func open(cfg *config.Config, logger *slog.Logger, out io.Writer) (*app, func(), error) {
	var (
		backend contracts.BackingStore
		client  *remote.Client
		closeFn = func() {}
	)

	switch cfg.Backend {
	case config.BackendRemote:
		client = remote.NewClient(cfg.Remote.BaseURL,
			remote.WithHTTPClient(&http.Client{Timeout: cfg.Remote.Timeout}),
			remote.WithLogger(logger),
		)
		backend = client
	case config.BackendLocal:
		slot, err := local.OpenLevelDB(cfg.Local.Path)
		if err != nil {
			return nil, nil, err
		}
		backend = local.New(slot, cfg.Local.Key)
		closeFn = func() { _ = slot.Close() }
	default:
		return nil, nil, fmt.Errorf("catalog backend must be %s or %s, got %q",
			config.BackendRemote, config.BackendLocal, cfg.Backend)
	}

	store := catalog.New(backend,
		catalog.WithLogger(logger),
		catalog.WithPageSize(cfg.Catalog.PageSize),
	)
	return &app{store: store, remote: client, out: out}, closeFn, nil
}
