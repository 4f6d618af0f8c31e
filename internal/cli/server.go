package cli

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/propasset/propd/internal/config"
	"github.com/propasset/propd/internal/core/asset"
	"github.com/propasset/propd/internal/core/balances"
	"github.com/propasset/propd/internal/core/events"
	"github.com/propasset/propd/internal/server"
	"github.com/propasset/propd/internal/storage/database"
	"github.com/propasset/propd/internal/storage/database/pebble"
	"github.com/propasset/propd/internal/storage/history"
	"github.com/propasset/propd/internal/storage/ledgerstore"
)

var (
	// Server flags
	port     int
	bindAddr string
)

// serverCmd represents the server command (default action)
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the propd ledger daemon",
	Long: `Start the propd daemon which provides:
- HTTP JSON-RPC API for ledger operations and queries
- WebSocket event stream
- Health check endpoint`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Running propd with no subcommand starts the server.
	rootCmd.RunE = serverCmd.RunE

	serverCmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	serverCmd.Flags().StringVar(&bindAddr, "bind", "", "address to bind to (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if bindAddr != "" {
		cfg.Server.BindAddr = bindAddr
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	store, err := ledgerstore.Open(db, cfg.Database.CacheSize)
	if err != nil {
		return fmt.Errorf("opening ledger store: %w", err)
	}

	book := balances.NewBook()
	for _, alloc := range cfg.Genesis.Allocations {
		book.Deposit(alloc.Account, alloc.Balance)
	}

	bus := events.NewBus()

	var journal *history.Journal
	if cfg.Journal.Enabled {
		journal, err = history.Open(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer journal.Close()
	}

	engine := asset.NewEngine(store, store.MainOwners(), asset.EngineConfig{
		Gateway: book,
		Sink:    bus,
	})

	handler := server.NewHandler(engine, book, journal, Version)
	stream := server.NewEventStream(bus)
	srv := server.New(handler, stream, cfg.Server.BindAddr, cfg.Server.Port)

	if !quiet {
		fmt.Printf("propd %s\n", Version)
		fmt.Printf("  - JSON-RPC:     http://localhost:%d/\n", cfg.Server.Port)
		fmt.Printf("  - Event stream: ws://localhost:%d/ws\n", cfg.Server.Port)
		fmt.Printf("  - Health check: http://localhost:%d/health\n", cfg.Server.Port)
		fmt.Printf("  - Database:     %s\n", cfg.Database.Backend)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	unsubscribe := func() {}
	if journal != nil {
		ch, cancel := bus.Subscribe(256)
		unsubscribe = cancel
		g.Go(func() error {
			journal.Follow(ch)
			return nil
		})
	}

	g.Go(srv.ListenAndServe)

	g.Go(func() error {
		<-ctx.Done()
		log.Println("shutting down")
		unsubscribe()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openDatabase(cfg *config.Config) (database.DB, error) {
	switch cfg.Database.Backend {
	case config.BackendPebble:
		return pebble.Open(cfg.Database.Path)
	case config.BackendMemory:
		return database.NewMemoryDB(), nil
	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.Database.Backend)
	}
}
