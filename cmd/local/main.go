package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kestrelgames/onboarding-core-go/internal/account"
	"github.com/kestrelgames/onboarding-core-go/internal/catalog"
	"github.com/kestrelgames/onboarding-core-go/internal/credential"
	"github.com/kestrelgames/onboarding-core-go/internal/identity"
	"github.com/kestrelgames/onboarding-core-go/internal/identity/repo"
	"github.com/kestrelgames/onboarding-core-go/internal/onboarding"
	"github.com/kestrelgames/onboarding-core-go/internal/router"
	"github.com/kestrelgames/onboarding-core-go/pkg/utilities"
)

// Local single-player entrypoint: same flow as cmd/api but persisted into an
// embedded BadgerDB directory instead of a database server.
func main() {
	_ = godotenv.Load()

	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting onboarding-core-go (local mode)")

	if err := catalog.Validate(); err != nil {
		sugar.Fatalf("catalog validation: %v", err)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			sugar.Fatalf("resolve home dir: %v", err)
		}
		dataDir = filepath.Join(home, ".onboarding-core")
	}
	slot, err := repo.OpenBadgerSlot(repo.DefaultBadgerConfig(dataDir))
	if err != nil {
		sugar.Fatalf("open local store: %v", err)
	}
	defer slot.Close()

	store := identity.NewStore(slot, sugar)
	creds := credential.NewService(slot, credential.ConfigFromEnv(), sugar)
	accounts := account.NewService(store, nil, account.AdminAccountsFromEnv(), sugar)

	resolveCtx, cancelResolve := context.WithTimeout(context.Background(), 10*time.Second)
	resolution, err := onboarding.NewResolver(creds, store, accounts, sugar).Resolve(resolveCtx)
	cancelResolve()
	if err != nil {
		sugar.Fatalf("resolve session: %v", err)
	}
	sugar.Infow("session resolved", "state", resolution.State.String(), "account", resolution.AccountID)

	ctrl := onboarding.NewController(onboarding.ConfigFromEnv(), store, accounts, creds, nil, sugar, resolution)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := router.RegisterRoutes(sugar, onboarding.NewHandler(ctrl, store, sugar))
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		// local mode binds loopback only
		addr = "127.0.0.1:8431"
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	sugar.Info("service is running; press Ctrl+C to stop")

	<-ctx.Done()

	sugar.Info("shutting down")

	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
