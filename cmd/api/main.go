package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/kestrelgames/onboarding-core-go/internal/account"
	"github.com/kestrelgames/onboarding-core-go/internal/catalog"
	"github.com/kestrelgames/onboarding-core-go/internal/credential"
	"github.com/kestrelgames/onboarding-core-go/internal/identity"
	"github.com/kestrelgames/onboarding-core-go/internal/identity/repo"
	"github.com/kestrelgames/onboarding-core-go/internal/onboarding"
	"github.com/kestrelgames/onboarding-core-go/internal/router"
	"github.com/kestrelgames/onboarding-core-go/pkg/database"
	"github.com/kestrelgames/onboarding-core-go/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting onboarding-core-go")

	// authored calibration content must be coherent before anything runs
	if err := catalog.Validate(); err != nil {
		sugar.Fatalf("catalog validation: %v", err)
	}

	// init db
	cfg := database.ConfigFromEnv()
	sqlDB, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	// wrap with sqlx for convenience in repos/services
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")
	defer sqlxDB.Close()

	slot := repo.NewPostgresSlot(sqlxDB)
	ensureCtx, cancelEnsure := context.WithTimeout(context.Background(), 10*time.Second)
	if err := slot.EnsureTable(ensureCtx); err != nil {
		cancelEnsure()
		sugar.Fatalf("ensure slots table: %v", err)
	}
	cancelEnsure()

	store := identity.NewStore(slot, sugar)
	creds := credential.NewService(slot, credential.ConfigFromEnv(), sugar)
	accounts := account.NewService(store, nil, account.AdminAccountsFromEnv(), sugar)

	// reconstruct the screen a returning user resumes into from persisted
	// data alone
	resolveCtx, cancelResolve := context.WithTimeout(context.Background(), 10*time.Second)
	resolution, err := onboarding.NewResolver(creds, store, accounts, sugar).Resolve(resolveCtx)
	cancelResolve()
	if err != nil {
		sugar.Fatalf("resolve session: %v", err)
	}
	sugar.Infow("session resolved", "state", resolution.State.String(), "account", resolution.AccountID)

	ctrl := onboarding.NewController(onboarding.ConfigFromEnv(), store, accounts, creds, nil, sugar, resolution)

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sugar.Info("service is running; press Ctrl+C to stop")

	// mount http server
	handler := router.RegisterRoutes(sugar, onboarding.NewHandler(ctrl, store, sugar))
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8431"
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// run server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// ping db once more
	if err := sqlDB.PingContext(doneCtx); err != nil {
		sugar.Warnf("db ping on shutdown failed: %v", err)
	}

	// shutdown http server
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
