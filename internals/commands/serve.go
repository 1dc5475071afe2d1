package commands

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"worknest_backend/internals/configs"
	database "worknest_backend/internals/databases"
	"worknest_backend/internals/features/attendance/events"
	attendanceService "worknest_backend/internals/features/attendance/service"
	authRepo "worknest_backend/internals/features/auth/repository"
	"worknest_backend/internals/features/auth/scheduler"
	"worknest_backend/internals/helpers/dbtime"
	"worknest_backend/internals/middlewares/auth"
	routes "worknest_backend/internals/route"
	"worknest_backend/internals/seeds"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func connectPublisher(url string) events.Publisher {
	if url == "" {
		return events.NoopPublisher{}
	}
	p, err := events.ConnectRabbitPublisher(url)
	if err != nil {
		log.Printf("[ERROR] RabbitMQ unavailable, clock events disabled: %v", err)
		return events.NoopPublisher{}
	}
	return p
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := configs.Load()
	loc := dbtime.LoadLocation(cfg.Timezone)

	st, db, err := database.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.SeedFile != "" {
		if err := seeds.RunAllSeeds(ctx, st, cfg.SeedFile, true); err != nil {
			log.Printf("[ERROR] seeding from %s: %v", cfg.SeedFile, err)
		}
	}

	publisher := connectPublisher(cfg.RabbitMQURL)
	defer publisher.Close()

	sessOpts := auth.SessionOptions{TTL: cfg.SessionTTL, CookieSecure: cfg.SessionCookieSecure}
	var sessionStorage *authRepo.GormSessionStorage
	if db != nil {
		sessionStorage, err = authRepo.NewGormSessionStorage(db)
		if err != nil {
			return err
		}
		sessOpts.Storage = sessionStorage
	}

	app := NewFiberApp(routes.Deps{
		Store:    st,
		Sessions: auth.NewSessionStore(sessOpts),
		Ledger:   attendanceService.NewLedgerService(st, publisher, time.Now, loc),
	}, cfg)

	database.WarmUpQueries(st)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[INFO] Listening on :%s", cfg.Port)
		return app.Listen("0.0.0.0:" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("[INFO] shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})
	if sessionStorage != nil {
		g.Go(func() error {
			return scheduler.RunSessionCleanupScheduler(gctx, sessionStorage, cfg.SessionCleanupInterval)
		})
	}
	return g.Wait()
}
