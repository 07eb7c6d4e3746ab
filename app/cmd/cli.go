package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/go-addressbook/app/configs"
	"github.com/Rakhulsr/go-addressbook/app/db/seeders"
	"github.com/Rakhulsr/go-addressbook/app/models/migrations"
	"github.com/Rakhulsr/go-addressbook/app/routes"
	"github.com/Rakhulsr/go-addressbook/app/services"
	"github.com/Rakhulsr/go-addressbook/app/utils/renderer"
	"github.com/Rakhulsr/go-addressbook/app/utils/sessions"
	"github.com/urfave/cli/v3"
)

const apiTokenTTL = 24 * time.Hour

func RunCli(env configs.ENV, args []string) error {
	cmd := &cli.Command{
		Name:  "addressbook",
		Usage: "Account address book server",
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, env)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP server",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, env)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Create a user with fake addresses",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "email of the seeded user", Value: "demo@example.com"},
					&cli.IntFlag{Name: "count", Usage: "number of addresses to add", Value: 3},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					if _, err := seeders.DBSeed(ctx, db, c.String("email"), int(c.Int("count"))); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "env-file", Usage: "also append the keys to this file"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(os.Stdout, c.String("env-file")); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
		},
	}

	return cmd.Run(context.Background(), args)
}

func serve(ctx context.Context, env configs.ENV) error {
	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		return err
	}
	tokens, err := services.NewTokenService(env.JWTSecret, apiTokenTTL)
	if err != nil {
		return err
	}

	db, err := configs.OpenConnection(env)
	if err != nil {
		return err
	}
	log.Println("✅ Database connected.")

	if err := migrations.AutoMigrate(db); err != nil {
		return err
	}

	sessionStore := sessions.NewCookieSessionStore(env.IsProduction(), keys.AuthKey, keys.EncKey)
	log.Println("✅ Session store initialized.")

	router := routes.NewRouter(routes.Deps{
		Env:          env,
		Keys:         *keys,
		DB:           db,
		Render:       renderer.New("templates", !env.IsProduction()),
		SessionStore: sessionStore,
		Tokens:       tokens,
	})

	server := &http.Server{
		Addr:              env.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on %s", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
