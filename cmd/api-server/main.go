package main

import (
	"Vidhub/config"
	"Vidhub/pkg/jwt"
	"Vidhub/pkg/log"
	"Vidhub/pkg/server"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)

	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "vidhub video-sharing backend",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					app, err := InitServer(cfg)
					if err != nil {
						return err
					}
					return server.Run(ctx, app)
				},
			},
			{
				Name:  "reconcile",
				Usage: "recompute like/dislike counters from the reaction ledger",
				Action: func(ctx *cli.Context) error {
					app, err := InitServer(cfg)
					if err != nil {
						return err
					}
					videos, comments, err := app.Reactions.ReconcileAll(ctx.Context)
					if err != nil {
						return err
					}
					log.L.Info("reconcile finished", zap.Int64("videos", videos), zap.Int64("comments", comments))
					return nil
				},
			},
			{
				Name:  "token",
				Usage: "issue an access token for an existing user",
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "user", Usage: "user id", Required: true},
				},
				Action: func(ctx *cli.Context) error {
					if cfg.Jwt.Secret == "" {
						return fmt.Errorf("jwt secret is not configured")
					}
					expire := time.Duration(cfg.Jwt.Expire) * time.Second
					token, err := jwt.GenerateToken([]byte(cfg.Jwt.Secret), ctx.Uint64("user"), jwt.TypeAccess, expire)
					if err != nil {
						return err
					}
					fmt.Println(token)
					return nil
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("api-server", zap.Error(err))
	}
}
