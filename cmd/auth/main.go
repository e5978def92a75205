package main

import (
	"context"
	"fmt"
	"os"

	authhttp "github.com/pkravets/huddle-auth/internal/auth/http"
	"github.com/pkravets/huddle-auth/internal/auth/service"
	"github.com/pkravets/huddle-auth/internal/common/bootstrap"
	commoncrypto "github.com/pkravets/huddle-auth/internal/common/crypto"
	commonhttp "github.com/pkravets/huddle-auth/internal/common/http"
	"github.com/pkravets/huddle-auth/internal/common/server"
)

func main() {
	app, err := bootstrap.NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to bootstrap: %v\n", err)
		os.Exit(1)
	}

	hasher := &commoncrypto.BcryptHasher{}
	issuer := service.NewTokenIssuer(app.Config.JWTSecret)
	authService := service.NewAuthService(app.UserRepo, hasher, issuer, app.Log)
	checker := service.NewAvailabilityChecker(app.UserRepo, app.Log)

	handler := authhttp.NewHandler(authService, checker, app.Pool, app.Config.RequestTimeout, app.Log)
	baseHandler := commonhttp.BuildBaseHandler(app.Log, handler)

	srv := server.NewServer(server.DefaultServerConfig(app.Config.HTTPPort), baseHandler)

	server.StartWithGracefulShutdownAndHooks(srv, app.Log, "auth", []server.ShutdownHook{
		func(ctx context.Context) error {
			app.Pool.Close()
			return nil
		},
	})
}
